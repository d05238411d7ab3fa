package gateway

import (
	"context"
	"fmt"
	"net/http"

	"moviepulse/internal/data/entity"

	"go.uber.org/zap"
)

type NotificationGateway interface {
	// List fetches the backlog, newest first, in the server's order.
	List(ctx context.Context) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationGateway struct {
	c   *client
	log *zap.Logger
}

func newNotificationGateway(c *client) NotificationGateway {
	return &notificationGateway{
		c:   c,
		log: c.log.With(zap.String("gateway", "notification")),
	}
}

func (g *notificationGateway) List(ctx context.Context) ([]entity.Notification, error) {
	var out []entity.Notification
	if err := g.c.do(ctx, http.MethodGet, "/api/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *notificationGateway) MarkRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d/read", id)
	if err := g.c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		g.log.Debug("Mark read failed", zap.Int64("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}
