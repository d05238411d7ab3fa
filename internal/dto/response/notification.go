package response

import (
	"time"

	"moviepulse/internal/data/entity"
)

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	SenderID  int64     `json:"sender_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	State         string                 `json:"state"`
	Unread        int                    `json:"unread"`
	Notifications []NotificationResponse `json:"notifications"`
}

func NewNotificationListResponse(state string, unread int, items []entity.Notification) NotificationListResponse {
	out := NotificationListResponse{
		State:         state,
		Unread:        unread,
		Notifications: make([]NotificationResponse, 0, len(items)),
	}
	for _, n := range items {
		out.Notifications = append(out.Notifications, NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			SenderID:  n.SenderID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type OpenNotificationResponse struct {
	ID     int64  `json:"id"`
	Route  string `json:"route,omitempty"`
	Unread int    `json:"unread"`
}
