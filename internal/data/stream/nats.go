package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"moviepulse/internal/data/entity"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const handshakeTimeout = 10 * time.Second

// NATSStream carries notifications over a per-user NATS subject. No
// automatic reconnect: a dead channel stays dead until the next session.
type NATSStream struct {
	url  string
	name string
	log  *zap.Logger

	mu      sync.Mutex
	conn    *nats.Conn
	sub     *nats.Subscription
	closing bool
}

func NewNATSStream(url, name string, log *zap.Logger) *NATSStream {
	return &NATSStream{
		url:  url,
		name: name,
		log:  log.With(zap.String("stream", "nats")),
	}
}

func (s *NATSStream) Connect(ctx context.Context, token string, onClosed func(error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil // already connected
	}

	timeout := handshakeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	conn, err := nats.Connect(s.url,
		nats.Token(token),
		nats.Name(s.name),
		nats.Timeout(timeout),
		nats.NoReconnect(),
		nats.ClosedHandler(func(nc *nats.Conn) {
			s.mu.Lock()
			deliberate := s.closing
			s.mu.Unlock()
			if deliberate || onClosed == nil {
				return
			}
			onClosed(nc.LastError())
		}),
	)
	if err != nil {
		return fmt.Errorf("connect push channel %s: %w", s.url, err)
	}

	s.conn = conn
	s.log.Info("Push channel connected", zap.String("url", s.url))
	return nil
}

func (s *NATSStream) Subscribe(userID int64, handler func(entity.Notification)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("subscribe before connect")
	}

	subject := fmt.Sprintf("notifications.user.%d", userID)
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		var n entity.Notification
		if err := json.Unmarshal(msg.Data, &n); err != nil {
			s.log.Warn("Dropping malformed notification payload", zap.Error(err))
			return
		}
		handler(n)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}

	s.sub = sub
	s.log.Info("Subscribed to delivery topic", zap.String("subject", subject))
	return nil
}

func (s *NATSStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	s.closing = true

	var err error
	if s.sub != nil {
		err = s.sub.Unsubscribe()
		s.sub = nil
	}
	if derr := s.conn.Drain(); derr != nil && err == nil {
		err = derr
	}
	s.conn = nil
	return err
}
