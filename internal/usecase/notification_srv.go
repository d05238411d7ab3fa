package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"moviepulse/internal/data/entity"
	"moviepulse/internal/data/gateway"
	"moviepulse/internal/data/stream"
	"moviepulse/pkg/session"

	"go.uber.org/zap"
)

// StreamState is the notification channel lifecycle. Transitions only move
// forward; a closed manager is never restarted, the next session builds a
// fresh one.
type StreamState int

const (
	StateIdle StreamState = iota
	StateConnecting
	StateSubscribed
	StateClosed
)

func (s StreamState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// NotificationManager owns the push channel, the local notification list and
// the unread counter for one session.
type NotificationManager struct {
	gw       gateway.NotificationGateway
	stream   stream.Stream
	sessions *session.Store
	log      *zap.Logger

	mu     sync.Mutex
	state  StreamState
	items  []entity.Notification
	unread int
}

func NewNotificationManager(
	gw gateway.NotificationGateway,
	st stream.Stream,
	sessions *session.Store,
	log *zap.Logger,
) *NotificationManager {
	return &NotificationManager{
		gw:       gw,
		stream:   st,
		sessions: sessions,
		log:      log.With(zap.String("service", "notification")),
	}
}

// Start connects the push channel, subscribes to the session user's topic
// and loads the backlog. Backlog load runs concurrently with the handshake;
// a backlog failure is non-fatal, a handshake or subscribe failure closes
// the manager.
func (m *NotificationManager) Start(ctx context.Context) error {
	sess, ok := m.sessions.Current()
	if !ok {
		return ErrSignInRequired
	}

	m.mu.Lock()
	if m.state != StateIdle {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("start from %s state", state)
	}
	m.state = StateConnecting
	m.mu.Unlock()

	go m.loadBacklog(ctx)

	if err := m.stream.Connect(ctx, sess.Token, m.onChannelError); err != nil {
		m.Close()
		return fmt.Errorf("notification channel: %w", err)
	}
	if err := m.stream.Subscribe(sess.UserID, m.onPush); err != nil {
		m.Close()
		return fmt.Errorf("notification channel: %w", err)
	}

	m.mu.Lock()
	if m.state == StateConnecting {
		m.state = StateSubscribed
	}
	m.mu.Unlock()

	m.log.Info("Notification channel ready", zap.Int64("user_id", sess.UserID))
	return nil
}

func (m *NotificationManager) loadBacklog(ctx context.Context) {
	backlog, err := m.gw.List(ctx)
	if err != nil {
		// The live channel still works without history.
		m.log.Warn("Backlog load failed", zap.Error(err))
		return
	}

	unread := 0
	for _, n := range backlog {
		if !n.IsRead {
			unread++
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateClosed {
		return
	}
	// Pushes that raced the load were prepended already and stay in front of
	// the older backlog. A notification present in both is shown twice.
	m.items = append(m.items, backlog...)
	m.unread += unread
}

func (m *NotificationManager) onPush(n entity.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateClosed {
		return
	}
	m.items = append([]entity.Notification{n}, m.items...)
	m.unread++
	m.log.Debug("Notification received", zap.Int64("notification_id", n.ID))
}

func (m *NotificationManager) onChannelError(err error) {
	m.log.Warn("Notification channel lost", zap.Error(err))
	m.Close()
}

// MarkRead acknowledges the notification remotely, then flips it locally.
// Unlike relation toggles this is not optimistic: on failure nothing
// changes and the error surfaces.
func (m *NotificationManager) MarkRead(ctx context.Context, id int64) error {
	m.mu.Lock()
	idx := -1
	for i := range m.items {
		if m.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("notification %d not found", id)
	}
	if m.items[idx].IsRead {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	if err := m.gw.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark read %d: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && !m.items[i].IsRead {
			m.items[i].IsRead = true
			if m.unread > 0 {
				m.unread--
			}
		}
	}
	return nil
}

// Open resolves a notification click: mark it read if needed, then answer
// where to navigate. An empty route means stay in place. A failed mark-read
// does not block navigation.
func (m *NotificationManager) Open(ctx context.Context, id int64) (string, error) {
	m.mu.Lock()
	var found *entity.Notification
	for i := range m.items {
		if m.items[i].ID == id {
			n := m.items[i]
			found = &n
			break
		}
	}
	m.mu.Unlock()

	if found == nil {
		return "", fmt.Errorf("notification %d not found", id)
	}

	if !found.IsRead {
		if err := m.MarkRead(ctx, id); err != nil {
			m.log.Warn("Mark read on open failed", zap.Int64("notification_id", id), zap.Error(err))
		}
	}

	if found.SenderID == 0 {
		return "", nil
	}
	if sess, ok := m.sessions.Current(); ok && sess.UserID == found.SenderID {
		return "/profile", nil
	}
	return fmt.Sprintf("/user/%d", found.SenderID), nil
}

// Snapshot returns the current list, newest first, and the unread count.
func (m *NotificationManager) Snapshot() ([]entity.Notification, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Notification, len(m.items))
	copy(out, m.items)
	return out, m.unread
}

func (m *NotificationManager) State() StreamState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *NotificationManager) Unread() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

// Close tears the channel down. Idempotent; teardown errors are logged,
// never returned.
func (m *NotificationManager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosed
	m.mu.Unlock()

	if err := m.stream.Close(); err != nil && !errors.Is(err, context.Canceled) {
		m.log.Warn("Channel teardown", zap.Error(err))
	}
	m.log.Info("Notification channel closed")
}
