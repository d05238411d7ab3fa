package stream

import (
	"context"

	"moviepulse/internal/data/entity"
)

// Stream is the persistent push channel delivering notifications. The
// lifecycle is owned by the notification manager: handshake once, one
// per-user subscription, teardown on session end or channel error.
type Stream interface {
	// Connect performs the handshake with the bearer credential. onClosed
	// fires once when the channel dies for any reason after a successful
	// handshake.
	Connect(ctx context.Context, token string, onClosed func(error)) error
	// Subscribe attaches to the user's delivery topic. handler runs on the
	// channel's delivery goroutine, in arrival order.
	Subscribe(userID int64, handler func(entity.Notification)) error
	// Close tears the channel down. Safe to call in any state.
	Close() error
}
