package usecase

import (
	"moviepulse/internal/data/gateway"
	"moviepulse/internal/data/stream"
	"moviepulse/pkg/session"

	"go.uber.org/zap"
)

// Service bundles the shared singletons and hands out per-surface relation
// controllers. Each surface calls NewToggler once and keeps its instance.
type Service struct {
	gw       *gateway.Gateway
	sessions *session.Store
	log      *zap.Logger

	Notifications *NotificationManager
}

func NewService(
	gw *gateway.Gateway,
	st stream.Stream,
	sessions *session.Store,
	log *zap.Logger,
) *Service {
	return &Service{
		gw:            gw,
		sessions:      sessions,
		log:           log,
		Notifications: NewNotificationManager(gw.Notification, st, sessions, log),
	}
}

// NewToggler builds a fresh relation controller with no shared cache.
func (s *Service) NewToggler() RelationToggler {
	return NewRelationToggler(s.gw.Relation, s.gw.Review, s.sessions, s.log)
}

func (s *Service) NewReviewService(toggles RelationToggler) ReviewService {
	return NewReviewService(s.gw.Review, toggles, s.sessions, s.log)
}
