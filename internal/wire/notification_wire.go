package wire

import (
	"moviepulse/internal/adaptor"
	"moviepulse/pkg/middleware"
	"moviepulse/pkg/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	sessions *session.Store,
	log *zap.Logger,
) {
	r.Route("/surface/notifications", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))

		r.Get("/", notificationHandler.List)
		r.Put("/{id}/read", notificationHandler.MarkRead)
		r.Post("/{id}/open", notificationHandler.Open)
	})
}
