package wire

import (
	"moviepulse/internal/adaptor"
	"moviepulse/pkg/middleware"
	"moviepulse/pkg/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	sessions *session.Store,
	log *zap.Logger,
) {
	r.Route("/surface/reviews", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))
		r.Post("/", reviewHandler.Log)
	})

	r.Route("/surface/review/{id}/like", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))
		r.Post("/", reviewHandler.ToggleLike)
	})
}
