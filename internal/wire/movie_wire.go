package wire

import (
	"moviepulse/internal/adaptor"
	"moviepulse/pkg/middleware"
	"moviepulse/pkg/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	sessions *session.Store,
	log *zap.Logger,
) {
	// State reads are public; without a session they degrade to all-inactive.
	r.Get("/surface/movie/{id}/state", movieHandler.GetState)

	r.Route("/surface/movie/{id}/toggle", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))
		r.Post("/", movieHandler.Toggle)
	})
}
