package wire

import (
	"moviepulse/internal/adaptor"
	"moviepulse/pkg/middleware"
	"moviepulse/pkg/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTile(
	r chi.Router,
	tileHandler *adaptor.TileHandler,
	sessions *session.Store,
	log *zap.Logger,
) {
	r.Get("/surface/tile/{id}/state", tileHandler.GetState)

	r.Route("/surface/tile/{id}/toggle", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, log))
		r.Post("/", tileHandler.Toggle)
	})
}
