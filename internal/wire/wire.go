package wire

import (
	"net/http"

	"moviepulse/internal/adaptor"
	"moviepulse/internal/usecase"
	"moviepulse/pkg/middleware"
	"moviepulse/pkg/session"
	"moviepulse/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles handlers and routes on top of an already-built service.
func Wiring(service *usecase.Service, sessions *session.Store, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)
	router := setupRouter(handler, sessions, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, sessions *session.Store, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireMovie(r, handler.Movie, sessions, logger)
	wireTile(r, handler.Tile, sessions, logger)
	wireReview(r, handler.Review, sessions, logger)
	wireNotification(r, handler.Notification, sessions, logger)

	// Sign-in landing target for redirected toggles.
	r.Get("/signin", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseUnauthorized(w, "sign in required")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
