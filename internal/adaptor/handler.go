package adaptor

import (
	"moviepulse/internal/usecase"

	"go.uber.org/zap"
)

// Handler aggregates the local surfaces. Movie and Tile each get their own
// relation controller so their optimistic state never bleeds across.
type Handler struct {
	Movie        *MovieHandler
	Tile         *TileHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	movieToggles := service.NewToggler()
	tileToggles := service.NewToggler()
	reviewToggles := service.NewToggler()

	return &Handler{
		Movie:        NewMovieHandler(movieToggles, log),
		Tile:         NewTileHandler(tileToggles, log),
		Review:       NewReviewHandler(service.NewReviewService(reviewToggles), reviewToggles, log),
		Notification: NewNotificationHandler(service.Notifications, log),
	}
}
