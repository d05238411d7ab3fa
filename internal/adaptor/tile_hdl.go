package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"moviepulse/internal/data/entity"
	"moviepulse/internal/dto/request"
	"moviepulse/internal/dto/response"
	"moviepulse/internal/usecase"
	"moviepulse/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TileHandler is the poster tile surface shown in grids and carousels. Its
// relation state is independent of the detail surface: the same movie can
// read stale here until this surface re-queries.
type TileHandler struct {
	toggles usecase.RelationToggler
	log     *zap.Logger
}

func NewTileHandler(toggles usecase.RelationToggler, log *zap.Logger) *TileHandler {
	return &TileHandler{
		toggles: toggles,
		log:     log.With(zap.String("handler", "tile")),
	}
}

// GetState handles GET /surface/tile/{id}/state. Tiles only show the quick
// actions, so only watched and liked are reported.
func (h *TileHandler) GetState(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid movie id", nil)
		return
	}

	ctx := r.Context()
	resp := response.RelationStateResponse{
		MovieID: movieID,
		Watched: h.toggles.State(ctx, movieID, entity.KindWatched),
		Liked:   h.toggles.State(ctx, movieID, entity.KindLiked),
	}
	utils.ResponseSuccess(w, "success", resp)
}

// Toggle handles POST /surface/tile/{id}/toggle
func (h *TileHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid movie id", nil)
		return
	}

	var req request.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ResponseBadRequest(w, "validation failed", errs)
		return
	}

	kind := entity.RelationKind(req.Kind)
	if kind == entity.KindWatchlist {
		utils.ResponseBadRequest(w, "watchlist is not available on tiles", nil)
		return
	}

	movie := entity.MovieRef{
		MovieID:     movieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		VoteAverage: req.VoteAverage,
		ReleaseDate: req.ReleaseDate,
	}

	active, err := h.toggles.Toggle(r.Context(), kind, movie)
	if errors.Is(err, usecase.ErrSignInRequired) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.log.Error("Toggle failed", zap.Int64("movie_id", movieID), zap.Error(err))
		utils.ResponseInternalError(w, "toggle failed")
		return
	}

	utils.ResponseSuccess(w, "success", response.ToggleResponse{
		MovieID: movieID,
		Kind:    req.Kind,
		Active:  active,
	})
}
