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

// MovieHandler is the movie detail surface. It owns its relation controller;
// the tile surface has a separate one.
type MovieHandler struct {
	toggles usecase.RelationToggler
	log     *zap.Logger
}

func NewMovieHandler(toggles usecase.RelationToggler, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		toggles: toggles,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetState handles GET /surface/movie/{id}/state
func (h *MovieHandler) GetState(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid movie id", nil)
		return
	}

	ctx := r.Context()
	resp := response.RelationStateResponse{
		MovieID:   movieID,
		Watched:   h.toggles.State(ctx, movieID, entity.KindWatched),
		Liked:     h.toggles.State(ctx, movieID, entity.KindLiked),
		Watchlist: h.toggles.State(ctx, movieID, entity.KindWatchlist),
	}
	utils.ResponseSuccess(w, "success", resp)
}

// Toggle handles POST /surface/movie/{id}/toggle
func (h *MovieHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	movie := entity.MovieRef{
		MovieID:     movieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		VoteAverage: req.VoteAverage,
		ReleaseDate: req.ReleaseDate,
	}

	active, err := h.toggles.Toggle(r.Context(), entity.RelationKind(req.Kind), movie)
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
