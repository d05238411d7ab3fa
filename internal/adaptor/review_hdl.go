package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"moviepulse/internal/dto/request"
	"moviepulse/internal/dto/response"
	"moviepulse/internal/usecase"
	"moviepulse/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	toggles usecase.RelationToggler
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, toggles usecase.RelationToggler, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		toggles: toggles,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Log handles POST /surface/reviews
func (h *ReviewHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req request.LogReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "invalid request body", nil)
		return
	}

	review, err := h.service.Log(r.Context(), &req)
	if errors.Is(err, usecase.ErrSignInRequired) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	if errors.Is(err, usecase.ErrAlreadyReviewed) {
		utils.ResponseBadRequest(w, "movie already reviewed", nil)
		return
	}
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid review") || strings.HasPrefix(err.Error(), "rating") {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		h.log.Error("Log review failed", zap.Error(err))
		utils.ResponseInternalError(w, "log review failed")
		return
	}

	utils.ResponseCreated(w, "review logged", response.NewReviewResponse(review))
}

// ToggleLike handles POST /surface/review/{id}/like. The optional body seeds
// the like state from the rendered projection before the first toggle.
func (h *ReviewHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	reviewID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "invalid review id", nil)
		return
	}

	if r.ContentLength > 0 {
		var seed request.SeedLikeRequest
		if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
			utils.ResponseBadRequest(w, "invalid request body", nil)
			return
		}
		if errs := utils.ValidateStruct(&seed); errs != nil {
			utils.ResponseBadRequest(w, "validation failed", errs)
			return
		}
		h.toggles.SeedReviewLike(reviewID, seed.Liked, seed.LikeCount)
	}

	liked, count, err := h.toggles.ToggleReviewLike(r.Context(), reviewID)
	if errors.Is(err, usecase.ErrSignInRequired) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.log.Error("Review like failed", zap.Int64("review_id", reviewID), zap.Error(err))
		utils.ResponseInternalError(w, "review like failed")
		return
	}

	utils.ResponseSuccess(w, "success", response.ReviewLikeResponse{
		ReviewID:  reviewID,
		Liked:     liked,
		LikeCount: count,
	})
}
