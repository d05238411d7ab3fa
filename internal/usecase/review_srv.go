package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"moviepulse/internal/data/entity"
	"moviepulse/internal/data/gateway"
	"moviepulse/internal/dto/request"
	"moviepulse/pkg/session"
	"moviepulse/pkg/utils"

	"go.uber.org/zap"
)

var ErrAlreadyReviewed = errors.New("movie already reviewed")

type ReviewService interface {
	Log(ctx context.Context, req *request.LogReviewRequest) (*entity.Review, error)
}

type reviewService struct {
	reviews  gateway.ReviewGateway
	toggles  RelationToggler
	sessions *session.Store
	log      *zap.Logger
}

func NewReviewService(
	reviews gateway.ReviewGateway,
	toggles RelationToggler,
	sessions *session.Store,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		reviews:  reviews,
		toggles:  toggles,
		sessions: sessions,
		log:      log.With(zap.String("service", "review")),
	}
}

// Log publishes a review and settles the watched and liked relations to
// match the form's checkboxes. Relation sync failures do not undo the
// already-created review; they roll back inside the toggler and are logged.
func (s *reviewService) Log(ctx context.Context, req *request.LogReviewRequest) (*entity.Review, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, ErrSignInRequired
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("invalid review: %s", utils.FormatValidationErrors(errs))
	}
	if req.Movie.MovieID <= 0 {
		return nil, fmt.Errorf("invalid review: movie id required")
	}
	if !validRatingStep(req.Rating) {
		return nil, fmt.Errorf("rating must be between 0.1 and 5.0 in 0.1 steps")
	}

	if !req.LogAnother {
		existing, err := s.reviews.FindByMovie(ctx, req.Movie.MovieID)
		if err != nil {
			return nil, fmt.Errorf("check existing review: %w", err)
		}
		if existing != nil {
			return nil, ErrAlreadyReviewed
		}
	}

	draft := entity.ReviewDraft{
		MovieID:         req.Movie.MovieID,
		MovieTitle:      req.Movie.Title,
		MoviePosterPath: req.Movie.PosterPath,
		MovieYear:       releaseYear(req.Movie.ReleaseDate),
		Rating:          req.Rating,
		Content:         req.Content,
		ContainsSpoiler: req.ContainsSpoiler,
		IsRewatch:       req.IsRewatch,
		Tags:            dedupTags(req.Tags),
		WatchedDate:     req.WatchedDate,
	}

	review, err := s.reviews.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	// The form checkboxes drive the relations behind the review.
	if err := s.toggles.SetActive(ctx, entity.KindWatched, req.Movie, req.Watched); err != nil {
		s.log.Warn("Watched sync after review failed",
			zap.Int64("movie_id", req.Movie.MovieID), zap.Error(err))
	}
	if err := s.toggles.SetActive(ctx, entity.KindLiked, req.Movie, req.Liked); err != nil {
		s.log.Warn("Liked sync after review failed",
			zap.Int64("movie_id", req.Movie.MovieID), zap.Error(err))
	}

	s.log.Info("Review logged",
		zap.Int64("review_id", review.ID),
		zap.Int64("movie_id", req.Movie.MovieID),
		zap.Float64("rating", req.Rating),
	)
	return review, nil
}

// validRatingStep accepts 0.1 through 5.0 in 0.1 increments. The payload
// arrives through JSON float decoding, so compare against the rounded tenth
// instead of trusting exact binary representation.
func validRatingStep(rating float64) bool {
	tenths := math.Round(rating * 10)
	return tenths >= 1 && tenths <= 50 && math.Abs(rating*10-tenths) < 1e-9
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return ""
}

func dedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
