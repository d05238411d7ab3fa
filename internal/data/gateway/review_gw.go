package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"moviepulse/internal/data/entity"

	"go.uber.org/zap"
)

type ReviewGateway interface {
	Create(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error)
	// FindByMovie returns the signed-in user's review for the movie, or
	// (nil, nil) when there is none.
	FindByMovie(ctx context.Context, movieID int64) (*entity.Review, error)
	Like(ctx context.Context, reviewID int64) error
	Unlike(ctx context.Context, reviewID int64) error
}

type reviewGateway struct {
	c   *client
	log *zap.Logger
}

func newReviewGateway(c *client) ReviewGateway {
	return &reviewGateway{
		c:   c,
		log: c.log.With(zap.String("gateway", "review")),
	}
}

func (g *reviewGateway) Create(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error) {
	var out entity.Review
	if err := g.c.do(ctx, http.MethodPost, "/api/reviews", draft, &out); err != nil {
		return nil, err
	}

	g.log.Info("Review created",
		zap.Int64("review_id", out.ID),
		zap.Int64("movie_id", draft.MovieID),
	)
	return &out, nil
}

func (g *reviewGateway) FindByMovie(ctx context.Context, movieID int64) (*entity.Review, error) {
	var out entity.Review
	path := fmt.Sprintf("/api/reviews/movie/%d/check", movieID)
	err := g.c.do(ctx, http.MethodGet, path, nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *reviewGateway) Like(ctx context.Context, reviewID int64) error {
	path := fmt.Sprintf("/api/reviews/%d/like", reviewID)
	return g.c.do(ctx, http.MethodPost, path, nil, nil)
}

func (g *reviewGateway) Unlike(ctx context.Context, reviewID int64) error {
	path := fmt.Sprintf("/api/reviews/%d/like", reviewID)
	return g.c.do(ctx, http.MethodDelete, path, nil, nil)
}
