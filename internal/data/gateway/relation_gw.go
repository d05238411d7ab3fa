package gateway

import (
	"context"
	"fmt"
	"net/http"

	"moviepulse/internal/data/entity"

	"go.uber.org/zap"
)

type RelationGateway interface {
	// Check returns whether the relation is currently active for the
	// signed-in user.
	Check(ctx context.Context, kind entity.RelationKind, movieID int64) (bool, error)
	// Create activates the relation, carrying the movie snapshot.
	Create(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef) error
	// Delete deactivates the relation.
	Delete(ctx context.Context, kind entity.RelationKind, movieID int64) error
}

type relationGateway struct {
	c   *client
	log *zap.Logger
}

func newRelationGateway(c *client) RelationGateway {
	return &relationGateway{
		c:   c,
		log: c.log.With(zap.String("gateway", "relation")),
	}
}

// checkResponse tolerates both the generic and the kind-specific key the
// remote API answers with.
type checkResponse struct {
	Active      *bool `json:"active"`
	IsWatched   *bool `json:"isWatched"`
	IsLiked     *bool `json:"isLiked"`
	InWatchlist *bool `json:"inWatchlist"`
}

func (r checkResponse) value() bool {
	for _, v := range []*bool{r.Active, r.IsWatched, r.IsLiked, r.InWatchlist} {
		if v != nil {
			return *v
		}
	}
	return false
}

func (g *relationGateway) Check(ctx context.Context, kind entity.RelationKind, movieID int64) (bool, error) {
	var out checkResponse
	path := fmt.Sprintf("/api/%s/%d/check", kind, movieID)
	if err := g.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.value(), nil
}

func (g *relationGateway) Create(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef) error {
	path := fmt.Sprintf("/api/%s", kind)
	if err := g.c.do(ctx, http.MethodPost, path, movie, nil); err != nil {
		g.log.Debug("Relation create failed",
			zap.String("kind", string(kind)),
			zap.Int64("movie_id", movie.MovieID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (g *relationGateway) Delete(ctx context.Context, kind entity.RelationKind, movieID int64) error {
	path := fmt.Sprintf("/api/%s/%d", kind, movieID)
	if err := g.c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		g.log.Debug("Relation delete failed",
			zap.String("kind", string(kind)),
			zap.Int64("movie_id", movieID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
