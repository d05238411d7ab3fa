package usecase

import (
	"context"
	"errors"
	"sync"

	"moviepulse/internal/data/entity"
	"moviepulse/internal/data/gateway"
	"moviepulse/pkg/session"

	"go.uber.org/zap"
)

// ErrSignInRequired means the operation needs a session; the caller sends
// the user to the sign-in surface. No request was issued, nothing changed.
var ErrSignInRequired = errors.New("sign in required")

// RelationToggler keeps one surface's view of toggleable relations
// consistent with the system of record under optimistic updates. Every
// surface owns its own instance: a toggle here is not visible to another
// surface until that surface re-queries.
type RelationToggler interface {
	// State answers whether the relation is active, querying the remote on
	// first interest and degrading silently to false on any error.
	State(ctx context.Context, movieID int64, kind entity.RelationKind) bool
	// Toggle flips the relation optimistically, settles it against the
	// remote, and reports the post-settle value. The only error returned is
	// ErrSignInRequired; mutation failures roll back and are logged only.
	Toggle(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef) (bool, error)
	// SetActive is the idempotent form used by review side effects.
	SetActive(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef, active bool) error

	// Review likes are a distinct operation from movie likes; the caller
	// picks the method, never the controller from payload shape.
	SeedReviewLike(reviewID int64, liked bool, count int64)
	ReviewLike(reviewID int64) (bool, int64)
	ToggleReviewLike(ctx context.Context, reviewID int64) (bool, int64, error)
}

type relationKey struct {
	movieID int64
	kind    entity.RelationKind
}

type likeState struct {
	liked bool
	count int64
}

type relationController struct {
	relations gateway.RelationGateway
	reviews   gateway.ReviewGateway
	sessions  *session.Store
	log       *zap.Logger

	mu       sync.Mutex
	state    map[relationKey]bool
	known    map[relationKey]bool
	inflight map[relationKey]bool

	likes        map[int64]likeState
	likeKnown    map[int64]bool
	likeInflight map[int64]bool
}

func NewRelationToggler(
	relations gateway.RelationGateway,
	reviews gateway.ReviewGateway,
	sessions *session.Store,
	log *zap.Logger,
) RelationToggler {
	return &relationController{
		relations:    relations,
		reviews:      reviews,
		sessions:     sessions,
		log:          log.With(zap.String("service", "relation")),
		state:        map[relationKey]bool{},
		known:        map[relationKey]bool{},
		inflight:     map[relationKey]bool{},
		likes:        map[int64]likeState{},
		likeKnown:    map[int64]bool{},
		likeInflight: map[int64]bool{},
	}
}

func (c *relationController) State(ctx context.Context, movieID int64, kind entity.RelationKind) bool {
	key := relationKey{movieID: movieID, kind: kind}

	c.mu.Lock()
	if c.known[key] {
		v := c.state[key]
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	active, err := c.relations.Check(ctx, kind, movieID)
	if err != nil {
		// Degraded mode: show inactive, stay optimistic-only until a later
		// query succeeds. Not escalated to the surface.
		if errors.Is(err, gateway.ErrUnauthenticated) {
			c.log.Debug("State check without session",
				zap.Int64("movie_id", movieID), zap.String("kind", string(kind)))
		} else if !errors.Is(err, gateway.ErrNotFound) {
			c.log.Warn("State check failed",
				zap.Int64("movie_id", movieID), zap.String("kind", string(kind)), zap.Error(err))
		}
		return false
	}

	c.mu.Lock()
	// A toggle that raced the query owns the truth now.
	if !c.known[key] {
		c.state[key] = active
		c.known[key] = true
	}
	active = c.state[key]
	c.mu.Unlock()
	return active
}

func (c *relationController) Toggle(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef) (bool, error) {
	if _, ok := c.sessions.Current(); !ok {
		c.log.Debug("Toggle rejected, no session",
			zap.Int64("movie_id", movie.MovieID), zap.String("kind", string(kind)))
		return false, ErrSignInRequired
	}

	key := relationKey{movieID: movie.MovieID, kind: kind}
	wlKey := relationKey{movieID: movie.MovieID, kind: entity.KindWatchlist}

	c.mu.Lock()
	if c.inflight[key] {
		// One active mutation per (entity, kind): the second click is
		// coalesced away instead of racing the first.
		v := c.state[key]
		c.mu.Unlock()
		return v, nil
	}
	c.inflight[key] = true

	prev := c.state[key]
	next := !prev
	c.state[key] = next
	c.known[key] = true

	var wlPrev, wlCleared bool
	if kind == entity.KindWatched && next {
		// Watched and Watchlisted are mutually exclusive.
		wlPrev = c.state[wlKey]
		c.state[wlKey] = false
		c.known[wlKey] = true
		wlCleared = true
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	var err error
	if next {
		err = c.relations.Create(ctx, kind, movie)
	} else {
		err = c.relations.Delete(ctx, kind, movie.MovieID)
	}
	if err != nil {
		c.mu.Lock()
		c.state[key] = prev
		if wlCleared {
			c.state[wlKey] = wlPrev
		}
		c.mu.Unlock()
		c.log.Error("Toggle failed, rolled back",
			zap.Int64("movie_id", movie.MovieID),
			zap.String("kind", string(kind)),
			zap.Bool("state", prev),
			zap.Error(err),
		)
		return prev, nil
	}

	if wlCleared && wlPrev {
		if derr := c.relations.Delete(ctx, entity.KindWatchlist, movie.MovieID); derr != nil {
			// Local stays cleared; server truth catches up on the next query.
			c.log.Warn("Watchlist clear failed after watched toggle",
				zap.Int64("movie_id", movie.MovieID), zap.Error(derr))
		}
	}

	c.log.Info("Toggle settled",
		zap.Int64("movie_id", movie.MovieID),
		zap.String("kind", string(kind)),
		zap.Bool("state", next),
	)
	return next, nil
}

func (c *relationController) SetActive(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef, active bool) error {
	if c.State(ctx, movie.MovieID, kind) == active {
		return nil
	}
	_, err := c.Toggle(ctx, kind, movie)
	return err
}

// SeedReviewLike installs the liked flag and count from an already-rendered
// review projection, so the first toggle starts from what the user sees.
// A known entry is never overwritten.
func (c *relationController) SeedReviewLike(reviewID int64, liked bool, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.likeKnown[reviewID] {
		return
	}
	c.likes[reviewID] = likeState{liked: liked, count: count}
	c.likeKnown[reviewID] = true
}

func (c *relationController) ReviewLike(reviewID int64) (bool, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ls := c.likes[reviewID]
	return ls.liked, ls.count
}

func (c *relationController) ToggleReviewLike(ctx context.Context, reviewID int64) (bool, int64, error) {
	if _, ok := c.sessions.Current(); !ok {
		c.log.Debug("Review like rejected, no session", zap.Int64("review_id", reviewID))
		return false, 0, ErrSignInRequired
	}

	c.mu.Lock()
	if c.likeInflight[reviewID] {
		ls := c.likes[reviewID]
		c.mu.Unlock()
		return ls.liked, ls.count, nil
	}
	c.likeInflight[reviewID] = true

	prev := c.likes[reviewID]
	next := likeState{liked: !prev.liked, count: prev.count}
	if next.liked {
		next.count++
	} else if next.count > 0 {
		next.count--
	}
	c.likes[reviewID] = next
	c.likeKnown[reviewID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.likeInflight, reviewID)
		c.mu.Unlock()
	}()

	var err error
	if next.liked {
		err = c.reviews.Like(ctx, reviewID)
	} else {
		err = c.reviews.Unlike(ctx, reviewID)
	}
	if err != nil {
		// Restore the exact prior flag and count; a delta would drift under
		// repeated failures.
		c.mu.Lock()
		c.likes[reviewID] = prev
		c.mu.Unlock()
		c.log.Error("Review like failed, rolled back",
			zap.Int64("review_id", reviewID), zap.Error(err))
		return prev.liked, prev.count, nil
	}

	return next.liked, next.count, nil
}
