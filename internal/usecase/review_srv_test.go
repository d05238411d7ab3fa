package usecase

import (
	"context"
	"sync"
	"testing"

	"moviepulse/internal/data/entity"
	"moviepulse/internal/dto/request"
	"moviepulse/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type setActiveCall struct {
	kind   entity.RelationKind
	movie  entity.MovieRef
	active bool
}

// fakeToggler records SetActive calls from review side effects.
type fakeToggler struct {
	mu    sync.Mutex
	calls []setActiveCall
}

func (f *fakeToggler) State(ctx context.Context, movieID int64, kind entity.RelationKind) bool {
	return false
}

func (f *fakeToggler) Toggle(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef) (bool, error) {
	return false, nil
}

func (f *fakeToggler) SetActive(ctx context.Context, kind entity.RelationKind, movie entity.MovieRef, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, setActiveCall{kind: kind, movie: movie, active: active})
	return nil
}

func (f *fakeToggler) SeedReviewLike(reviewID int64, liked bool, count int64) {}

func (f *fakeToggler) ReviewLike(reviewID int64) (bool, int64) { return false, 0 }

func (f *fakeToggler) ToggleReviewLike(ctx context.Context, reviewID int64) (bool, int64, error) {
	return false, 0, nil
}

func validLogRequest() *request.LogReviewRequest {
	return &request.LogReviewRequest{
		Movie:   entity.MovieRef{MovieID: 42, Title: "Stalker", ReleaseDate: "1979-05-25"},
		Rating:  4.5,
		Content: "slow and perfect",
		Watched: true,
		Tags:    []string{"rewatch-club", "70s", "rewatch-club"},
	}
}

func newTestReviewService(rev *fakeReviewGateway, tog *fakeToggler, store *session.Store) ReviewService {
	return NewReviewService(rev, tog, store, zap.NewNop())
}

func TestLogReviewCreatesAndMarksWatched(t *testing.T) {
	rev := &fakeReviewGateway{nextReview: entity.Review{ID: 11, MovieID: 42, Rating: 4.5}}
	tog := &fakeToggler{}
	srv := newTestReviewService(rev, tog, signedInStore())

	review, err := srv.Log(context.Background(), validLogRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(11), review.ID)

	require.Len(t, rev.created, 1)
	draft := rev.created[0]
	assert.Equal(t, int64(42), draft.MovieID)
	assert.Equal(t, "Stalker", draft.MovieTitle)
	assert.Equal(t, "1979", draft.MovieYear)
	assert.Equal(t, []string{"rewatch-club", "70s"}, draft.Tags)

	require.Len(t, tog.calls, 2)
	assert.Equal(t, entity.KindWatched, tog.calls[0].kind)
	assert.True(t, tog.calls[0].active)
	assert.Equal(t, entity.KindLiked, tog.calls[1].kind)
	assert.False(t, tog.calls[1].active)
}

func TestLogReviewWithoutSession(t *testing.T) {
	srv := newTestReviewService(&fakeReviewGateway{}, &fakeToggler{}, session.NewStore())
	_, err := srv.Log(context.Background(), validLogRequest())
	require.ErrorIs(t, err, ErrSignInRequired)
}

func TestLogReviewRejectsDuplicate(t *testing.T) {
	rev := &fakeReviewGateway{existing: &entity.Review{ID: 5, MovieID: 42}}
	srv := newTestReviewService(rev, &fakeToggler{}, signedInStore())

	_, err := srv.Log(context.Background(), validLogRequest())
	require.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Empty(t, rev.created)
}

func TestLogAnotherSkipsDuplicateCheck(t *testing.T) {
	rev := &fakeReviewGateway{existing: &entity.Review{ID: 5, MovieID: 42}}
	srv := newTestReviewService(rev, &fakeToggler{}, signedInStore())

	req := validLogRequest()
	req.LogAnother = true

	_, err := srv.Log(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, rev.created, 1)
	for _, c := range rev.calls {
		assert.NotEqual(t, "find", c.op)
	}
}

func TestLogReviewRejectsOffStepRating(t *testing.T) {
	srv := newTestReviewService(&fakeReviewGateway{}, &fakeToggler{}, signedInStore())

	req := validLogRequest()
	req.Rating = 3.33

	_, err := srv.Log(context.Background(), req)
	require.Error(t, err)
}

func TestLogReviewRejectsMissingRating(t *testing.T) {
	srv := newTestReviewService(&fakeReviewGateway{}, &fakeToggler{}, signedInStore())

	req := validLogRequest()
	req.Rating = 0

	_, err := srv.Log(context.Background(), req)
	require.Error(t, err)
}

func TestLogReviewUnwatchedClearsWatched(t *testing.T) {
	rev := &fakeReviewGateway{nextReview: entity.Review{ID: 11}}
	tog := &fakeToggler{}
	srv := newTestReviewService(rev, tog, signedInStore())

	req := validLogRequest()
	req.Watched = false

	_, err := srv.Log(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, tog.calls, 2)
	assert.Equal(t, entity.KindWatched, tog.calls[0].kind)
	assert.False(t, tog.calls[0].active)
}
