package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moviepulse/internal/data/entity"
	"moviepulse/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStream struct {
	mu         sync.Mutex
	connectErr error
	subErr     error
	closeErr   error
	closeCalls int

	onClosed func(error)
	handler  func(entity.Notification)
}

func (f *fakeStream) Connect(ctx context.Context, token string, onClosed func(error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return f.connectErr
	}
	f.onClosed = onClosed
	return nil
}

func (f *fakeStream) Subscribe(userID int64, handler func(entity.Notification)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return f.subErr
	}
	f.handler = handler
	return nil
}

func (f *fakeStream) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return f.closeErr
}

func (f *fakeStream) push(n entity.Notification) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(n)
	}
}

type fakeNotificationGateway struct {
	mu          sync.Mutex
	backlog     []entity.Notification
	listErr     error
	listRelease chan struct{}

	markReadErr   error
	markReadCalls []int64
}

func (f *fakeNotificationGateway) List(ctx context.Context) ([]entity.Notification, error) {
	if f.listRelease != nil {
		<-f.listRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Notification, len(f.backlog))
	copy(out, f.backlog)
	return out, nil
}

func (f *fakeNotificationGateway) MarkRead(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markReadErr != nil {
		return f.markReadErr
	}
	f.markReadCalls = append(f.markReadCalls, id)
	return nil
}

func notif(id int64, read bool) entity.Notification {
	return entity.Notification{ID: id, Message: "hello", IsRead: read, CreatedAt: time.Now()}
}

func newTestManager(gw *fakeNotificationGateway, st *fakeStream, store *session.Store) *NotificationManager {
	return NewNotificationManager(gw, st, store, zap.NewNop())
}

func waitForItems(t *testing.T, m *NotificationManager, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		items, _ := m.Snapshot()
		return len(items) == n
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStartRequiresSession(t *testing.T) {
	m := newTestManager(&fakeNotificationGateway{}, &fakeStream{}, session.NewStore())
	require.ErrorIs(t, m.Start(context.Background()), ErrSignInRequired)
	assert.Equal(t, StateIdle, m.State())
}

func TestStartLoadsBacklogAndCountsUnread(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{
		notif(3, false), notif(2, true), notif(1, false),
	}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, StateSubscribed, m.State())

	waitForItems(t, m, 3)
	assert.Equal(t, 2, m.Unread())
}

func TestPushPrependsAndIncrementsUnread(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{notif(1, true)}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	st.push(notif(5, false))

	items, unread := m.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].ID)
	assert.Equal(t, 1, unread)
}

func TestPushOrderingNewestFirst(t *testing.T) {
	st := &fakeStream{}
	m := newTestManager(&fakeNotificationGateway{}, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))

	st.push(notif(1, false))
	st.push(notif(2, false))

	items, _ := m.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, int64(1), items[1].ID)
}

func TestBacklogThenPushCounters(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{
		notif(3, false), notif(2, true), notif(1, false),
	}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 3)
	require.Equal(t, 2, m.Unread())

	st.push(notif(4, false))

	items, unread := m.Snapshot()
	assert.Len(t, items, 4)
	assert.Equal(t, 3, unread)
	assert.Equal(t, int64(4), items[0].ID)
}

func TestPushDuringBacklogLoadStaysInFront(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeNotificationGateway{
		backlog:     []entity.Notification{notif(2, false), notif(1, false)},
		listRelease: release,
	}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))

	st.push(notif(9, false))
	close(release)

	waitForItems(t, m, 3)
	items, unread := m.Snapshot()
	assert.Equal(t, int64(9), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(1), items[2].ID)
	assert.Equal(t, 3, unread)
}

func TestBacklogFailureIsNonFatal(t *testing.T) {
	gw := &fakeNotificationGateway{listErr: errors.New("boom")}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, StateSubscribed, m.State())

	st.push(notif(5, false))
	items, unread := m.Snapshot()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, unread)
}

func TestConnectFailureClosesManager(t *testing.T) {
	st := &fakeStream{connectErr: errors.New("refused")}
	m := newTestManager(&fakeNotificationGateway{}, st, signedInStore())

	require.Error(t, m.Start(context.Background()))
	assert.Equal(t, StateClosed, m.State())
}

func TestStartTwiceFails(t *testing.T) {
	m := newTestManager(&fakeNotificationGateway{}, &fakeStream{}, signedInStore())
	require.NoError(t, m.Start(context.Background()))
	require.Error(t, m.Start(context.Background()))
}

func TestMarkReadFlipsAfterAck(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{notif(1, false)}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	require.NoError(t, m.MarkRead(context.Background(), 1))
	items, unread := m.Snapshot()
	assert.True(t, items[0].IsRead)
	assert.Equal(t, 0, unread)
	assert.Equal(t, []int64{1}, gw.markReadCalls)
}

func TestMarkReadFailureChangesNothing(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{notif(1, false)}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	gw.markReadErr = errors.New("boom")
	require.Error(t, m.MarkRead(context.Background(), 1))

	items, unread := m.Snapshot()
	assert.False(t, items[0].IsRead)
	assert.Equal(t, 1, unread)
}

func TestMarkReadIsNoOpWhenAlreadyRead(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{notif(1, true)}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	require.NoError(t, m.MarkRead(context.Background(), 1))
	assert.Empty(t, gw.markReadCalls)
	assert.Equal(t, 0, m.Unread())
}

func TestMarkReadUnknownID(t *testing.T) {
	m := newTestManager(&fakeNotificationGateway{}, &fakeStream{}, signedInStore())
	require.NoError(t, m.Start(context.Background()))
	require.Error(t, m.MarkRead(context.Background(), 99))
}

func TestOpenRoutes(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{
		{ID: 1, Message: "system", IsRead: true},
		{ID: 2, Message: "self", SenderID: 7, IsRead: true},
		{ID: 3, Message: "other", SenderID: 9, IsRead: true},
	}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 3)

	route, err := m.Open(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, route)

	route, err = m.Open(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "/profile", route)

	route, err = m.Open(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/user/9", route)
}

func TestOpenMarksUnreadFirst(t *testing.T) {
	gw := &fakeNotificationGateway{backlog: []entity.Notification{
		{ID: 4, Message: "other", SenderID: 9, IsRead: false},
	}}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	route, err := m.Open(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/user/9", route)
	assert.Equal(t, []int64{4}, gw.markReadCalls)
	assert.Equal(t, 0, m.Unread())
}

func TestOpenNavigatesDespiteMarkReadFailure(t *testing.T) {
	gw := &fakeNotificationGateway{
		backlog:     []entity.Notification{{ID: 4, SenderID: 9, IsRead: false}},
		markReadErr: errors.New("boom"),
	}
	st := &fakeStream{}
	m := newTestManager(gw, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	waitForItems(t, m, 1)

	route, err := m.Open(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/user/9", route)
	assert.Equal(t, 1, m.Unread())
}

func TestCloseIsIdempotentAndSwallowsErrors(t *testing.T) {
	st := &fakeStream{closeErr: errors.New("drain failed")}
	m := newTestManager(&fakeNotificationGateway{}, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	m.Close()
	m.Close()

	assert.Equal(t, StateClosed, m.State())
	assert.Equal(t, 1, st.closeCalls)
}

func TestChannelErrorClosesManager(t *testing.T) {
	st := &fakeStream{}
	m := newTestManager(&fakeNotificationGateway{}, st, signedInStore())

	require.NoError(t, m.Start(context.Background()))
	require.NotNil(t, st.onClosed)

	st.onClosed(errors.New("connection reset"))
	assert.Equal(t, StateClosed, m.State())

	// Late pushes after teardown are dropped.
	st.push(notif(5, false))
	items, _ := m.Snapshot()
	assert.Empty(t, items)
}
