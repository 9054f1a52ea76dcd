package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-InboxService/pkg/logger"
)

type fakePurger struct {
	mu      sync.Mutex
	calls   []time.Time
	deleted int
	err     error
}

func (f *fakePurger) DeleteReadBefore(_ context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, before)
	return f.deleted, f.err
}

func (f *fakePurger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeMetrics struct {
	mu     sync.Mutex
	purged int
}

func (m *fakeMetrics) NotificationsPurged(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged += n
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewRetention_Validation(t *testing.T) {
	_, err := NewRetention(&fakePurger{}, nil, logger.Nop(), 0, time.Hour)
	assert.Error(t, err)

	_, err = NewRetention(&fakePurger{}, nil, logger.Nop(), time.Hour, -time.Hour)
	assert.Error(t, err)
}

func TestRetention_RunOnce(t *testing.T) {
	purger := &fakePurger{deleted: 3}
	m := &fakeMetrics{}

	r, err := NewRetention(purger, m, logger.Nop(), time.Hour, 24*time.Hour, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	deleted, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, 3, m.purged)
	assert.Equal(t, []time.Time{now.Add(-24 * time.Hour)}, purger.calls)
}

func TestRetention_RunOnceError(t *testing.T) {
	purger := &fakePurger{err: errors.New("db is down")}
	m := &fakeMetrics{}

	r, err := NewRetention(purger, m, logger.Nop(), time.Hour, time.Hour)
	require.NoError(t, err)

	_, err = r.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, m.purged)
}

func TestRetention_KeepsUnreadAndFresh(t *testing.T) {
	clock := now.Add(-48 * time.Hour)
	repo := memory.NewRepository(memory.WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	create := func(body string) *domain.Notification {
		n, err := repo.Create(ctx, domain.CreateInput{
			UserID:  "user-1",
			Payload: domain.Payload{Type: "info", Body: body},
		})
		require.NoError(t, err)
		return n
	}

	oldRead := create("old read")
	oldUnread := create("old unread")
	clock = now
	freshRead := create("fresh read")

	_, err := repo.MarkAsRead(ctx, "user-1", []string{oldRead.ID, freshRead.ID})
	require.NoError(t, err)

	r, err := NewRetention(repo, nil, logger.Nop(), time.Hour, 24*time.Hour, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	deleted, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = repo.FindByID(ctx, oldRead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []string{oldUnread.ID, freshRead.ID} {
		_, err = repo.FindByID(ctx, id)
		assert.NoError(t, err)
	}
}

func TestRetention_StartStop(t *testing.T) {
	purger := &fakePurger{}

	r, err := NewRetention(purger, nil, logger.Nop(), 50*time.Millisecond, time.Hour)
	require.NoError(t, err)
	require.NoError(t, r.Start())

	assert.Eventually(t, func() bool { return purger.callCount() >= 2 }, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	stopped := purger.callCount()
	time.Sleep(150 * time.Millisecond)
	assert.LessOrEqual(t, purger.callCount(), stopped+1)
}
