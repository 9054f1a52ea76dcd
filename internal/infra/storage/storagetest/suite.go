// Package storagetest общий набор проверок для реализаций domain.NotificationRepository
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/pkg/ptr"
)

// Factory создаёт пустой репозиторий, время в котором берётся из clock
type Factory func(t *testing.T, clock *Clock) domain.NotificationRepository

// Clock управляемые часы для детерминированных CreatedAt
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock создаёт часы, стоящие на start
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now возвращает текущее время и сдвигает часы на миллисекунду
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(time.Millisecond)
	return now
}

// Set переставляет часы
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var epoch = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func payload(body string) domain.Payload {
	return domain.Payload{Type: "info", Body: body}
}

// Run запускает все проверки для реализации
func Run(t *testing.T, factory Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo domain.NotificationRepository, clock *Clock)
	}{
		{"CreateAssignsDefaults", testCreateAssignsDefaults},
		{"CreateValidation", testCreateValidation},
		{"FindOneIsScoped", testFindOneIsScoped},
		{"MalformedIDIsNotFound", testMalformedIDIsNotFound},
		{"BlankUserIsValidationError", testBlankUserIsValidationError},
		{"MarkAsReadIdempotent", testMarkAsReadIdempotent},
		{"MarkAsReadSkipsInvalid", testMarkAsReadSkipsInvalid},
		{"MarkAllAsRead", testMarkAllAsRead},
		{"DefaultOrderNewestFirst", testDefaultOrderNewestFirst},
		{"OldestFirstAndTieBreak", testOldestFirstAndTieBreak},
		{"OffsetPagination", testOffsetPagination},
		{"CursorPagination", testCursorPagination},
		{"FindOptionsValidation", testFindOptionsValidation},
		{"UnreadOnly", testUnreadOnly},
		{"Iterate", testIterate},
		{"FindOneAndDelete", testFindOneAndDelete},
		{"ConcurrentDeleteExactlyOnce", testConcurrentDeleteExactlyOnce},
		{"ConcurrentMarkAsRead", testConcurrentMarkAsRead},
		{"SaveUpdatesPayload", testSaveUpdatesPayload},
		{"SaveKeepsReadMonotonic", testSaveKeepsReadMonotonic},
		{"SaveRejectsOwnerChange", testSaveRejectsOwnerChange},
		{"SaveAfterDeleteIsNotFound", testSaveAfterDeleteIsNotFound},
		{"SaveNeverCreatedIsNotFound", testSaveNeverCreatedIsNotFound},
		{"DeleteReadBefore", testDeleteReadBefore},
		{"ExampleScenario", testExampleScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewClock(epoch)
			tt.fn(t, factory(t, clock), clock)
		})
	}
}

func create(t *testing.T, repo domain.NotificationRepository, userID, body string) *domain.Notification {
	t.Helper()
	n, err := repo.Create(context.Background(), domain.CreateInput{UserID: userID, Payload: payload(body)})
	require.NoError(t, err)
	return n
}

func bodies(items []*domain.Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.Payload.Body)
	}
	return out
}

func testCreateAssignsDefaults(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()

	in := domain.CreateInput{
		UserID: "user-1",
		Payload: domain.Payload{
			Type:     "order.shipped",
			Body:     "Your order is on the way",
			Metadata: domain.Metadata{"order_id": "42", "items": float64(3)},
		},
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	_, ok := domain.NormalizeID(created.ID)
	assert.True(t, ok, "id must be a UUID: %q", created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.Read)
	assert.True(t, epoch.Equal(created.CreatedAt), "created_at %s", created.CreatedAt)
	assert.Equal(t, in.Payload, created.Payload)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.UserID, found.UserID)
	assert.Equal(t, created.Payload, found.Payload)
	assert.False(t, found.Read)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	other := create(t, repo, "user-1", "second")
	assert.NotEqual(t, created.ID, other.ID)
}

func testCreateValidation(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()

	inputs := map[string]domain.CreateInput{
		"blank user":   {UserID: "  ", Payload: payload("body")},
		"blank type":   {UserID: "user-1", Payload: domain.Payload{Body: "body"}},
		"blank body":   {UserID: "user-1", Payload: domain.Payload{Type: "info"}},
		"bad metadata": {UserID: "user-1", Payload: domain.Payload{Type: "info", Body: "b", Metadata: domain.Metadata{"ch": make(chan int)}}},
	}

	for name, in := range inputs {
		_, err := repo.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
}

func testFindOneIsScoped(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "hello")

	found, err := repo.FindOne(ctx, n.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, n.ID, found.ID)

	_, err = repo.FindOne(ctx, n.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	unscoped, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", unscoped.UserID)
}

func testMalformedIDIsNotFound(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	create(t, repo, "user-1", "hello")

	for _, id := range []string{"", "42", "not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		_, err = repo.FindOne(ctx, id, "user-1")
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		_, err = repo.FindOneAndDelete(ctx, id, "user-1")
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}

func testBlankUserIsValidationError(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "hello")

	_, err := repo.FindOne(ctx, n.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.FindForUser(ctx, "", domain.FindOptions{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.GetUnreadCount(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.MarkAsRead(ctx, "", []string{n.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.MarkAllAsRead(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.FindOneAndDelete(ctx, n.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func testMarkAsReadIdempotent(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "hello")

	updated, err := repo.MarkAsRead(ctx, "user-1", []string{n.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	updated, err = repo.MarkAsRead(ctx, "user-1", []string{n.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	found, err := repo.FindOne(ctx, n.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, found.Read)
	assert.Equal(t, n.Payload, found.Payload)
	assert.True(t, n.CreatedAt.Equal(found.CreatedAt))
}

func testMarkAsReadSkipsInvalid(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	a := create(t, repo, "user-1", "a")
	b := create(t, repo, "user-1", "b")
	foreign := create(t, repo, "user-2", "c")

	updated, err := repo.MarkAsRead(ctx, "user-1", []string{
		a.ID, a.ID, "garbage", foreign.ID, domain.NewID(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	updated, err = repo.MarkAsRead(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stillB, err := repo.FindOne(ctx, b.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, stillB.Read)

	stillForeign, err := repo.FindByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.False(t, stillForeign.Read)
}

func testMarkAllAsRead(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		create(t, repo, "user-1", "n")
	}
	create(t, repo, "user-2", "other")

	updated, err := repo.MarkAllAsRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	updated, err = repo.MarkAllAsRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	count, err = repo.GetUnreadCount(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testDefaultOrderNewestFirst(t *testing.T, repo domain.NotificationRepository, clock *Clock) {
	ctx := context.Background()

	clock.Set(epoch)
	create(t, repo, "user-1", "T1")
	clock.Set(epoch.Add(time.Minute))
	create(t, repo, "user-1", "T2")
	clock.Set(epoch.Add(2 * time.Minute))
	create(t, repo, "user-1", "T3")
	create(t, repo, "user-2", "foreign")

	page, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"T3", "T2", "T1"}, bodies(page.Items))
	assert.Empty(t, page.NextCursor)
}

func testOldestFirstAndTieBreak(t *testing.T, repo domain.NotificationRepository, clock *Clock) {
	ctx := context.Background()

	ids := []string{
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000003",
	}
	for _, id := range ids {
		_, err := repo.Save(ctx, &domain.Notification{
			ID:        id,
			UserID:    "user-1",
			Payload:   payload(id[len(id)-1:]),
			CreatedAt: epoch,
		})
		require.NoError(t, err)
	}
	clock.Set(epoch.Add(-time.Hour))
	create(t, repo, "user-1", "0")

	newest, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1", "0"}, bodies(newest.Items))

	oldest, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Sort: domain.SortOldestFirst})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3"}, bodies(oldest.Items))
}

func seed(t *testing.T, repo domain.NotificationRepository, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		create(t, repo, userID, string(rune('a'+i)))
	}
}

func testOffsetPagination(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	seed(t, repo, "user-1", 5)

	first, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Limit: ptr.Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d"}, bodies(first.Items))
	assert.NotEmpty(t, first.NextCursor)

	second, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Limit: ptr.Ptr(2), Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, bodies(second.Items))

	last, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Limit: ptr.Ptr(2), Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, bodies(last.Items))
	assert.Empty(t, last.NextCursor)

	beyond, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
}

func testCursorPagination(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	seed(t, repo, "user-1", 5)

	for _, sort := range []domain.SortOrder{domain.SortNewestFirst, domain.SortOldestFirst} {
		opts := domain.FindOptions{Limit: ptr.Ptr(2), Sort: sort}
		var got []string
		pages := 0

		for {
			page, err := repo.FindForUser(ctx, "user-1", opts)
			require.NoError(t, err)
			got = append(got, bodies(page.Items)...)
			pages++
			if page.NextCursor == "" {
				break
			}
			opts.Cursor = page.NextCursor
		}

		assert.Equal(t, 3, pages, sort)
		if sort == domain.SortNewestFirst {
			assert.Equal(t, []string{"e", "d", "c", "b", "a"}, got)
		} else {
			assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
		}
	}
}

func testFindOptionsValidation(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	seed(t, repo, "user-1", 3)

	page, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{Limit: ptr.Ptr(1)})
	require.NoError(t, err)

	invalid := map[string]domain.FindOptions{
		"zero limit":      {Limit: ptr.Ptr(0)},
		"negative limit":  {Limit: ptr.Ptr(-5)},
		"negative offset": {Offset: -1},
		"malformed":       {Cursor: "%%%"},
		"not json":        {Cursor: "bm90LWpzb24"},
		"cursor+offset":   {Cursor: page.NextCursor, Offset: 1},
		"unknown sort":    {Sort: "random"},
	}

	for name, opts := range invalid {
		_, err := repo.FindForUser(ctx, "user-1", opts)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
}

func testUnreadOnly(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	a := create(t, repo, "user-1", "a")
	create(t, repo, "user-1", "b")
	create(t, repo, "user-1", "c")

	_, err := repo.MarkAsRead(ctx, "user-1", []string{a.ID})
	require.NoError(t, err)

	page, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, bodies(page.Items))

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, len(page.Items), count)
}

func testIterate(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	seed(t, repo, "user-1", 5)

	seq := domain.Iterate(ctx, repo, "user-1", domain.FindOptions{Limit: ptr.Ptr(2)})

	for pass := 0; pass < 2; pass++ {
		var got []string
		for n, err := range seq {
			require.NoError(t, err)
			got = append(got, n.Payload.Body)
		}
		assert.Equal(t, []string{"e", "d", "c", "b", "a"}, got, "pass %d", pass)
	}

	var first []string
	for n, err := range seq {
		require.NoError(t, err)
		first = append(first, n.Payload.Body)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"e", "d", "c"}, first)

	for _, err := range domain.Iterate(ctx, repo, "user-1", domain.FindOptions{Limit: ptr.Ptr(0)}) {
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func testFindOneAndDelete(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "bye")

	_, err := repo.FindOneAndDelete(ctx, n.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := repo.FindOneAndDelete(ctx, n.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, n.ID, deleted.ID)
	assert.Equal(t, n.Payload, deleted.Payload)
	assert.False(t, deleted.Read)

	_, err = repo.FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindOneAndDelete(ctx, n.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testConcurrentDeleteExactlyOnce(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "race")

	const callers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		deleted   int
		notFound  int
		unexpects []error
	)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.FindOneAndDelete(ctx, n.ID, "user-1")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				deleted++
			case errors.Is(err, domain.ErrNotFound):
				notFound++
			default:
				unexpects = append(unexpects, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, unexpects)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, callers-1, notFound)
}

func testConcurrentMarkAsRead(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, create(t, repo, "user-1", "n").ID)
	}

	const callers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			updated, err := repo.MarkAsRead(ctx, "user-1", ids)
			assert.NoError(t, err)

			mu.Lock()
			total += updated
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, len(ids), total)

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func testSaveUpdatesPayload(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "draft")

	n.Payload.Body = "final"
	n.Payload.Metadata = domain.Metadata{"edited": true}
	// Переданное время создания игнорируется для существующей записи
	n.CreatedAt = epoch.Add(24 * time.Hour)

	saved, err := repo.Save(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, "final", saved.Payload.Body)
	assert.Equal(t, true, saved.Payload.Metadata["edited"])
	assert.True(t, epoch.Equal(saved.CreatedAt))

	found, err := repo.FindOne(ctx, n.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Payload, found.Payload)

	n.Payload.Body = ""
	_, err = repo.Save(ctx, n)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.Save(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func testSaveKeepsReadMonotonic(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "hello")

	stale := *n
	_, err := repo.MarkAsRead(ctx, "user-1", []string{n.ID})
	require.NoError(t, err)

	stale.Payload.Body = "edited"
	saved, err := repo.Save(ctx, &stale)
	require.NoError(t, err)
	assert.True(t, saved.Read)
	assert.Equal(t, "edited", saved.Payload.Body)

	other := create(t, repo, "user-1", "other")
	other.Read = true
	saved, err = repo.Save(ctx, other)
	require.NoError(t, err)
	assert.True(t, saved.Read)

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func testSaveRejectsOwnerChange(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "mine")

	hijacked := *n
	hijacked.UserID = "user-2"
	hijacked.Payload.Body = "theirs"

	_, err := repo.Save(ctx, &hijacked)
	assert.ErrorIs(t, err, domain.ErrValidation)

	found, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.UserID)
	assert.Equal(t, "mine", found.Payload.Body)

	malformed := *n
	malformed.ID = "not-a-uuid"
	_, err = repo.Save(ctx, &malformed)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func testSaveAfterDeleteIsNotFound(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	n := create(t, repo, "user-1", "draft")

	fetched, err := repo.FindOne(ctx, n.ID, "user-1")
	require.NoError(t, err)

	deleted, err := repo.FindOneAndDelete(ctx, n.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, n.ID, deleted.ID)

	// Правка, начатая до удаления, не возвращает запись обратно
	fetched.Payload.Body = "edited"
	_, err = repo.Save(ctx, fetched)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testSaveNeverCreatedIsNotFound(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()
	id := domain.NewID()

	_, err := repo.Save(ctx, &domain.Notification{
		ID:        id,
		UserID:    "user-1",
		Payload:   payload("imported"),
		Read:      true,
		CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := repo.FindForUser(ctx, "user-1", domain.FindOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func testDeleteReadBefore(t *testing.T, repo domain.NotificationRepository, clock *Clock) {
	ctx := context.Background()

	clock.Set(epoch)
	oldRead := create(t, repo, "user-1", "old-read")
	oldUnread := create(t, repo, "user-1", "old-unread")
	clock.Set(epoch.Add(48 * time.Hour))
	newRead := create(t, repo, "user-2", "new-read")

	_, err := repo.MarkAsRead(ctx, "user-1", []string{oldRead.ID})
	require.NoError(t, err)
	_, err = repo.MarkAsRead(ctx, "user-2", []string{newRead.ID})
	require.NoError(t, err)

	deleted, err := repo.DeleteReadBefore(ctx, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = repo.FindByID(ctx, oldRead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.FindByID(ctx, oldUnread.ID)
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, newRead.ID)
	assert.NoError(t, err)
}

func testExampleScenario(t *testing.T, repo domain.NotificationRepository, _ *Clock) {
	ctx := context.Background()

	a := create(t, repo, "U1", "A")
	create(t, repo, "U1", "B")
	c := create(t, repo, "U2", "C")

	count, err := repo.GetUnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	updated, err := repo.MarkAsRead(ctx, "U1", []string{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	foundC, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, foundC.Read)

	count, err = repo.GetUnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
