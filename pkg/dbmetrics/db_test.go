package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type observation struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu           sync.Mutex
	observations []observation
	poolStats    int
}

func (f *fakeRecorder) ObserveDBQuery(_ string, operation string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, observation{operation: operation, err: err})
}

func (f *fakeRecorder) SetDBPoolStats(string, sql.DBStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.poolStats++
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "SELECT id FROM notifications", want: "select"},
		{query: "  insert into notifications (id) values ($1)", want: "insert"},
		{query: "UPDATE notifications SET is_read = $1", want: "update"},
		{query: "DELETE FROM notifications RETURNING id", want: "delete"},
		{query: "VACUUM", want: "other"},
		{query: "", want: "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Operation(tt.query), tt.query)
	}
}

func TestDB_RecordsQueries(t *testing.T) {
	rec := &fakeRecorder{}
	db := Wrap(openDB(t), rec, "inbox")
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)

	var n int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "SELECT * FROM missing")
	require.Error(t, err)

	require.Len(t, rec.observations, 3)
	assert.Equal(t, "create", rec.observations[0].operation)
	assert.Equal(t, "select", rec.observations[1].operation)
	assert.NoError(t, rec.observations[1].err)
	assert.Error(t, rec.observations[2].err)
}

func TestDB_NilRecorder(t *testing.T) {
	db := Wrap(openDB(t), nil, "inbox")

	_, err := db.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER)")
	assert.NoError(t, err)
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(openDB(t), nil, "inbox")
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestWrapWithDefault_StopsOnClose(t *testing.T) {
	rec := &fakeRecorder{}
	stop := make(chan struct{})

	WrapWithDefault(openDB(t), rec, "inbox", stop)
	close(stop)

	require.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return rec.poolStats >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestObserve_IgnoresNoRows(t *testing.T) {
	rec := &fakeRecorder{}
	observe(rec, "inbox", "SELECT 1", time.Now(), sql.ErrNoRows)
	observe(rec, "inbox", "SELECT 1", time.Now(), errors.New("boom"))

	require.Len(t, rec.observations, 2)
	assert.NoError(t, rec.observations[0].err)
	assert.Error(t, rec.observations[1].err)
}
