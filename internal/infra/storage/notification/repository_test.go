package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-InboxService/pkg/dbmetrics"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Run(context.Background(), db)
	require.NoError(t, err)

	return db
}

func TestRepository_SQLiteContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, clock *storagetest.Clock) domain.NotificationRepository {
		db := openSQLite(t)
		return NewRepository(dbmetrics.Wrap(db.DB, nil, "test"), SQLite, WithClock(clock.Now))
	})
}

func TestRepository_Timeout(t *testing.T) {
	db := openSQLite(t)
	repo := NewRepository(db.DB, SQLite)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.GetUnreadCount(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRepository_ClosedDatabase(t *testing.T) {
	db := openSQLite(t)
	repo := NewRepository(db.DB, SQLite)
	require.NoError(t, db.Close())

	_, err := repo.Create(context.Background(), domain.CreateInput{
		UserID:  "user-1",
		Payload: domain.Payload{Type: "info", Body: "x"},
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestRepository_InsideTransaction(t *testing.T) {
	db := openSQLite(t)
	wrapped := dbmetrics.Wrap(db.DB, nil, "test")
	repo := NewRepository(wrapped, SQLite)
	ctx := context.Background()

	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := dbmetrics.WithTx(ctx, tx)

	_, err = repo.Create(txCtx, domain.CreateInput{
		UserID:  "user-1",
		Payload: domain.Payload{Type: "info", Body: "x"},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgresDialect_Queries(t *testing.T) {
	ids := []string{"6f1c2a3e-9d4b-4c1a-8e2f-1a2b3c4d5e6f"}

	query, args, err := Postgres.builder.Update(tableName).
		Set("is_read", true).
		Where(map[string]interface{}{"user_id": "user-1", "is_read": false}).
		Where(Postgres.idIn(ids)).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE notifications SET is_read = $1 WHERE is_read = $2 AND user_id = $3 AND id = ANY($4::uuid[])",
		query,
	)
	require.Len(t, args, 4)
	assert.Equal(t, pq.Array(ids), args[3])

	query, _, err = Postgres.builder.Select("id").
		From(tableName).
		Where(Postgres.keysetExpr("<"), time.Time{}, ids[0]).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM notifications WHERE (created_at, id) < ($1, $2::uuid)", query)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	for _, name := range []string{"mysql", "pgx", "sqlite3"} {
		_, err = DialectFor(name)
		assert.Error(t, err, name)
	}
}

func TestExecError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: ErrTimeout},
		{name: "data exception", err: &pq.Error{Code: "22P02"}, want: domain.ErrValidation},
		{name: "not null violation", err: &pq.Error{Code: "23502"}, want: domain.ErrValidation},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: domain.ErrStorage},
		{name: "connection failure", err: &pq.Error{Code: "08006"}, want: domain.ErrStorage},
		{name: "unknown", err: errors.New("boom"), want: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, execError("Op", tt.err), tt.want)
		})
	}
}

func TestNormalizeIDs(t *testing.T) {
	id := "6F1C2A3E-9D4B-4C1A-8E2F-1A2B3C4D5E6F"

	got := normalizeIDs([]string{id, "garbage", id, "", "6f1c2a3e-9d4b-4c1a-8e2f-1a2b3c4d5e6f"})
	assert.Equal(t, []string{"6f1c2a3e-9d4b-4c1a-8e2f-1a2b3c4d5e6f"}, got)
}
