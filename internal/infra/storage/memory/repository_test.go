package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/storagetest"
)

func TestRepository_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, clock *storagetest.Clock) domain.NotificationRepository {
		return NewRepository(WithClock(clock.Now))
	})
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.CreateInput{
		UserID:  "user-1",
		Payload: domain.Payload{Type: "info", Body: "hello", Metadata: domain.Metadata{"k": "v"}},
	})
	require.NoError(t, err)

	created.Read = true
	created.Payload.Body = "mutated"
	created.Payload.Metadata["k"] = "mutated"

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found.Read)
	assert.Equal(t, "hello", found.Payload.Body)
	assert.Equal(t, "v", found.Payload.Metadata["k"])
}

func TestRepository_DuplicateGeneratedID(t *testing.T) {
	repo := NewRepository(WithIDGenerator(func() string {
		return "6f1c2a3e-9d4b-4c1a-8e2f-1a2b3c4d5e6f"
	}))
	ctx := context.Background()
	in := domain.CreateInput{UserID: "user-1", Payload: domain.Payload{Type: "info", Body: "x"}}

	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	_, err = repo.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRepository_CanonicalIDLookup(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.CreateInput{
		UserID:  "user-1",
		Payload: domain.Payload{Type: "info", Body: "x"},
	})
	require.NoError(t, err)

	upper := []byte(created.ID)
	for i, c := range upper {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 'a' + 'A'
		}
	}

	found, err := repo.FindOne(ctx, string(upper), "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}
