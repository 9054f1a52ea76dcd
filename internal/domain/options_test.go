package domain

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	c := Cursor{
		CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 123456000, time.FixedZone("MSK", 3*3600)),
		ID:        "5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01",
	}

	got, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.Equal(t, c.ID, got.ID)
}

func TestCursor_EncodeIsURLSafe(t *testing.T) {
	token := Cursor{CreatedAt: time.Unix(0, 0), ID: "5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01"}.Encode()

	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestDecodeCursor_Malformed(t *testing.T) {
	encode := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "!!!"},
		{name: "no separator", token: encode("2026-03-01T12:30:00Z")},
		{name: "bad time", token: encode("yesterday|5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01")},
		{name: "bad id", token: encode("2026-03-01T12:30:00Z|not-a-uuid")},
		{name: "empty id", token: encode("2026-03-01T12:30:00Z|")},
		{name: "legacy json", token: encode(`{"t":"2026-03-01T12:30:00Z","id":"5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestFindOptions_CursorAndOffset(t *testing.T) {
	token := Cursor{CreatedAt: time.Unix(100, 0), ID: "5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01"}.Encode()

	_, err := FindOptions{Cursor: token, Offset: 5}.Normalize()
	assert.ErrorIs(t, err, ErrValidation)

	q, err := FindOptions{Cursor: token}.Normalize()
	require.NoError(t, err)
	require.NotNil(t, q.After)
	assert.Equal(t, "5f0c9d2e-8a47-4c1b-9d3e-2b6f7a8c9d01", q.After.ID)
}
