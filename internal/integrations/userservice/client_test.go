package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/internal/users/user%2F1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user/1","name":"Alice","role":"client","created_at":"2025-01-15T10:00:00Z"}`))
		case "/internal/users/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/users/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/internal/users/garbage":
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	user, err := client.GetUser(ctx, "user/1")
	require.NoError(t, err)
	assert.Equal(t, "user/1", user.ID)
	assert.Equal(t, "Alice", user.Name)

	_, err = client.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUser(ctx, "down")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.GetUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUser(ctx, "teapot")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).GetUser(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
