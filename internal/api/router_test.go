package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InboxService/internal/api/handlers"
	"github.com/m04kA/SMC-InboxService/internal/api/handlers/models"
	"github.com/m04kA/SMC-InboxService/internal/domain"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-InboxService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-InboxService/internal/service/notifications"
	"github.com/m04kA/SMC-InboxService/pkg/logger"
)

func newRepo() *memory.Repository {
	clock := storagetest.NewClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	return memory.NewRepository(memory.WithClock(clock.Now))
}

type listResponse struct {
	Notifications []models.NotificationResponse `json:"notifications"`
	NextCursor    string                        `json:"next_cursor"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T, repo notifications.NotificationRepository, opts ...func(*Options)) *apiClient {
	t.Helper()

	o := Options{
		Service: notifications.NewService(repo, nil, nil),
		Logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &apiClient{t: t, router: NewRouter(o)}
}

func (c *apiClient) do(method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(handlers.UserIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (c *apiClient) create(userID, body string) models.NotificationResponse {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/v1/notifications", "", map[string]interface{}{
		"user_id": userID,
		"type":    "info",
		"body":    body,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.NotificationResponse](c.t, rec)
}

func TestRouter_Health(t *testing.T) {
	c := newClient(t, newRepo())

	rec := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func TestRouter_HealthUnhealthy(t *testing.T) {
	c := newClient(t, newRepo(), func(o *Options) { o.Pinger = failingPinger{} })

	rec := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Create(t *testing.T) {
	c := newClient(t, newRepo())

	created := c.create("user-1", "hello")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.Read)

	rec := c.do(http.MethodPost, "/api/v1/notifications", "", map[string]string{"user_id": "user-1", "type": "info"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/notifications", "", map[string]string{"user_id": "u", "unknown": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequiresUser(t *testing.T) {
	c := newClient(t, newRepo())

	for _, path := range []string{"/api/v1/notifications", "/api/v1/notifications/unread-count"} {
		rec := c.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_Scenario(t *testing.T) {
	c := newClient(t, newRepo())

	a := c.create("user-1", "A")
	b := c.create("user-1", "B")
	other := c.create("user-2", "C")

	rec := c.do(http.MethodGet, "/api/v1/notifications/unread-count", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[models.CountResponse](t, rec).Count)

	// Чужое уведомление не видно и не помечается
	rec = c.do(http.MethodGet, "/api/v1/notifications/"+other.ID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/notifications/read", "user-1", map[string][]string{"ids": {a.ID, a.ID, other.ID, "garbage"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.UpdatedResponse](t, rec).Updated)

	rec = c.do(http.MethodGet, "/api/v1/notifications/"+a.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.NotificationResponse](t, rec).Read)

	rec = c.do(http.MethodGet, "/api/v1/notifications", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listResponse](t, rec)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, b.ID, list.Notifications[0].ID)
	assert.Equal(t, a.ID, list.Notifications[1].ID)

	rec = c.do(http.MethodPost, "/api/v1/notifications/read-all", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.UpdatedResponse](t, rec).Updated)

	rec = c.do(http.MethodDelete, "/api/v1/notifications/"+b.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, b.ID, decode[models.NotificationResponse](t, rec).ID)

	rec = c.do(http.MethodDelete, "/api/v1/notifications/"+b.ID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodDelete, "/api/v1/notifications/"+other.ID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/v1/notifications/unread-count", "user-2", nil)
	assert.Equal(t, 1, decode[models.CountResponse](t, rec).Count)
}

func TestRouter_ListPaging(t *testing.T) {
	c := newClient(t, newRepo())

	for i := 0; i < 5; i++ {
		c.create("user-1", fmt.Sprintf("n%d", i))
	}

	var seen []string
	path := "/api/v1/notifications?limit=2&sort=oldest"
	for {
		rec := c.do(http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[listResponse](t, rec)
		for _, n := range page.Notifications {
			seen = append(seen, n.Body)
		}
		if page.NextCursor == "" {
			break
		}
		path = "/api/v1/notifications?limit=2&sort=oldest&cursor=" + page.NextCursor
	}
	assert.Equal(t, []string{"n0", "n1", "n2", "n3", "n4"}, seen)

	for _, query := range []string{"limit=abc", "limit=0", "sort=sideways", "unread=maybe", "offset=-1", "cursor=%21%21"} {
		rec := c.do(http.MethodGet, "/api/v1/notifications?"+query, "user-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestRouter_UpdatePayload(t *testing.T) {
	c := newClient(t, newRepo())
	n := c.create("user-1", "draft")

	rec := c.do(http.MethodPatch, "/api/v1/notifications/"+n.ID, "user-1", map[string]string{"body": "final"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "final", decode[models.NotificationResponse](t, rec).Body)

	rec = c.do(http.MethodPatch, "/api/v1/notifications/"+n.ID, "user-1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPatch, "/api/v1/notifications/"+n.ID, "user-1", map[string]string{"type": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPatch, "/api/v1/notifications/"+n.ID, "user-2", map[string]string{"body": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// unavailableRepo хранилище, недоступное для всех операций
type unavailableRepo struct {
	notifications.NotificationRepository
}

func (unavailableRepo) GetUnreadCount(context.Context, string) (int, error) {
	return 0, fmt.Errorf("%w: connection refused", domain.ErrStorage)
}

func TestRouter_StorageUnavailable(t *testing.T) {
	c := newClient(t, unavailableRepo{})

	rec := c.do(http.MethodGet, "/api/v1/notifications/unread-count", "user-1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type recordedRequest struct {
	route  string
	status int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) ObserveHTTPRequest(_, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{route: route, status: status})
}

func TestRouter_Metrics(t *testing.T) {
	recorder := &fakeRecorder{}
	c := newClient(t, newRepo(), func(o *Options) {
		o.Recorder = recorder
		o.MetricsPath = "/metrics"
		o.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		})
	})

	n := c.create("user-1", "hello")
	c.do(http.MethodGet, "/api/v1/notifications/"+n.ID, "user-1", nil)

	rec := c.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, recorder.requests, 3)
	assert.Equal(t, recordedRequest{route: "/api/v1/notifications", status: http.StatusCreated}, recorder.requests[0])
	assert.Equal(t, recordedRequest{route: "/api/v1/notifications/{id}", status: http.StatusOK}, recorder.requests[1])
}
