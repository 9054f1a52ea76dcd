package handlers

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader заголовок с идентификатором пользователя, проставляется шлюзом
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// WithUserID кладёт идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext достаёт идентификатор пользователя из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// UserIDFromRequest читает идентификатор пользователя из заголовка
func UserIDFromRequest(r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	return userID, userID != ""
}
