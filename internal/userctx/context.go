// Package userctx хранит идентификатор владельца запроса в context.
package userctx

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// DefaultOwner используется, когда аутентификация выключена
// и в контексте нет пользователя.
const DefaultOwner = "default"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}

// Owner возвращает пользователя из контекста либо DefaultOwner.
func Owner(ctx context.Context) string {
	if userID, ok := GetUserID(ctx); ok && userID != "" {
		return userID
	}
	return DefaultOwner
}
