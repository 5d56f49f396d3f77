package auth

import (
	"context"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey contextKey = "current_user"

// ContextWithUser stores the authenticated user's profile in the context.
func ContextWithUser(ctx context.Context, user *model.UserProfile) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user's profile from the
// context. Returns nil if the request was not authenticated.
func UserFromContext(ctx context.Context) *model.UserProfile {
	user, ok := ctx.Value(userContextKey).(*model.UserProfile)
	if !ok {
		return nil
	}
	return user
}

// MustUserFromContext retrieves the authenticated user's profile and panics
// if absent. Use only behind the auth middleware.
func MustUserFromContext(ctx context.Context) *model.UserProfile {
	user := UserFromContext(ctx)
	if user == nil {
		panic("user not found in context - ensure auth middleware is applied")
	}
	return user
}
