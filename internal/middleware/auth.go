package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// UserSource loads user profiles by email. Satisfied by
// *repository.Repository.
type UserSource interface {
	GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error)
}

// ProfileCache caches user profiles between requests. Satisfied by
// *cache.Cache. A nil cache disables caching.
type ProfileCache interface {
	GetUserProfile(ctx context.Context, email string) (*model.UserProfile, error)
	SetUserProfile(ctx context.Context, user *model.UserProfile) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenManager
	Users  UserSource
	Cache  ProfileCache
}

// Auth returns a middleware that authenticates API requests. It verifies the
// bearer token from the Authorization header, loads the user's profile, and
// injects it into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			email, err := cfg.Tokens.Verify(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Check cache first
			var user *model.UserProfile
			cacheHit := false
			if cfg.Cache != nil {
				user, _ = cfg.Cache.GetUserProfile(r.Context(), email)
				cacheHit = user != nil
			}

			if user == nil {
				user, err = cfg.Users.GetUserByEmail(r.Context(), email)
				if err != nil {
					// Token was valid but the account no longer exists, or the
					// lookup failed. Same response either way.
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "unknown_user"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeAuthError(w)
					return
				}

				if cfg.Cache != nil {
					_ = cfg.Cache.SetUserProfile(r.Context(), user)
				}
			}

			cfg.Logger.Debug("authentication successful",
				slog.Int64("user_id", user.ID),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
}
