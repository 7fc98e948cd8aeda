package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lockvault/internal/app/server/guard"
	"lockvault/internal/domain/user"
)

// Auth validates bearer session tokens against the vault's live
// sessions. Every rejection looks the same to the caller.
type Auth struct {
	guard *guard.Guard
	log   *slog.Logger
}

func New(g *guard.Guard, log *slog.Logger) *Auth {
	return &Auth{
		guard: g,
		log:   log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const usernameKey contextKey = "username"

// Middleware returns the huma middleware validating the Authorization
// header and stashing the session's username in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			a.reject(ctx, "missing bearer token")
			return
		}

		token, err := user.ParseToken(raw)
		if err != nil {
			a.reject(ctx, "malformed token")
			return
		}

		v := a.guard.Acquire()
		username, ok := v.ValidSession(token)
		a.guard.Release()
		if !ok {
			a.reject(ctx, "unknown session")
			return
		}

		next(huma.WithContext(ctx, WithUsername(ctx.Context(), username)))
	}
}

func (a *Auth) reject(ctx huma.Context, reason string) {
	a.log.Debug("request rejected", slog.String("reason", reason))
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	})
}

// WithUsername stamps an authenticated user on a context the way the
// middleware does.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsername returns the authenticated user the middleware resolved.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}
