// Package session exposes authentication over HTTP. Every failure
// collapses into a single generic rejection so callers learn nothing
// about which check failed.
package session

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "lockvault/internal/app/server/api/http/middleware/auth"
	"lockvault/internal/auth"
	"lockvault/internal/domain/user"
)

type Handler struct {
	authn      auth.Authenticator
	log        *slog.Logger
	middleware huma.Middlewares
	authorized huma.Middlewares
}

func NewHandler(authn auth.Authenticator, log *slog.Logger, public, authorized huma.Middlewares) *Handler {
	return &Handler{
		authn:      authn,
		log:        log,
		middleware: public,
		authorized: authorized,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) login(_ context.Context, input *loginInput) (*loginOutput, error) {
	token, err := h.authn.Authenticate(input.Body.Username, input.Body.Secret)
	if err != nil {
		h.log.Debug("authentication rejected", slog.String("user", input.Body.Username))
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &loginOutput{
		Body: loginResponse{
			Status: "Ok",
			Token:  token.String(),
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	username, ok := authmw.GetUsername(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	raw, _ := strings.CutPrefix(input.Authorization, "Bearer ")
	token, err := user.ParseToken(raw)
	if err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.authn.Deauthenticate(username, token); err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &logoutOutput{Body: statusResponse{Status: "Ok"}}, nil
}
