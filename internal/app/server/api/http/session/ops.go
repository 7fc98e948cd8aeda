package session

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "session-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/session",
		Summary:     "Authenticate and issue a session token",
		Tags:        []string{"session"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "session-logout",
		Method:      http.MethodDelete,
		Path:        "/api/v1/session",
		Summary:     "Retire the current session token",
		Tags:        []string{"session"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authorized,
	}
}
