package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-sync",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync",
		Summary:     "Persist all in-memory vault state",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) fetchOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-fetch",
		Method:      http.MethodPost,
		Path:        "/api/v1/fetch",
		Summary:     "Reload the vault cache from the backend",
		Description: "A full reload, not an incremental one.",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) metadataOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-metadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata",
		Summary:     "Vault identity and size snapshot",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
