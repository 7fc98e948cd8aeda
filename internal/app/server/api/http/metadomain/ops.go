package metadomain

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "meta-create-domain",
		Method:      http.MethodPost,
		Path:        "/api/v1/meta/{domain}",
		Summary:     "Create a metadata domain",
		Tags:        []string{"meta"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pullOp() huma.Operation {
	return huma.Operation{
		OperationID: "meta-pull-domain",
		Method:      http.MethodGet,
		Path:        "/api/v1/meta/{domain}",
		Summary:     "Pull a metadata domain",
		Tags:        []string{"meta"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setFieldOp() huma.Operation {
	return huma.Operation{
		OperationID: "meta-set-field",
		Method:      http.MethodPut,
		Path:        "/api/v1/meta/{domain}/{key}",
		Summary:     "Set a metadata field",
		Tags:        []string{"meta"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getFieldOp() huma.Operation {
	return huma.Operation{
		OperationID: "meta-get-field",
		Method:      http.MethodGet,
		Path:        "/api/v1/meta/{domain}/{key}",
		Summary:     "Read a metadata field",
		Tags:        []string{"meta"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
