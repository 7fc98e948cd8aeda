package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Liveness probe",
		Description: "Reports that the vault server is up. Requires no session and reveals nothing about the vault's contents.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
