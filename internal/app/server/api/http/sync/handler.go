// Package sync exposes vault persistence over HTTP: flushing the
// in-memory state to the backend, reloading it, and the metadata
// snapshot.
package sync

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lockvault/internal/app/server/guard"
)

type Handler struct {
	guard      *guard.Guard
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(g *guard.Guard, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		guard:      g,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncOp(), h.sync)
	huma.Register(api, h.fetchOp(), h.fetch)
	huma.Register(api, h.metadataOp(), h.metadata)
}

func (h *Handler) sync(ctx context.Context, _ *struct{}) (*output, error) {
	v := h.guard.Acquire()
	err := v.Sync(ctx)
	h.guard.Release()
	if err != nil {
		// Sync is best-effort per entity; earlier entities may already
		// be durable when this fires.
		h.log.Error("sync", slog.String("error", err.Error()))
		return nil, huma.Error400BadRequest("operation failed")
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) fetch(ctx context.Context, _ *struct{}) (*output, error) {
	v := h.guard.Acquire()
	err := v.Fetch(ctx)
	h.guard.Release()
	if err != nil {
		h.log.Error("fetch", slog.String("error", err.Error()))
		return nil, huma.Error400BadRequest("operation failed")
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) metadata(_ context.Context, _ *struct{}) (*metadataOutput, error) {
	v := h.guard.Acquire()
	md := v.Metadata()
	h.guard.Release()

	return &metadataOutput{
		Body: metadataResponse{
			Status:   "Ok",
			Metadata: md,
		},
	}, nil
}
