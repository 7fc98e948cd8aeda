// Package metadomain exposes the cleartext metadata namespaces of a
// vault over HTTP.
package metadomain

import (
	"context"
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lockvault/internal/app/server/guard"
	"lockvault/internal/domain/record"
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
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.pullOp(), h.pull)
	huma.Register(api, h.setFieldOp(), h.setField)
	huma.Register(api, h.getFieldOp(), h.getField)
}

func (h *Handler) create(_ context.Context, input *domainInput) (*output, error) {
	v := h.guard.Acquire()
	err := v.MetaAddDomain(input.Domain)
	h.guard.Release()
	if err != nil {
		h.log.Error("create domain", slog.String("error", err.Error()))
		return nil, huma.Error400BadRequest("operation failed")
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) pull(ctx context.Context, input *domainInput) (*domainOutput, error) {
	v := h.guard.Acquire()
	d, ok, err := v.MetaPullDomain(ctx, input.Domain)
	h.guard.Release()
	if err != nil {
		h.log.Error("pull domain", slog.String("error", err.Error()))
		return nil, huma.Error400BadRequest("operation failed")
	}
	if !ok {
		return &domainOutput{Body: domainResponse{Status: "Absent"}}, nil
	}

	return &domainOutput{
		Body: domainResponse{
			Status: "Ok",
			Size:   d.Size(),
		},
	}, nil
}

func (h *Handler) setField(_ context.Context, input *setFieldInput) (*output, error) {
	var value record.Payload
	if err := json.Unmarshal(input.Body.Value, &value); err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid payload value")
	}

	v := h.guard.Acquire()
	ok := v.MetaSet(input.Domain, input.Key, value)
	h.guard.Release()
	if !ok {
		return nil, huma.Error400BadRequest("operation failed")
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) getField(_ context.Context, input *getFieldInput) (*getFieldOutput, error) {
	v := h.guard.Acquire()
	value, ok := v.MetaGet(input.Domain, input.Key)
	h.guard.Release()
	if !ok {
		return &getFieldOutput{Body: getFieldResponse{Status: "Absent"}}, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		h.log.Error("encode field", slog.String("error", err.Error()))
		return nil, huma.Error400BadRequest("operation failed")
	}

	return &getFieldOutput{
		Body: getFieldResponse{
			Status: "Ok",
			Value:  raw,
		},
	}, nil
}
