package record

import (
	"context"
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lockvault/internal/app/server/guard"
	"lockvault/internal/domain/record"
)

// Handler exposes record CRUD and field access. Vault failures collapse
// into one generic error response; the detail stays in the server log.
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
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.setDataOp(), h.setData)
	huma.Register(api, h.getDataOp(), h.getData)
}

func (h *Handler) list(_ context.Context, _ *struct{}) (*listOutput, error) {
	v := h.guard.Acquire()
	headers := v.Headers()
	h.guard.Release()

	return &listOutput{
		Body: listResponse{
			Status:  "Ok",
			Records: headers,
		},
	}, nil
}

func (h *Handler) create(_ context.Context, input *createInput) (*output, error) {
	v := h.guard.Acquire()
	err := v.AddRecord(input.Body.Name, input.Body.Category, input.Body.Tags)
	h.guard.Release()
	if err != nil {
		return nil, h.failed("create record", err)
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) find(_ context.Context, input *nameInput) (*findOutput, error) {
	v := h.guard.Acquire()
	r, ok := v.GetRecord(input.Name)
	h.guard.Release()
	if !ok {
		// Absence is a normal outcome, not an error.
		return &findOutput{Body: findResponse{Status: "Absent"}}, nil
	}

	header := r.Header
	return &findOutput{
		Body: findResponse{
			Status: "Ok",
			Header: &header,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *nameInput) (*output, error) {
	v := h.guard.Acquire()
	err := v.DeleteRecord(ctx, input.Name)
	h.guard.Release()
	if err != nil {
		return nil, h.failed("delete record", err)
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) setData(_ context.Context, input *setDataInput) (*output, error) {
	var value record.Payload
	if err := json.Unmarshal(input.Body.Value, &value); err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid payload value")
	}

	v := h.guard.Acquire()
	ok := v.AddData(input.Name, input.Key, value)
	h.guard.Release()
	if !ok {
		return nil, h.failed("set data", nil)
	}

	return &output{Body: response{Status: "Ok"}}, nil
}

func (h *Handler) getData(_ context.Context, input *getDataInput) (*getDataOutput, error) {
	v := h.guard.Acquire()
	value, ok := v.GetData(input.Name, input.Key)
	h.guard.Release()
	if !ok {
		return &getDataOutput{Body: getDataResponse{Status: "Absent"}}, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, h.failed("encode data", err)
	}

	return &getDataOutput{
		Body: getDataResponse{
			Status: "Ok",
			Value:  raw,
		},
	}, nil
}

// failed logs the real cause and returns the generic external error.
func (h *Handler) failed(op string, err error) error {
	if err != nil {
		h.log.Error(op, slog.String("error", err.Error()))
	} else {
		h.log.Error(op)
	}
	return huma.Error400BadRequest("operation failed")
}
