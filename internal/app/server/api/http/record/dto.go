package record

import (
	"encoding/json"

	"lockvault/internal/domain/record"
)

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status  string          `json:"status"`
	Records []record.Header `json:"records"`
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Name     string   `json:"name" doc:"Record name, unique within the vault" minLength:"1"`
	Category string   `json:"category,omitempty" doc:"Primary grouping"`
	Tags     []string `json:"tags,omitempty" doc:"Custom labels"`
}

type nameInput struct {
	Name string `path:"name" doc:"Record name"`
}

type findOutput struct {
	Body findResponse
}

type findResponse struct {
	Status string         `json:"status"`
	Header *record.Header `json:"header,omitempty"`
}

type setDataInput struct {
	Name string `path:"name" doc:"Record name"`
	Key  string `path:"key" doc:"Field key"`
	Body setDataRequest
}

type setDataRequest struct {
	// Value is a tagged payload: {"type": "text"|"boolean"|"number"|"map", "value": ...}
	Value json.RawMessage `json:"value" doc:"Tagged payload value"`
}

type getDataInput struct {
	Name string `path:"name" doc:"Record name"`
	Key  string `path:"key" doc:"Field key"`
}

type getDataOutput struct {
	Body getDataResponse
}

type getDataResponse struct {
	Status string          `json:"status"`
	Value  json.RawMessage `json:"value,omitempty"`
}

type output struct {
	Body response
}

type response struct {
	Status string `json:"status"`
}
