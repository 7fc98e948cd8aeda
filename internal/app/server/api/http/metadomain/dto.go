package metadomain

import "encoding/json"

type domainInput struct {
	Domain string `path:"domain" doc:"Metadata domain name"`
}

type domainOutput struct {
	Body domainResponse
}

type domainResponse struct {
	Status string `json:"status"`
	Size   int    `json:"size,omitempty" doc:"Number of fields in the domain"`
}

type setFieldInput struct {
	Domain string `path:"domain" doc:"Metadata domain name"`
	Key    string `path:"key" doc:"Field key"`
	Body   setFieldRequest
}

type setFieldRequest struct {
	Value json.RawMessage `json:"value" doc:"Tagged payload value"`
}

type getFieldInput struct {
	Domain string `path:"domain" doc:"Metadata domain name"`
	Key    string `path:"key" doc:"Field key"`
}

type getFieldOutput struct {
	Body getFieldResponse
}

type getFieldResponse struct {
	Status string          `json:"status"`
	Value  json.RawMessage `json:"value,omitempty"`
}

type output struct {
	Body response
}

type response struct {
	Status string `json:"status"`
}
