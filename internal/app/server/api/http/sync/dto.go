package sync

import "lockvault/internal/domain/meta"

type output struct {
	Body response
}

type response struct {
	Status string `json:"status"`
}

type metadataOutput struct {
	Body metadataResponse
}

type metadataResponse struct {
	Status   string             `json:"status"`
	Metadata meta.VaultMetadata `json:"metadata"`
}
