package crypto

import (
	"encoding/base64"
	"fmt"
)

// Base64Encode encodes arbitrary bytes for embedding in text transports.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode reverses Base64Encode.
func Base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedDecode, err)
	}
	return data, nil
}
