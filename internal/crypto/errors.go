package crypto

import "errors"

var (
	// ErrInvalidCryptoLayer signals that an operation needs a crypto
	// capability that the current composition does not provide.
	ErrInvalidCryptoLayer = errors.New("crypto layer missing or lacking features")
	// ErrFailedCrypto is a generic operation failure.
	ErrFailedCrypto = errors.New("crypto operation failed")
	// ErrFailedKey means the provided key material is unusable. Hitting it
	// is a configuration error, not a runtime condition to retry.
	ErrFailedKey = errors.New("bad key material")
	// ErrAuthenticationFailure means the integrity tag did not verify:
	// either the ciphertext was tampered with or the key is wrong.
	ErrAuthenticationFailure = errors.New("authentication failure")
	// ErrFailedEncode covers serialization failures before sealing.
	ErrFailedEncode = errors.New("encode failed")
	// ErrFailedDecode covers malformed envelopes, as opposed to
	// ErrAuthenticationFailure which covers valid envelopes that fail to open.
	ErrFailedDecode = errors.New("decode failed")
)
