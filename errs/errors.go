// Package errs defines the sentinel errors returned by hashpack.
//
// Callers should match them with errors.Is; most are wrapped with additional
// context by the package that returns them.
package errs

import "errors"

// Encoding errors.
var (
	// ErrPayloadTooLarge is returned when a single value's payload exceeds 4095 bytes.
	ErrPayloadTooLarge = errors.New("value payload exceeds maximum length")
	// ErrUnsupportedValue is returned when a Go value has no token representation.
	ErrUnsupportedValue = errors.New("unsupported value type")
	// ErrLeadingZero is returned when the leading-zero guard runs out of retries.
	ErrLeadingZero = errors.New("unable to avoid leading zero byte")
)

// Decoding errors.
var (
	// ErrInvalidToken wraps every decode failure.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMalformedStream is returned for structurally invalid packed streams.
	ErrMalformedStream = errors.New("malformed packed stream")
	// ErrChecksumMismatch is returned when the embedded checksum byte does not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrInvalidSymbol is returned when a token contains a symbol outside the alphabet.
	ErrInvalidSymbol = errors.New("symbol not in alphabet")
	// ErrInvalidPayload is returned when a payload cannot be decoded as its type.
	ErrInvalidPayload = errors.New("invalid payload for value type")
)

// Configuration errors.
var (
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrDuplicateKey    = errors.New("duplicate codec in keyring")
	ErrNoKeys          = errors.New("keyring requires at least one codec")
)
