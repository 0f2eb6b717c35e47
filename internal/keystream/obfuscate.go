package keystream

import (
	"fmt"

	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/format"
	"github.com/istem/hashpack/internal/checksum"
)

// Obfuscator XORs packed streams with a keystream and manages the checksum byte.
type Obfuscator struct {
	secret   []byte
	checksum bool
	mode     format.KeystreamMode
}

// NewObfuscator creates an Obfuscator. Any mode other than format.KeystreamLegacy
// uses Derive.
func NewObfuscator(secret []byte, withChecksum bool, mode format.KeystreamMode) *Obfuscator {
	return &Obfuscator{
		secret:   append([]byte(nil), secret...),
		checksum: withChecksum,
		mode:     mode,
	}
}

// Keystream returns length keystream bytes for this obfuscator's generation.
func (o *Obfuscator) Keystream(length int) []byte {
	if o.mode == format.KeystreamLegacy {
		return Legacy(length, o.secret)
	}

	return Derive(length, o.secret, false)
}

// Seal prepends the checksum byte (when enabled) and XORs the result with the keystream.
// The input is not modified.
func (o *Obfuscator) Seal(packed []byte) []byte {
	out := make([]byte, 0, len(packed)+1)
	if o.checksum {
		out = append(out, checksum.Byte(packed, o.secret))
	}
	out = append(out, packed...)

	xorInPlace(out, o.Keystream(len(out)))

	return out
}

// Open reverses Seal. With checksum enabled, the leading byte is removed and
// verified against the remaining bytes.
//
// Returns errs.ErrChecksumMismatch on verification failure, or errs.ErrMalformedStream
// if the sealed data is too short to carry a checksum.
func (o *Obfuscator) Open(sealed []byte) ([]byte, error) {
	out := append([]byte(nil), sealed...)
	xorInPlace(out, o.Keystream(len(out)))

	if !o.checksum {
		return out, nil
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: missing checksum byte", errs.ErrMalformedStream)
	}

	want, payload := out[0], out[1:]
	if got := checksum.Byte(payload, o.secret); got != want {
		return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x", errs.ErrChecksumMismatch, got, want)
	}

	return payload, nil
}

func xorInPlace(dst, key []byte) {
	for i := range dst {
		dst[i] ^= key[i]
	}
}
