// Package permute applies the secret-keyed permutation to the type-code table and
// the output alphabet.
//
// The swap index combines the driver byte, a cycling cursor and a running sum, and
// divides by i rather than i+1. It is not a uniform Fisher-Yates shuffle and must
// not be changed: every derived table and every issued token depends on it.
package permute

import (
	"github.com/istem/hashpack/format"
	"github.com/istem/hashpack/internal/keystream"
)

// Shuffle permutes items in place, driven by the driver bytes.
// An empty driver leaves items untouched.
func Shuffle[T any](items []T, driver []byte) {
	if len(driver) == 0 {
		return
	}

	v, p := 0, 0
	for i := len(items) - 1; i > 0; i, v = i-1, v+1 {
		v %= len(driver)
		b := int(driver[v])
		p += b
		j := (b + v + p) % i
		items[i], items[j] = items[j], items[i]
	}
}

// Driver returns the bytes that drive the permutation of n items.
//
// The KDF generation derives them with the high-entropy keystream; the legacy
// generation uses the raw secret bytes.
func Driver(n int, secret []byte, mode format.KeystreamMode) []byte {
	if mode == format.KeystreamLegacy {
		return append([]byte(nil), secret...)
	}

	return keystream.Derive(n, secret, true)
}

// TypeCodes assigns wire codes 1..7 to the value types for the given secret.
//
// The returned table is indexed by format.ValueType; index 0 (TypeUnused) stays 0.
func TypeCodes(secret []byte, mode format.KeystreamMode) [8]uint8 {
	order := format.ValueTypes
	Shuffle(order[:], Driver(len(order), secret, mode))

	var codes [8]uint8
	for i, vt := range order {
		codes[vt] = uint8(i + 1) //nolint:gosec
	}

	return codes
}

// Alphabet returns a permuted copy of symbols for the given secret.
func Alphabet(symbols []rune, secret []byte, mode format.KeystreamMode) []rune {
	out := append([]rune(nil), symbols...)
	Shuffle(out, Driver(len(out), secret, mode))

	return out
}
