// Package keystream derives secret-keyed byte sequences and applies them to packed
// token bytes.
//
// Derive is the canonical generator: an iterated MD5 construction whose round count
// depends on the data itself, so the output is not periodic in the secret. Legacy
// reproduces the older generation that simply repeated the secret.
package keystream

import (
	"crypto/md5"

	"github.com/istem/hashpack/format"
	"github.com/istem/hashpack/internal/checksum"
)

const separator = '+'

// Derive returns exactly length pseudorandom bytes keyed by secret.
//
// With highEntropy set, each round contributes fewer bytes (at most 4 instead of 8)
// from a wider range of round counts; permutation drivers use this mode, obfuscation
// keystreams do not.
//
// An empty secret still yields length bytes; they depend only on length.
func Derive(length int, secret []byte, highEntropy bool) []byte {
	if length <= 0 {
		return nil
	}

	shift, quantity := 8, 7
	if highEntropy {
		shift, quantity = 4, 11
	}

	view := secretView(secret, length)
	out := make([]byte, 0, length+md5.Size)
	buf := make([]byte, 0, length+md5.Size+1+len(view))

	for len(out) < length {
		buf = append(buf[:0], out...)
		buf = append(buf, separator)
		buf = append(buf, view...)
		digest := md5.Sum(buf)

		count := checksum.Sum(digest[:], nil, format.ChecksumByte)%quantity + 2
		for round := 0; round < count; round++ {
			digest = md5.Sum(digest[:])
		}
		out = append(out, digest[:count%shift+1]...)

		if len(view) > 0 {
			view = view[:len(view)-1]
		}
	}

	return out[:length]
}

// secretView stretches secret cyclically to length bytes, or keeps its last length bytes.
func secretView(secret []byte, length int) []byte {
	if len(secret) == 0 {
		return nil
	}

	view := make([]byte, length)
	if len(secret) >= length {
		copy(view, secret[len(secret)-length:])
		return view
	}

	for i := range view {
		view[i] = secret[i%len(secret)]
	}

	return view
}
