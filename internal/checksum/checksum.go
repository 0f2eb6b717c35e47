// Package checksum implements the folding checksum used for tamper evidence.
//
// It is not a cryptographic MAC: it only makes accidental or casual modification
// of a token detectable.
package checksum

import "github.com/istem/hashpack/format"

const (
	bytePrimary = 0xD3
	byteMask    = 0xFF
	wordPrimary = 0xAC4F
	wordMask    = 0xFFFF
)

// Sum folds data into a byte (format.ChecksumByte) or a word (format.ChecksumWord).
//
// For every input byte: acc += b*primary; acc = (acc ^ acc>>8) & mask.
// A non-empty secret seeds the accumulator with Sum(secret, nil, mode); an empty
// secret starts from zero. Any mode other than ChecksumWord folds as a byte.
func Sum(data, secret []byte, mode format.ChecksumMode) int {
	primary, mask := bytePrimary, byteMask
	if mode == format.ChecksumWord {
		primary, mask = wordPrimary, wordMask
	}

	acc := 0
	if len(secret) > 0 {
		acc = Sum(secret, nil, mode)
	}

	for _, b := range data {
		acc += int(b) * primary
		acc = (acc ^ (acc >> 8)) & mask
	}

	return acc
}

// Byte is Sum in byte mode truncated to a byte.
func Byte(data, secret []byte) byte {
	return byte(Sum(data, secret, format.ChecksumByte))
}
