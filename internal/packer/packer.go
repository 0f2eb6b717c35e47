// Package packer serializes typed payloads into the token's binary stream.
//
// Two layouts exist and the shorter one is emitted:
//
// Mixed stream, one header per value:
//
//	length < 16:     [0ccc llll]                 (1 byte)
//	length < 4096:   [1ccc llll] [llll llll]     (2 bytes, 12-bit length)
//
// Homogeneous stream, every value of one type and shorter than 256 bytes:
//
//	[0000 1ccc] ([length] [payload])*
//
// ccc is the permuted type code (1..7). A mixed header's top nibble is never zero
// for a valid code, so a zero top nibble in the first byte marks the homogeneous
// layout.
package packer

import (
	"fmt"

	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/internal/pool"
)

const (
	// MaxPayloadLength is the largest payload a mixed header can describe.
	MaxPayloadLength = 0xFFF

	shortPayloadLimit = 16
	homogeneousLimit  = 256
	homogeneousFlag   = 0x08
	twoByteFlag       = 0x80
	codeMask          = 0x07
)

// Chunk is one value's wire code and payload.
type Chunk struct {
	Code    uint8
	Payload []byte
}

// Pack serializes chunks, returning the shorter of the mixed and homogeneous
// layouts. When both have the same length the homogeneous layout wins.
//
// Returns errs.ErrPayloadTooLarge if any payload exceeds MaxPayloadLength, and
// errs.ErrMalformedStream for a code outside 1..7.
func Pack(chunks []Chunk) ([]byte, error) {
	mixed := pool.GetPackBuffer()
	defer pool.PutPackBuffer(mixed)
	homogeneous := pool.GetPackBuffer()
	defer pool.PutPackBuffer(homogeneous)

	oneType := len(chunks) > 0
	for i, c := range chunks {
		if c.Code == 0 || c.Code > codeMask {
			return nil, fmt.Errorf("%w: type code %d at value %d", errs.ErrMalformedStream, c.Code, i)
		}

		length := len(c.Payload)
		if length > MaxPayloadLength {
			return nil, fmt.Errorf("%w: value %d has %d bytes, max %d",
				errs.ErrPayloadTooLarge, i, length, MaxPayloadLength)
		}

		if oneType {
			switch {
			case c.Code != chunks[0].Code || length >= homogeneousLimit:
				oneType = false
			case i == 0:
				_ = homogeneous.WriteByte(homogeneousFlag | c.Code)
				fallthrough
			default:
				homogeneous.Grow(1 + length)
				_ = homogeneous.WriteByte(byte(length))
				homogeneous.MustWrite(c.Payload)
			}
		}

		mixed.Grow(2 + length)
		if length < shortPayloadLimit {
			_ = mixed.WriteByte(c.Code<<4 | byte(length))
		} else {
			_ = mixed.WriteByte((homogeneousFlag|c.Code)<<4 | byte(length>>8))
			_ = mixed.WriteByte(byte(length))
		}
		mixed.MustWrite(c.Payload)
	}

	if oneType && homogeneous.Len() <= mixed.Len() {
		return homogeneous.Clone(), nil
	}

	return mixed.Clone(), nil
}

// Unpack parses a stream produced by Pack.
//
// Payload slices alias data. An empty stream yields no chunks. Any zero type code,
// truncated header or payload overrun fails the whole stream with
// errs.ErrMalformedStream.
func Unpack(data []byte) ([]Chunk, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if data[0]&0xF0 == 0 {
		return unpackHomogeneous(data)
	}

	var chunks []Chunk
	for pos := 0; pos < len(data); {
		header := data[pos]
		code := (header & 0x70) >> 4
		if code == 0 {
			return nil, fmt.Errorf("%w: zero type code at offset %d", errs.ErrMalformedStream, pos)
		}

		length := int(header & 0x0F)
		start := pos + 1
		if header&twoByteFlag != 0 {
			if start >= len(data) {
				return nil, fmt.Errorf("%w: truncated header at offset %d", errs.ErrMalformedStream, pos)
			}
			length = length<<8 | int(data[start])
			start++
		}

		end := start + length
		if end > len(data) {
			return nil, fmt.Errorf("%w: payload of %d bytes overruns stream at offset %d",
				errs.ErrMalformedStream, length, pos)
		}

		chunks = append(chunks, Chunk{Code: code, Payload: data[start:end]})
		pos = end
	}

	return chunks, nil
}

func unpackHomogeneous(data []byte) ([]Chunk, error) {
	marker := data[0]
	code := marker & codeMask
	if marker&homogeneousFlag == 0 || code == 0 || len(data) < 2 {
		return nil, fmt.Errorf("%w: invalid homogeneous marker 0x%02x", errs.ErrMalformedStream, marker)
	}

	var chunks []Chunk
	for pos := 1; pos < len(data); {
		length := int(data[pos])
		start := pos + 1
		end := start + length
		if end > len(data) {
			return nil, fmt.Errorf("%w: payload of %d bytes overruns stream at offset %d",
				errs.ErrMalformedStream, length, pos)
		}

		chunks = append(chunks, Chunk{Code: code, Payload: data[start:end]})
		pos = end
	}

	return chunks, nil
}
