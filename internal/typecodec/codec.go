// Package typecodec maps single scalar values to (type, payload) pairs and back.
//
// Encoders are tried in format.ValueTypes order and the first one that accepts
// the value wins. Empty values (nil, false, "", "0", numeric zero) always produce
// a zero-length payload for the matched type, and a zero-length payload always
// decodes to that type's zero value.
package typecodec

import (
	"fmt"

	"github.com/istem/hashpack/compress"
	"github.com/istem/hashpack/endian"
	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/format"
)

// Options configures a Codec. The zero value is not usable; see New.
type Options struct {
	// Export disables the real type so tokens never carry machine floats.
	Export bool
	// NarrowIntegers decodes integer and negative values to int64 when they fit.
	NarrowIntegers bool
	// Strings compresses string payloads. Nil selects raw deflate.
	Strings compress.Codec
	// RealOrder is the byte order of real payloads. Nil selects big-endian.
	RealOrder endian.EndianEngine
}

type encodeFunc func(c *Codec, in *input) (payload []byte, ok bool, err error)

type decodeFunc func(c *Codec, payload []byte) (any, error)

type entry struct {
	encode encodeFunc
	decode decodeFunc
	zero   func(c *Codec) any
}

// Codec encodes and decodes individual values. It is immutable and safe for
// concurrent use.
type Codec struct {
	opts  Options
	table [len(format.ValueTypes) + 1]entry
}

// New creates a Codec with the given options.
func New(opts Options) *Codec {
	if opts.Strings == nil {
		opts.Strings = compress.NewDeflateCompressor()
	}
	if opts.RealOrder == nil {
		opts.RealOrder = endian.GetBigEndianEngine()
	}

	c := &Codec{opts: opts}
	c.table[format.TypeInteger] = entry{encodeInteger, decodeInteger, integerZero}
	c.table[format.TypeNegative] = entry{encodeNegative, decodeNegative, integerZero}
	c.table[format.TypeFloat] = entry{encodeFloat, decodeFloat, floatZero}
	c.table[format.TypeReal] = entry{encodeReal, decodeReal, floatZero}
	c.table[format.TypeHex] = entry{encodeHex, decodeHex, stringZero}
	c.table[format.TypeIP] = entry{encodeIP, decodeIP, ipZero}
	c.table[format.TypeString] = entry{encodeString, decodeString, stringZero}

	return c
}

// Encode selects the value's type and builds its payload.
//
// Returns errs.ErrUnsupportedValue for Go types without a token representation.
func (c *Codec) Encode(v any) (format.ValueType, []byte, error) {
	in, err := normalize(v)
	if err != nil {
		return format.TypeUnused, nil, err
	}

	for _, vt := range format.ValueTypes {
		payload, ok, err := c.table[vt].encode(c, &in)
		if err != nil {
			return format.TypeUnused, nil, fmt.Errorf("encode %s value: %w", vt, err)
		}
		if !ok {
			continue
		}
		if in.empty {
			payload = nil
		}

		return vt, payload, nil
	}

	// encodeString accepts every normalized input.
	return format.TypeUnused, nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v)
}

// Decode rebuilds a value from its type and payload.
//
// Returns errs.ErrInvalidPayload if the payload is not a valid encoding for vt.
func (c *Codec) Decode(vt format.ValueType, payload []byte) (any, error) {
	if vt == format.TypeUnused || int(vt) >= len(c.table) {
		return nil, fmt.Errorf("%w: unknown value type %d", errs.ErrInvalidPayload, vt)
	}

	e := c.table[vt]
	if len(payload) == 0 {
		return e.zero(c), nil
	}

	v, err := e.decode(c, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrInvalidPayload, vt, err)
	}

	return v, nil
}

func integerZero(c *Codec) any {
	if c.opts.NarrowIntegers {
		return int64(0)
	}

	return "0"
}

func floatZero(*Codec) any { return float64(0) }

func stringZero(*Codec) any { return "" }

func ipZero(*Codec) any { return "0.0.0.0" }
