package typecodec

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/istem/hashpack/encoding"
	"github.com/istem/hashpack/endian"
)

const (
	// maxRealText bounds the text length accepted by the real type.
	maxRealText = 24
	// maxFloatPayload is the exclusive payload limit of the float type.
	maxFloatPayload = 8
	// maxFloatPosition is the largest point position or exponent distance a
	// float control byte can store.
	maxFloatPosition = 7
	// minFloatMagnitude is the smallest magnitude the float type accepts.
	minFloatMagnitude = 0.1

	floatSignBit    = 0x80
	floatExpSignBit = 0x08
)

var (
	integerPattern  = regexp.MustCompile(`^\+?[0-9]+$`)
	negativePattern = regexp.MustCompile(`^-[0-9]+$`)
	numericPattern  = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

	errBadControl = errors.New("float control byte out of range")
)

// magnitude strips the sign and leading zeros of a decimal digit string.
// A zero value yields "".
func magnitude(s string) string {
	s = strings.TrimLeft(s, "+-")
	return strings.TrimLeft(s, "0")
}

func encodeInteger(_ *Codec, in *input) ([]byte, bool, error) {
	if !in.boolean && !integerPattern.MatchString(in.text) {
		return nil, false, nil
	}

	digits := magnitude(in.text)
	if digits == "" {
		return nil, true, nil
	}

	b, err := encoding.DecimalToBytes(digits)
	return b, err == nil, err
}

func decodeInteger(c *Codec, payload []byte) (any, error) {
	return c.integerValue(encoding.BytesToDecimal(payload)), nil
}

func encodeNegative(_ *Codec, in *input) ([]byte, bool, error) {
	if !negativePattern.MatchString(in.text) {
		return nil, false, nil
	}

	// -0 has no negative form; it falls through to the real type.
	digits := magnitude(in.text)
	if digits == "" {
		return nil, false, nil
	}

	b, err := encoding.DecimalToBytes(digits)
	return b, err == nil, err
}

func decodeNegative(c *Codec, payload []byte) (any, error) {
	digits := encoding.BytesToDecimal(payload)
	if digits == "0" {
		return nil, errors.New("negative zero magnitude")
	}

	return c.integerValue("-" + digits), nil
}

func (c *Codec) integerValue(decimal string) any {
	if c.opts.NarrowIntegers {
		if v, err := strconv.ParseInt(decimal, 10, 64); err == nil {
			return v
		}
	}

	return decimal
}

// canonicalFloat is the text whose digits the float type stores: the shortest
// round-trip form with an upper-case exponent and a point or exponent always present.
func canonicalFloat(f float64) string {
	s := strings.ToUpper(strconv.FormatFloat(f, 'g', -1, 64))
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	}

	return s
}

// encodeFloat stores a compact decimal: one control byte followed by the digits
// of the canonical text as a big-endian integer.
//
// Control byte layout: bit 7 sign, bits 6-4 point position, bit 3 exponent sign,
// bits 2-0 distance from the exponent marker to the end of the text.
func encodeFloat(_ *Codec, in *input) ([]byte, bool, error) {
	if !numericPattern.MatchString(in.text) {
		return nil, false, nil
	}

	f, err := strconv.ParseFloat(in.text, 64)
	if err != nil || math.IsInf(f, 0) || math.Abs(f) < minFloatMagnitude {
		return nil, false, nil
	}

	s := canonicalFloat(f)
	var ctrl byte
	if s[0] == '-' {
		ctrl |= floatSignBit
		s = s[1:]
	}
	if p := strings.IndexByte(s, '.'); p >= 0 {
		if p > maxFloatPosition {
			return nil, false, nil
		}
		ctrl |= byte(p) << 4
	}
	if e := strings.IndexByte(s, 'E'); e >= 0 {
		d := len(s) - e
		if d > maxFloatPosition {
			return nil, false, nil
		}
		if s[e+1] == '-' {
			ctrl |= floatExpSignBit
		}
		ctrl |= byte(d)
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits[0] == '0' {
		return nil, false, nil
	}

	b, err := encoding.DecimalToBytes(digits)
	if err != nil || len(b)+1 >= maxFloatPayload {
		return nil, false, nil
	}

	return append([]byte{ctrl}, b...), true, nil
}

func decodeFloat(_ *Codec, payload []byte) (any, error) {
	if len(payload) < 2 {
		return nil, errBadControl
	}

	ctrl := payload[0]
	digits := encoding.BytesToDecimal(payload[1:])

	var sb strings.Builder
	if p := int(ctrl>>4) & maxFloatPosition; p > 0 {
		if p >= len(digits) {
			return nil, errBadControl
		}
		sb.WriteString(digits[:p])
		sb.WriteByte('.')
		sb.WriteString(digits[p:])
	} else {
		sb.WriteString(digits)
	}
	text := sb.String()

	if d := int(ctrl & maxFloatPosition); d > 0 {
		idx := len(text) - d + 2
		if idx < 1 || idx >= len(text) {
			return nil, errBadControl
		}
		sign := "+"
		if ctrl&floatExpSignBit != 0 {
			sign = "-"
		}
		text = text[:idx] + "E" + sign + text[idx:]
	}
	if ctrl&floatSignBit != 0 {
		text = "-" + text
	}

	return strconv.ParseFloat(text, 64)
}

func encodeReal(c *Codec, in *input) ([]byte, bool, error) {
	if c.opts.Export || len(in.text) > maxRealText || !numericPattern.MatchString(in.text) {
		return nil, false, nil
	}

	f, err := strconv.ParseFloat(in.text, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, false, nil
	}
	if f == 0 && !math.Signbit(f) {
		return nil, true, nil
	}

	return endian.AppendFloat64(c.opts.RealOrder, nil, f), true, nil
}

func decodeReal(c *Codec, payload []byte) (any, error) {
	return endian.Float64(c.opts.RealOrder, payload)
}
