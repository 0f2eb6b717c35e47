package typecodec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/istem/hashpack/errs"
)

// input is a value reduced to the text form the encoders inspect.
type input struct {
	text string
	// boolean marks bool inputs, which the integer type accepts directly.
	boolean bool
	// empty forces a zero-length payload for whichever type matches.
	empty bool
}

// normalize reduces a supported Go value to its input form.
//
// Floats are formatted with the shortest round-trip representation and always
// carry a point or an exponent, so they never fall through to the integer type.
// Byte slices are represented by their lower-case hex text.
func normalize(v any) (input, error) {
	switch x := v.(type) {
	case nil:
		return input{empty: true}, nil
	case bool:
		if x {
			return input{text: "1", boolean: true}, nil
		}
		return input{text: "0", boolean: true, empty: true}, nil
	case string:
		return textInput(x), nil
	case int:
		return intInput(int64(x)), nil
	case int8:
		return intInput(int64(x)), nil
	case int16:
		return intInput(int64(x)), nil
	case int32:
		return intInput(int64(x)), nil
	case int64:
		return intInput(x), nil
	case uint:
		return uintInput(uint64(x)), nil
	case uint8:
		return uintInput(uint64(x)), nil
	case uint16:
		return uintInput(uint64(x)), nil
	case uint32:
		return uintInput(uint64(x)), nil
	case uint64:
		return uintInput(x), nil
	case float32:
		return floatInput(float64(x)), nil
	case float64:
		return floatInput(x), nil
	case *big.Int:
		if x == nil {
			return input{empty: true}, nil
		}
		return input{text: x.String(), empty: x.Sign() == 0}, nil
	case json.Number:
		return textInput(string(x)), nil
	case []byte:
		return textInput(hex.EncodeToString(x)), nil
	case net.IP:
		if len(x) == 0 {
			return input{empty: true}, nil
		}
		return input{text: x.String()}, nil
	case netip.Addr:
		if !x.IsValid() {
			return input{empty: true}, nil
		}
		return input{text: x.String()}, nil
	case fmt.Stringer:
		return textInput(x.String()), nil
	default:
		return input{}, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v)
	}
}

func textInput(s string) input {
	return input{text: s, empty: s == "" || s == "0"}
}

func intInput(v int64) input {
	return input{text: strconv.FormatInt(v, 10), empty: v == 0}
}

func uintInput(v uint64) input {
	return input{text: strconv.FormatUint(v, 10), empty: v == 0}
}

func floatInput(f float64) input {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return input{text: strconv.FormatFloat(f, 'g', -1, 64)}
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return input{text: s, empty: f == 0 && !math.Signbit(f)}
}
