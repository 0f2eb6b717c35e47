package encoding

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	decimalDigits = "0123456789"
	hexDigits     = "0123456789ABCDEF"
)

// Rebase converts a number written as digits in fromBase into digits of toBase.
//
// Digits are most-significant first. The conversion is schoolbook long division:
// the whole digit array is divided by toBase repeatedly, remainders are collected
// least-significant first and reversed at the end. Leading zero digits of the input
// do not survive, and the output always holds at least one digit, so an all-zero
// (or empty) input yields []int{0}.
//
// The input slice is not modified.
func Rebase(digits []int, fromBase, toBase int) []int {
	number := make([]int, len(digits))
	copy(number, digits)
	length := len(number)

	out := make([]int, 0, len(digits)+1)
	for {
		divide := 0
		newLen := 0
		for i := 0; i < length; i++ {
			divide = divide*fromBase + number[i]
			if divide >= toBase {
				number[newLen] = divide / toBase
				newLen++
				divide %= toBase
			} else if newLen > 0 {
				number[newLen] = 0
				newLen++
			}
		}
		length = newLen
		out = append(out, divide)

		if newLen == 0 {
			break
		}
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// DecimalToHex converts a non-negative decimal digit string into upper-case hex.
func DecimalToHex(decimal string) (string, error) {
	digits, err := symbolsToDigits(decimal, decimalDigits)
	if err != nil {
		return "", err
	}

	return digitsToSymbols(Rebase(digits, 10, 16), hexDigits), nil
}

// HexToDecimal converts a hex digit string (either case) into a decimal digit string.
func HexToDecimal(hexText string) (string, error) {
	digits, err := symbolsToDigits(strings.ToUpper(hexText), hexDigits)
	if err != nil {
		return "", err
	}

	return digitsToSymbols(Rebase(digits, 16, 10), decimalDigits), nil
}

// DecimalToBytes converts a decimal digit string into its minimal big-endian bytes.
//
// The hex form is left-padded with a zero nibble when its length is odd.
func DecimalToBytes(decimal string) ([]byte, error) {
	hexText, err := DecimalToHex(decimal)
	if err != nil {
		return nil, err
	}
	if len(hexText)&1 == 1 {
		hexText = "0" + hexText
	}

	return hex.DecodeString(hexText)
}

// BytesToDecimal converts big-endian bytes into a decimal digit string.
func BytesToDecimal(b []byte) string {
	dec, _ := HexToDecimal(hex.EncodeToString(b))
	return dec
}

func symbolsToDigits(text, symbols string) ([]int, error) {
	digits := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		d := strings.IndexByte(symbols, text[i])
		if d < 0 {
			return nil, fmt.Errorf("digit %q not in base %d", text[i], len(symbols))
		}
		digits[i] = d
	}

	return digits, nil
}

func digitsToSymbols(digits []int, symbols string) string {
	var sb strings.Builder
	sb.Grow(len(digits))
	for _, d := range digits {
		sb.WriteByte(symbols[d])
	}

	return sb.String()
}
