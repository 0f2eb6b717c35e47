package encoding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/istem/hashpack/errs"
)

// Alphabet maps token symbols to digit values of base len(symbols).
//
// Symbols are runes, so any set of distinct printable characters can serve as
// an output alphabet. An Alphabet is immutable and safe for concurrent use.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet creates an Alphabet from an ordered list of distinct runes.
//
// Returns errs.ErrInvalidAlphabet if fewer than two symbols are given, if a
// symbol repeats, or if a symbol is utf8.RuneError.
func NewAlphabet(symbols []rune) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", errs.ErrInvalidAlphabet, len(symbols))
	}

	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if r == utf8.RuneError {
			return nil, fmt.Errorf("%w: invalid UTF-8 symbol at position %d", errs.ErrInvalidAlphabet, i)
		}
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", errs.ErrInvalidAlphabet, r)
		}
		index[r] = i
	}

	return &Alphabet{
		symbols: append([]rune(nil), symbols...),
		index:   index,
	}, nil
}

// Base returns the number of symbols.
func (a *Alphabet) Base() int {
	return len(a.symbols)
}

// String returns the symbols in digit order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Encode writes data, read as a base-256 number, in this alphabet.
//
// Leading zero bytes are not representable and are dropped; an empty or all-zero
// input encodes as the single zero symbol.
func (a *Alphabet) Encode(data []byte) string {
	digits := make([]int, len(data))
	for i, b := range data {
		digits[i] = int(b)
	}

	var sb strings.Builder
	for _, d := range Rebase(digits, 256, len(a.symbols)) {
		sb.WriteRune(a.symbols[d])
	}

	return sb.String()
}

// Decode reads a token written in this alphabet back into bytes.
//
// Returns errs.ErrInvalidSymbol for any rune outside the alphabet.
func (a *Alphabet) Decode(token string) ([]byte, error) {
	digits := make([]int, 0, len(token))
	for _, r := range token {
		d, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrInvalidSymbol, r)
		}
		digits = append(digits, d)
	}

	out := Rebase(digits, len(a.symbols), 256)
	data := make([]byte, len(out))
	for i, d := range out {
		data[i] = byte(d)
	}

	return data, nil
}
