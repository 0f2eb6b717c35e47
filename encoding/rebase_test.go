package encoding

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebase(t *testing.T) {
	tests := []struct {
		name     string
		digits   []int
		from, to int
		want     []int
	}{
		{"empty input emits zero", nil, 10, 16, []int{0}},
		{"all zero input", []int{0, 0, 0}, 10, 16, []int{0}},
		{"decimal 255 to hex", []int{2, 5, 5}, 10, 16, []int{15, 15}},
		{"decimal 256 to hex", []int{2, 5, 6}, 10, 16, []int{1, 0, 0}},
		{"leading zeros dropped", []int{0, 0, 7}, 10, 2, []int{1, 1, 1}},
		{"bytes to base 62", []int{1, 0}, 256, 62, []int{4, 8}},
		{"identity base", []int{3, 1, 4}, 10, 10, []int{3, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]int(nil), tt.digits...)
			require.Equal(t, tt.want, Rebase(tt.digits, tt.from, tt.to))
			require.Equal(t, input, tt.digits, "input must not be modified")
		})
	}
}

func TestRebase_MatchesBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(40)
		digits := make([]int, n)
		digits[0] = 1 + rng.Intn(255)
		for i := 1; i < n; i++ {
			digits[i] = rng.Intn(256)
		}

		raw := make([]byte, n)
		for i, d := range digits {
			raw[i] = byte(d)
		}
		want := new(big.Int).SetBytes(raw).Text(36)

		got := Rebase(digits, 256, 36)
		const symbols = "0123456789abcdefghijklmnopqrstuvwxyz"
		text := make([]byte, len(got))
		for i, d := range got {
			text[i] = symbols[d]
		}
		require.Equal(t, want, string(text))

		back := Rebase(got, 36, 256)
		require.Equal(t, digits, back)
	}
}

func TestDecimalHexConversions(t *testing.T) {
	tests := []struct {
		decimal string
		hex     string
		bytes   []byte
	}{
		{"0", "0", []byte{0x00}},
		{"10", "A", []byte{0x0A}},
		{"255", "FF", []byte{0xFF}},
		{"256", "100", []byte{0x01, 0x00}},
		{"4095", "FFF", []byte{0x0F, 0xFF}},
		{"18446744073709551616", "10000000000000000", []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.decimal, func(t *testing.T) {
			hexText, err := DecimalToHex(tt.decimal)
			require.NoError(t, err)
			require.Equal(t, tt.hex, hexText)

			dec, err := HexToDecimal(hexText)
			require.NoError(t, err)
			require.Equal(t, tt.decimal, dec)

			b, err := DecimalToBytes(tt.decimal)
			require.NoError(t, err)
			require.Equal(t, tt.bytes, b)
			require.Equal(t, tt.decimal, BytesToDecimal(b))
		})
	}

	dec, err := HexToDecimal("ff")
	require.NoError(t, err)
	require.Equal(t, "255", dec)

	_, err = DecimalToHex("12a")
	require.Error(t, err)
	_, err = HexToDecimal("xyz")
	require.Error(t, err)

	require.Equal(t, "0", BytesToDecimal(nil))
}
