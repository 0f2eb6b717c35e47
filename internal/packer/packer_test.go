package packer

import (
	"bytes"
	"testing"

	"github.com/istem/hashpack/errs"
	"github.com/stretchr/testify/require"
)

func TestPack_MixedShortHeaders(t *testing.T) {
	chunks := []Chunk{
		{Code: 3, Payload: []byte{0x0A}},
		{Code: 3, Payload: []byte{0x14}},
		{Code: 3, Payload: []byte{0x1E}},
	}

	// mixed: 3 x (1+1) = 6 bytes; homogeneous: 1 + 3 x (1+1) = 7 bytes
	packed, err := Pack(chunks)
	require.NoError(t, err)
	require.Equal(t, []byte{0x31, 0x0A, 0x31, 0x14, 0x31, 0x1E}, packed)

	back, err := Unpack(packed)
	require.NoError(t, err)
	require.Equal(t, chunks, back)
}

func TestPack_HomogeneousWhenShorter(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 20)
	chunks := []Chunk{
		{Code: 5, Payload: payload},
		{Code: 5, Payload: payload},
		{Code: 5, Payload: payload},
	}

	// mixed: 3 x (2+20) = 66 bytes; homogeneous: 1 + 3 x (1+20) = 64 bytes
	packed, err := Pack(chunks)
	require.NoError(t, err)
	require.Len(t, packed, 64)
	require.Equal(t, byte(0x08|5), packed[0])
	require.Equal(t, byte(20), packed[1])

	back, err := Unpack(packed)
	require.NoError(t, err)
	require.Equal(t, chunks, back)
}

func TestPack_TiePrefersHomogeneous(t *testing.T) {
	chunks := []Chunk{{Code: 2, Payload: bytes.Repeat([]byte{0x01}, 16)}}

	packed, err := Pack(chunks)
	require.NoError(t, err)
	require.Len(t, packed, 18)
	require.Equal(t, byte(0x0A), packed[0])
}

func TestPack_MixedTypesAndLongHeaders(t *testing.T) {
	long := bytes.Repeat([]byte{0x42}, 300)
	chunks := []Chunk{
		{Code: 1, Payload: nil},
		{Code: 7, Payload: long},
		{Code: 4, Payload: []byte{1, 2, 3}},
	}

	packed, err := Pack(chunks)
	require.NoError(t, err)
	require.Equal(t, byte(0x10), packed[0])
	// 300 = 0x12C: [1111 0001] [0010 1100]
	require.Equal(t, []byte{0xF1, 0x2C}, packed[1:3])

	back, err := Unpack(packed)
	require.NoError(t, err)
	require.Len(t, back, 3)
	require.Empty(t, back[0].Payload)
	require.Equal(t, uint8(1), back[0].Code)
	require.Equal(t, long, back[1].Payload)
	require.Equal(t, chunks[2], back[2])
}

func TestPack_Errors(t *testing.T) {
	_, err := Pack([]Chunk{{Code: 1, Payload: make([]byte, MaxPayloadLength+1)}})
	require.ErrorIs(t, err, errs.ErrPayloadTooLarge)

	packed, err := Pack([]Chunk{{Code: 1, Payload: make([]byte, MaxPayloadLength)}})
	require.NoError(t, err)
	require.Len(t, packed, MaxPayloadLength+2)

	_, err = Pack([]Chunk{{Code: 0}})
	require.ErrorIs(t, err, errs.ErrMalformedStream)
	_, err = Pack([]Chunk{{Code: 8}})
	require.ErrorIs(t, err, errs.ErrMalformedStream)

	packed, err = Pack(nil)
	require.NoError(t, err)
	require.Empty(t, packed)
}

func TestUnpack_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"zero code one-byte header", []byte{0x81}},
		{"payload overrun", []byte{0x13, 0x01}},
		{"truncated two-byte header", []byte{0x91}},
		{"two-byte header overrun", []byte{0x90, 0x20, 0x00}},
		{"homogeneous without flag", []byte{0x03, 0x01, 0x00}},
		{"homogeneous zero code", []byte{0x08, 0x01, 0x00}},
		{"homogeneous marker only", []byte{0x0B}},
		{"homogeneous overrun", []byte{0x0B, 0x05, 0x01}},
		{"trailing zero code", []byte{0x11, 0xAA, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Unpack(tt.data)
			require.ErrorIs(t, err, errs.ErrMalformedStream)
			require.Nil(t, chunks)
		})
	}

	chunks, err := Unpack(nil)
	require.NoError(t, err)
	require.Empty(t, chunks)
}

func BenchmarkPack(b *testing.B) {
	chunks := []Chunk{
		{Code: 3, Payload: []byte{0x01, 0xE2, 0x40}},
		{Code: 6, Payload: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{Code: 2, Payload: bytes.Repeat([]byte{0x55}, 24)},
	}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Pack(chunks)
	}
}
