package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result)
		require.Equal(GetBigEndianEngine(), GetNativeEngine())
	case 0x02:
		require.Equal(binary.LittleEndian, result)
		require.Equal(GetLittleEndianEngine(), GetNativeEngine())
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestAppendFloat64(t *testing.T) {
	big := AppendFloat64(GetBigEndianEngine(), nil, 1.0)
	require.Equal(t, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}, big)

	little := AppendFloat64(GetLittleEndianEngine(), nil, 1.0)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}, little)

	prefixed := AppendFloat64(GetBigEndianEngine(), []byte{0xAA}, -2.5)
	require.Len(t, prefixed, 9)
	require.Equal(t, byte(0xAA), prefixed[0])
}

func TestFloat64(t *testing.T) {
	values := []float64{0, -0.0, 1.5, -1e-300, math.MaxFloat64, math.SmallestNonzeroFloat64}

	for _, engine := range []EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()} {
		for _, v := range values {
			got, err := Float64(engine, AppendFloat64(engine, nil, v))
			require.NoError(t, err)
			require.Equal(t, math.Float64bits(v), math.Float64bits(got))
		}
	}

	_, err := Float64(GetBigEndianEngine(), []byte{1, 2, 3})
	require.Error(t, err)
	require.Contains(t, err.Error(), "8 bytes")
}
