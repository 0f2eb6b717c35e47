package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)
	require.NoError(t, bb.WriteByte(0x18))
	bb.MustWrite([]byte{0x01, 0x02})
	bb.MustWrite(nil)

	require.Equal(t, []byte{0x18, 0x01, 0x02}, bb.Clone())
	require.Equal(t, 3, bb.Len())

	clone := bb.Clone()
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, []byte{0x18, 0x01, 0x02}, clone)
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.Grow(16)
		require.Equal(t, 32, cap(bb.B))
	})

	t.Run("grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(1)
		require.Equal(t, PackBufferDefaultSize, cap(bb.B))
	})

	t.Run("grows by required bytes", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.MustWrite([]byte{1, 2, 3})
		bb.Grow(PackBufferDefaultSize * 2)
		require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), PackBufferDefaultSize*2)
		require.Equal(t, []byte{1, 2, 3}, bb.Clone())
	})
}

func TestPackBufferPool(t *testing.T) {
	bb := GetPackBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte("data"))
	PutPackBuffer(bb)
	PutPackBuffer(nil)

	again := GetPackBuffer()
	require.Equal(t, 0, again.Len(), "buffers are reset on Put")
	PutPackBuffer(again)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	large := NewByteBuffer(64)
	p.Put(large)

	got := p.Get()
	require.NotSame(t, large, got)
	require.LessOrEqual(t, cap(got.B), 16)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(n byte) {
			defer wg.Done()
			bb := GetPackBuffer()
			defer PutPackBuffer(bb)
			for write := 0; write < 10; write++ {
				_ = bb.WriteByte(n)
			}
			if bb.Len() != 10 {
				t.Errorf("unexpected length %d", bb.Len())
			}
		}(byte(i))
	}
	wg.Wait()
}
