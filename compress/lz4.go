package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// LZ4 block markers. CompressBlock reports incompressible input (common for short
// strings) by writing nothing, so those payloads are stored verbatim.
const (
	lz4BlockStored     byte = 0x00
	lz4BlockCompressed byte = 0x01
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// The output starts with a marker byte: 0x01 for an LZ4 block, 0x00 when the
// input did not compress and follows verbatim.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Marker byte plus block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		dst = dst[:1+len(data)]
		dst[0] = lz4BlockStored
		copy(dst[1:], data)

		return dst, nil
	}
	dst[0] = lz4BlockCompressed

	return dst[:1+n], nil
}

// Decompress decompresses the input data using LZ4 decompression.
//
// The decompressed size is not stored, so the buffer starts at 4x the block size
// and doubles on ErrInvalidSourceShortBuffer up to MaxDecompressedSize.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4BlockStored:
		return append([]byte(nil), data[1:]...), nil
	case lz4BlockCompressed:
	default:
		return nil, fmt.Errorf("lz4 decompression failed: unknown block marker 0x%02x", data[0])
	}

	block := data[1:]
	bufSize := len(block) * 4
	if bufSize < 64 {
		bufSize = 64
	}

	for bufSize <= MaxDecompressedSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < MaxDecompressedSize {
				bufSize *= 2
				if bufSize > MaxDecompressedSize {
					bufSize = MaxDecompressedSize
				}

				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
