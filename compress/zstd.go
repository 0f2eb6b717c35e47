package compress

// ZstdCompressor provides Zstandard compression for string payloads.
//
// Zstd frames carry a few bytes of header, so it only pays off for longer text
// (roughly above a hundred bytes). The pure-Go implementation is used by default;
// building with the gozstd tag (and cgo) switches to the libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
