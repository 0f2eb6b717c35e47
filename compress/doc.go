// Package compress provides the codecs used for string value payloads.
//
// Text values are compressed before they are packed into a token. The canonical
// codec is raw deflate at the best compression level; the other codecs exist for
// deployments that prefer a different speed/size trade-off and control both the
// encoding and decoding side.
//
// # Supported Algorithms
//
//   - Deflate (format.CompressionDeflate): raw RFC 1951 stream, canonical
//   - None (format.CompressionNone): payload stored verbatim
//   - Zstd (format.CompressionZstd): pure Go by default, libzstd with -tags gozstd
//   - S2 (format.CompressionS2): block format from klauspost/compress
//   - LZ4 (format.CompressionLZ4): block format with a stored/compressed marker byte
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionDeflate, "string")
//	if err != nil {
//	    return err
//	}
//	packed, _ := codec.Compress([]byte("hello, hello, hello"))
//	text, _ := codec.Decompress(packed)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool and are safe for concurrent use.
package compress
