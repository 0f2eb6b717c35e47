package compress

import (
	"strings"
	"testing"
)

func BenchmarkAllCodecs_ShortText(b *testing.B) {
	input := []byte("user@example.com")

	for _, ct := range allCompressionTypes {
		codec, err := CreateCodec(ct, "bench")
		if err != nil {
			b.Fatal(err)
		}

		b.Run(ct.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				compressed, _ := codec.Compress(input)
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}

func BenchmarkDeflate_Compress(b *testing.B) {
	codec := NewDeflateCompressor()
	input := []byte(strings.Repeat("lorem ipsum ", 64))

	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		_, _ = codec.Compress(input)
	}
}
