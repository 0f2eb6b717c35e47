// Package hashpack packs small ordered lists of scalar values into short,
// printable, secret-keyed tokens and recovers the values from them.
//
// A token hides a record id and a few flags behind an opaque string, for example
// in a URL, without a server-side lookup table. Tampering is detected by an
// embedded checksum and a re-encoding check, and the byte layout is unreadable
// without the secret. It is not encryption.
//
// # Basic Usage
//
//	h, err := hashpack.New(hashpack.WithSecret("my secret"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, _ := h.Encode(1024, "admin", true)
//	values, err := h.Decode(token)
//	// values: []any{"1024", "admin", "1"}
//
// # Value Types
//
// Every value is stored as the first of these types that accepts it:
//
//   - integer: non-negative whole numbers and bools
//   - negative: negative whole numbers
//   - float: short decimals with magnitude of at least 0.1
//   - real: other finite numbers, as raw IEEE-754 doubles (not in export mode)
//   - hex: hex text of either case, and byte slices. Decodes to lower-case text
//     of even length, with a leading zero added to odd-length input
//   - ip: IPv4 and IPv6 addresses in canonical form
//   - string: everything else, compressed
//
// Decoding yields strings for integers, hex, addresses and text, and float64 for
// float and real values. WithIntegerNarrowing returns int64 for integers instead.
//
// # Package Structure
//
// The format package holds the value type, compression and checksum enums; errs
// holds the sentinel errors; compress, encoding and endian hold the building
// blocks a Hash is assembled from.
package hashpack

import (
	"errors"
	"fmt"

	"github.com/istem/hashpack/compress"
	"github.com/istem/hashpack/encoding"
	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/format"
	"github.com/istem/hashpack/internal/checksum"
	"github.com/istem/hashpack/internal/hash"
	"github.com/istem/hashpack/internal/keystream"
	"github.com/istem/hashpack/internal/options"
	"github.com/istem/hashpack/internal/packer"
	"github.com/istem/hashpack/internal/permute"
	"github.com/istem/hashpack/internal/typecodec"
)

// maxPaddingAttempts bounds the leading-zero guard in Encode.
const maxPaddingAttempts = 256

// errTokenMismatch is returned when decoded values do not re-encode to the token.
var errTokenMismatch = errors.New("values do not re-encode to the token")

// Hash encodes values into tokens and decodes them back.
//
// All state is derived from the options in New; a Hash is immutable and safe for
// concurrent use.
type Hash struct {
	cfg         Config
	alphabet    *encoding.Alphabet
	codes       [len(format.ValueTypes) + 1]uint8
	types       [len(format.ValueTypes) + 1]format.ValueType
	codec       *typecodec.Codec
	obfuscator  *keystream.Obfuscator
	fingerprint uint64
}

// New creates a Hash.
//
// Parameters:
//   - opts: Optional configuration functions (WithSecret, WithAlphabet, ...)
//
// Returns:
//   - *Hash: The configured codec
//   - error: An error wrapping errs.ErrInvalidConfig or errs.ErrInvalidAlphabet
//
// Defaults: DefaultSecret, DefaultAlphabet, checksum enabled, export disabled,
// raw deflate string compression, KDF keystream, big-endian real values.
func New(opts ...Option) (*Hash, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	stringCodec, err := compress.CreateCodec(cfg.compression, "string")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	alphabet, err := encoding.NewAlphabet(permute.Alphabet([]rune(cfg.alphabet), cfg.secret, cfg.keystream))
	if err != nil {
		return nil, err
	}

	h := &Hash{
		cfg:      *cfg,
		alphabet: alphabet,
		codes:    permute.TypeCodes(cfg.secret, cfg.keystream),
		codec: typecodec.New(typecodec.Options{
			Export:         cfg.export,
			NarrowIntegers: cfg.narrow,
			Strings:        stringCodec,
			RealOrder:      cfg.realOrder,
		}),
		obfuscator: keystream.NewObfuscator(cfg.secret, cfg.checksum, cfg.keystream),
	}
	for _, vt := range format.ValueTypes {
		h.types[h.codes[vt]] = vt
	}
	h.fingerprint = h.computeFingerprint()

	return h, nil
}

// Encode packs values into a token.
//
// An empty value list encodes as "". When the sealed stream would start with a
// zero byte, which the alphabet cannot represent, empty strings are appended to
// the values until it does not; Decode removes them again.
//
// Parameters:
//   - values: Values to pack (see the package documentation for accepted types)
//
// Returns:
//   - string: The token
//   - error: errs.ErrUnsupportedValue, errs.ErrPayloadTooLarge or errs.ErrLeadingZero
func (h *Hash) Encode(values ...any) (string, error) {
	if len(values) == 0 {
		return "", nil
	}

	chunks := make([]packer.Chunk, 0, len(values)+1)
	for i, v := range values {
		vt, payload, err := h.codec.Encode(v)
		if err != nil {
			return "", fmt.Errorf("value %d: %w", i, err)
		}
		chunks = append(chunks, packer.Chunk{Code: h.codes[vt], Payload: payload})
	}

	pad := packer.Chunk{Code: h.codes[format.TypeString]}
	for attempt := 0; attempt < maxPaddingAttempts; attempt++ {
		packed, err := packer.Pack(chunks)
		if err != nil {
			return "", err
		}

		sealed := h.obfuscator.Seal(packed)
		if sealed[0] != 0 {
			return h.alphabet.Encode(sealed), nil
		}
		chunks = append(chunks, pad)
	}

	return "", fmt.Errorf("%w: gave up after %d padding values", errs.ErrLeadingZero, maxPaddingAttempts)
}

// Decode recovers the values packed into token.
//
// The result is accepted only if it encodes back to exactly the same token, so
// any failure yields nil values and an error wrapping errs.ErrInvalidToken. The
// empty token decodes to an empty list.
//
// Parameters:
//   - token: A token produced by Encode with the same configuration
//
// Returns:
//   - []any: The decoded values
//   - error: An error wrapping errs.ErrInvalidToken
func (h *Hash) Decode(token string) ([]any, error) {
	if token == "" {
		return []any{}, nil
	}

	values, err := h.decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}

	return values, nil
}

func (h *Hash) decode(token string) ([]any, error) {
	sealed, err := h.alphabet.Decode(token)
	if err != nil {
		return nil, err
	}

	packed, err := h.obfuscator.Open(sealed)
	if err != nil {
		return nil, err
	}

	chunks, err := packer.Unpack(packed)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(chunks))
	for i, c := range chunks {
		if int(c.Code) >= len(h.types) {
			return nil, fmt.Errorf("%w: type code %d", errs.ErrMalformedStream, c.Code)
		}

		v, err := h.codec.Decode(h.types[c.Code], c.Payload)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = v
	}

	if again, err := h.Encode(values...); err != nil || again != token {
		return nil, errTokenMismatch
	}

	if !h.cfg.padding {
		for n := len(values); n > 1 && values[n-1] == ""; n-- {
			again, err := h.Encode(values[:n-1]...)
			if err != nil || again != token {
				break
			}
			values = values[:n-1]
		}
	}

	return values, nil
}

// CRC computes the secret-seeded checksum of data.
//
// Parameters:
//   - data: Bytes to checksum
//   - mode: format.ChecksumByte (0..255) or format.ChecksumWord (0..65535)
//
// Returns:
//   - int: The checksum
func (h *Hash) CRC(data []byte, mode format.ChecksumMode) int {
	return checksum.Sum(data, h.cfg.secret, mode)
}

// Alphabet returns the permuted output alphabet.
func (h *Hash) Alphabet() string {
	return h.alphabet.String()
}

// TypeCode returns the wire code (1..7) assigned to vt, or 0 for TypeUnused and
// unknown types.
func (h *Hash) TypeCode(vt format.ValueType) uint8 {
	if int(vt) >= len(h.codes) {
		return 0
	}

	return h.codes[vt]
}

// Fingerprint identifies the token format of this Hash.
//
// Two instances with equal fingerprints produce identical tokens. The secret only
// enters through derived keystream bytes.
func (h *Hash) Fingerprint() uint64 {
	return h.fingerprint
}

func (h *Hash) computeFingerprint() uint64 {
	flags := []byte{
		boolByte(h.cfg.checksum),
		boolByte(h.cfg.export),
		boolByte(h.cfg.narrow),
		boolByte(h.cfg.padding),
		byte(h.cfg.compression),
		byte(h.cfg.keystream),
	}

	return hash.Fingerprint(
		[]byte(h.alphabet.String()),
		h.codes[:],
		flags,
		[]byte(h.cfg.realOrder.String()),
		h.obfuscator.Keystream(16),
		keystream.Derive(16, h.cfg.secret, true),
	)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}

	return 0
}
