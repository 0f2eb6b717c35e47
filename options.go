package hashpack

import (
	"errors"

	"github.com/istem/hashpack/endian"
	"github.com/istem/hashpack/format"
	"github.com/istem/hashpack/internal/options"
)

// DefaultSecret is the secret used when no secret option is given.
//
// Tokens issued with it are readable by anyone with this package; always set a
// secret in production.
const DefaultSecret = "hashpack default secret"

// DefaultAlphabet is the URL-safe 64-symbol output alphabet.
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Config holds the settings a Hash is built from.
type Config struct {
	secret      []byte
	alphabet    string
	checksum    bool
	export      bool
	narrow      bool
	padding     bool
	compression format.CompressionType
	keystream   format.KeystreamMode
	realOrder   endian.EndianEngine
}

func defaultConfig() *Config {
	return &Config{
		secret:      []byte(DefaultSecret),
		alphabet:    DefaultAlphabet,
		checksum:    true,
		compression: format.CompressionDeflate,
		keystream:   format.KeystreamKDF,
		realOrder:   endian.GetBigEndianEngine(),
	}
}

// Option configures a Hash.
type Option = options.Option[*Config]

// WithSecret sets the secret phrase.
func WithSecret(secret string) Option {
	return options.NoError("secret", func(c *Config) {
		c.secret = []byte(secret)
	})
}

// WithSecretBytes sets a binary secret. The slice is copied.
func WithSecretBytes(secret []byte) Option {
	return options.NoError("secret", func(c *Config) {
		c.secret = append([]byte(nil), secret...)
	})
}

// WithAlphabet sets the output alphabet before it is permuted by the secret.
//
// The alphabet must hold at least two distinct runes.
func WithAlphabet(alphabet string) Option {
	return options.New("alphabet", func(c *Config) error {
		if alphabet == "" {
			return errors.New("alphabet must not be empty")
		}
		c.alphabet = alphabet

		return nil
	})
}

// WithChecksum enables or disables the embedded checksum byte. Enabled by default.
func WithChecksum(enabled bool) Option {
	return options.NoError("checksum", func(c *Config) {
		c.checksum = enabled
	})
}

// WithExport enables export mode, which never emits the real type so tokens
// carry no machine-dependent floats.
func WithExport(enabled bool) Option {
	return options.NoError("export", func(c *Config) {
		c.export = enabled
	})
}

// WithIntegerNarrowing makes Decode return int64 for integer values that fit,
// instead of decimal strings.
func WithIntegerNarrowing(enabled bool) Option {
	return options.NoError("integers", func(c *Config) {
		c.narrow = enabled
	})
}

// WithStringCompression selects the compression of string payloads.
//
// format.CompressionDeflate is the default. Encoder and decoder must agree.
func WithStringCompression(compression format.CompressionType) Option {
	return options.New("compression", func(c *Config) error {
		switch compression {
		case format.CompressionDeflate, format.CompressionNone, format.CompressionZstd,
			format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return errors.New("unknown string compression " + compression.String())
		}
	})
}

// WithLegacyKeystream switches to the first token generation: the secret repeated
// as keystream and the raw secret as permutation driver.
//
// Legacy tokens are not interchangeable with default tokens. Neither mode reads
// tokens issued by the JavaScript port, whose keystream is built from double-MD5
// blocks of the hash and secret.
func WithLegacyKeystream() Option {
	return options.NoError("keystream", func(c *Config) {
		c.keystream = format.KeystreamLegacy
	})
}

// WithRealByteOrder sets the byte order of real payloads. Big-endian by default.
func WithRealByteOrder(engine endian.EndianEngine) Option {
	return options.New("real byte order", func(c *Config) error {
		if engine == nil {
			return errors.New("byte order must not be nil")
		}
		c.realOrder = engine

		return nil
	})
}

// WithPadding keeps the trailing empty strings added by the leading-zero guard in
// decoded results. By default Decode removes them.
func WithPadding(keep bool) Option {
	return options.NoError("padding", func(c *Config) {
		c.padding = keep
	})
}
