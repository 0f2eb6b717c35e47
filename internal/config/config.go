// Package config loads hashpack CLI settings from a YAML file.
//
// The file is selected by the --config flag or the HASHPACK_CONFIG environment
// variable. Without either, defaults apply. HASHPACK_SECRET supplies the secret
// when the file does not set one; command-line flags override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/istem/hashpack"
	"github.com/istem/hashpack/endian"
	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/format"
)

const (
	// EnvConfig names the environment variable holding the config file path.
	EnvConfig = "HASHPACK_CONFIG"
	// EnvSecret names the environment variable holding the secret.
	EnvSecret = "HASHPACK_SECRET"
)

// Config mirrors the hashpack options.
type Config struct {
	// Secret is the secret phrase of the primary codec.
	Secret string `yaml:"secret"`

	// Alphabet is the output alphabet before permutation.
	// Default: hashpack.DefaultAlphabet
	Alphabet string `yaml:"alphabet"`

	// Checksum embeds a checksum byte in every token.
	// Default: true
	Checksum bool `yaml:"checksum"`

	// Export never emits raw machine floats.
	Export bool `yaml:"export"`

	// Compression names the string compression: deflate, none, zstd, s2 or lz4.
	// Default: deflate
	Compression string `yaml:"compression"`

	// Legacy selects the first token generation.
	Legacy bool `yaml:"legacy"`

	// RealByteOrder is the byte order of raw real payloads: big, little or native.
	// Default: big
	RealByteOrder string `yaml:"real_byte_order"`

	// Integers decodes integer values as numbers instead of strings.
	Integers bool `yaml:"integers"`

	// PreviousSecrets are accepted when decoding, tried in order after Secret.
	PreviousSecrets []string `yaml:"previous_secrets"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Alphabet:      hashpack.DefaultAlphabet,
		Checksum:      true,
		Compression:   "deflate",
		RealByteOrder: "big",
	}
}

// realEngine maps a real_byte_order setting to its engine. Native resolves to
// the byte order of the host running the codec.
func realEngine(name string) (endian.EndianEngine, bool) {
	switch name {
	case "big":
		return endian.GetBigEndianEngine(), true
	case "little":
		return endian.GetLittleEndianEngine(), true
	case "native":
		return endian.GetNativeEngine(), true
	default:
		return nil, false
	}
}

// Load loads the file at path, or the file named by HASHPACK_CONFIG when path
// is empty. With neither set it returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.Secret == "" {
		cfg.Secret = os.Getenv(EnvSecret)
	}

	return cfg, nil
}

// decode merges YAML data into c. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks the settings that can be checked without building a codec.
func (c *Config) Validate() error {
	if _, ok := format.ParseCompressionType(c.Compression); !ok {
		return fmt.Errorf("%w: unknown compression %q", errs.ErrInvalidConfig, c.Compression)
	}
	if _, ok := realEngine(c.RealByteOrder); !ok {
		return fmt.Errorf("%w: unknown real byte order %q", errs.ErrInvalidConfig, c.RealByteOrder)
	}
	for i, s := range c.PreviousSecrets {
		if s == c.Secret {
			return fmt.Errorf("%w: previous secret %d repeats the current secret", errs.ErrDuplicateKey, i)
		}
	}

	return nil
}

// Options converts the configuration into hashpack options for the given secret.
func (c *Config) Options(secret string) []hashpack.Option {
	compression, _ := format.ParseCompressionType(c.Compression)

	opts := []hashpack.Option{
		hashpack.WithChecksum(c.Checksum),
		hashpack.WithExport(c.Export),
		hashpack.WithIntegerNarrowing(c.Integers),
		hashpack.WithStringCompression(compression),
	}
	if engine, ok := realEngine(c.RealByteOrder); ok {
		opts = append(opts, hashpack.WithRealByteOrder(engine))
	}
	if secret != "" {
		opts = append(opts, hashpack.WithSecret(secret))
	}
	if c.Alphabet != "" {
		opts = append(opts, hashpack.WithAlphabet(c.Alphabet))
	}
	if c.Legacy {
		opts = append(opts, hashpack.WithLegacyKeystream())
	}

	return opts
}

// Keyring builds the primary codec from Secret and one decode-only codec per
// previous secret, all sharing the remaining settings.
func (c *Config) Keyring() (*hashpack.Keyring, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	primary, err := hashpack.New(c.Options(c.Secret)...)
	if err != nil {
		return nil, err
	}

	previous := make([]*hashpack.Hash, 0, len(c.PreviousSecrets))
	for _, s := range c.PreviousSecrets {
		h, err := hashpack.New(c.Options(s)...)
		if err != nil {
			return nil, err
		}
		previous = append(previous, h)
	}

	return hashpack.NewKeyring(primary, previous...)
}
