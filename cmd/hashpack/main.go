// hashpack encodes values into secret-keyed tokens and decodes them back.
//
// Settings come from a YAML file (--config or HASHPACK_CONFIG), the
// HASHPACK_SECRET environment variable, and global flags, in increasing order
// of precedence. Decoding also accepts tokens issued with the file's
// previous_secrets.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/istem/hashpack/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are accepted before the command name.
type globalFlags struct {
	config      string
	secret      string
	alphabet    string
	compression string
	realOrder   string
	noCRC       bool
	export      bool
	legacy      bool
	integers    bool
	verbose     bool
}

func (g *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.config, "config", "", "path to YAML config file (default: $"+config.EnvConfig+")")
	flagSet.StringVar(&g.secret, "secret", "", "secret phrase (default: $"+config.EnvSecret+")")
	flagSet.StringVar(&g.alphabet, "alphabet", "", "output alphabet before permutation")
	flagSet.StringVar(&g.compression, "compression", "", "string compression: deflate, none, zstd, s2, lz4")
	flagSet.StringVar(&g.realOrder, "real-order", "", "byte order of raw real values: big, little, native")
	flagSet.BoolVar(&g.noCRC, "no-crc", false, "omit the checksum byte")
	flagSet.BoolVar(&g.export, "export", false, "never emit raw machine floats")
	flagSet.BoolVar(&g.legacy, "legacy", false, "use the first token generation")
	flagSet.BoolVar(&g.integers, "integers", false, "print integer values as numbers")
	flagSet.BoolVarP(&g.verbose, "verbose", "v", false, "log debug details to stderr")
	flagSet.BoolP("help", "h", false, "show help")
}

// override copies explicitly set flags over the loaded configuration.
func (g *globalFlags) override(flagSet *pflag.FlagSet, cfg *config.Config) {
	if flagSet.Changed("secret") {
		cfg.Secret = g.secret
	}
	if flagSet.Changed("alphabet") {
		cfg.Alphabet = g.alphabet
	}
	if flagSet.Changed("compression") {
		cfg.Compression = g.compression
	}
	if flagSet.Changed("real-order") {
		cfg.RealByteOrder = g.realOrder
	}
	if flagSet.Changed("no-crc") {
		cfg.Checksum = !g.noCRC
	}
	if flagSet.Changed("export") {
		cfg.Export = g.export
	}
	if flagSet.Changed("legacy") {
		cfg.Legacy = g.legacy
	}
	if flagSet.Changed("integers") {
		cfg.Integers = g.integers
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var flags globalFlags

	flagSet := pflag.NewFlagSet("hashpack", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flags.register(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return errors.New("missing command")
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	flags.override(flagSet, cfg)

	keyring, err := cfg.Keyring()
	if err != nil {
		return err
	}
	logger.Debug("codec ready",
		"fingerprint", fmt.Sprintf("%016x", keyring.Primary().Fingerprint()),
		"keys", keyring.Len(),
		"compression", cfg.Compression,
		"legacy", cfg.Legacy,
		"real_byte_order", cfg.RealByteOrder,
	)

	return cmd.run(&session{
		keyring: keyring,
		logger:  logger,
		stdout:  stdout,
		stderr:  stderr,
	}, rest[0], rest[1:])
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `hashpack packs values into short secret-keyed tokens.

Usage:
  hashpack [flags] <command> [arguments]

Commands:
`)
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", flagSet.FlagUsages())
}
