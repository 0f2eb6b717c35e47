package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/istem/hashpack"
	"github.com/istem/hashpack/format"
)

// session is the state shared by commands.
type session struct {
	keyring *hashpack.Keyring
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

type command struct {
	summary string
	run     func(s *session, name string, args []string) error
}

var commandOrder = []string{"encode", "decode", "crc", "inspect"}

var commands = map[string]command{
	"encode":  {"encode values into one token", runEncode},
	"decode":  {"decode tokens, one JSON array per line", runDecode},
	"crc":     {"print the secret-seeded checksum of text", runCRC},
	"inspect": {"print the permuted alphabet and type codes", runInspect},
}

func runEncode(s *session, _ string, args []string) error {
	if len(args) == 0 {
		return errors.New("encode: no values given")
	}

	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a
	}

	token, err := s.keyring.Encode(values...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	s.logger.Debug("encoded", "values", len(values), "length", len(token))

	_, err = fmt.Fprintln(s.stdout, token)
	return err
}

func runDecode(s *session, _ string, args []string) error {
	if len(args) == 0 {
		return errors.New("decode: no tokens given")
	}

	var failed []error
	for _, token := range args {
		values, key, err := s.keyring.Decode(token)
		if err != nil {
			s.logger.Warn("token rejected", "token", token, "error", err)
			failed = append(failed, fmt.Errorf("decode %q: %w", token, err))
			continue
		}
		if key > 0 {
			s.logger.Warn("token issued with a previous secret", "token", token, "key", key)
		}

		line, err := json.Marshal(values)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(s.stdout, string(line)); err != nil {
			return err
		}
	}

	return errors.Join(failed...)
}

func runCRC(s *session, name string, args []string) error {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(s.stderr)
	word := flagSet.Bool("word", false, "compute the 16-bit checksum")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return errors.New("crc: expected exactly one argument")
	}

	mode := format.ChecksumByte
	if *word {
		mode = format.ChecksumWord
	}

	_, err := fmt.Fprintln(s.stdout, s.keyring.Primary().CRC([]byte(flagSet.Arg(0)), mode))
	return err
}

func runInspect(s *session, _ string, args []string) error {
	if len(args) != 0 {
		return errors.New("inspect: takes no arguments")
	}

	h := s.keyring.Primary()
	fmt.Fprintf(s.stdout, "fingerprint: %016x\n", h.Fingerprint())
	fmt.Fprintf(s.stdout, "alphabet:    %s\n", h.Alphabet())
	fmt.Fprintf(s.stdout, "keys:        %d\n", s.keyring.Len())
	for _, vt := range format.ValueTypes {
		fmt.Fprintf(s.stdout, "type %-9s %d\n", vt.String()+":", h.TypeCode(vt))
	}

	return nil
}
