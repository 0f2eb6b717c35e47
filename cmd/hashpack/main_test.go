package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/internal/config"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvSecret, "")
}

func TestRun_EncodeGolden(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--secret", "secret", "encode", "10", "20", "30")
	require.NoError(t, err)
	require.Equal(t, "4gGRIHyuPs\n", out)
}

func TestRun_DecodeGolden(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--secret", "secret", "decode", "4gGRIHyuPs", "4mz-RZDHPV")
	require.NoError(t, err)
	require.Equal(t, "[\"10\",\"20\",\"30\"]\n[\"127.0.0.1\"]\n", out)

	out, _, err = runCLI(t, "--secret", "secret", "--integers", "decode", "4gGRIHyuPs")
	require.NoError(t, err)
	require.Equal(t, "[10,20,30]\n", out)
}

func TestRun_SecretFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvSecret, "secret")

	out, _, err := runCLI(t, "encode", "10", "20", "30")
	require.NoError(t, err)
	require.Equal(t, "4gGRIHyuPs\n", out)
}

func TestRun_RoundTripWithFlags(t *testing.T) {
	isolate(t)

	flags := []string{"--secret", "flags", "--no-crc", "--compression", "lz4", "--legacy"}
	out, _, err := runCLI(t, append(flags, "encode", "user", "-12", "abcd")...)
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	out, _, err = runCLI(t, append(flags, "decode", token)...)
	require.NoError(t, err)
	require.Equal(t, "[\"user\",\"-12\",\"abcd\"]\n", out)

	// a different generation does not read the token back
	_, _, err = runCLI(t, "--secret", "flags", "decode", token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestRun_RealOrder(t *testing.T) {
	isolate(t)

	encode := func(order string) string {
		out, _, err := runCLI(t, "--secret", "order", "--real-order", order, "encode", "0.05")
		require.NoError(t, err)
		return strings.TrimSpace(out)
	}

	big := encode("big")
	little := encode("little")
	require.NotEqual(t, big, little)

	for order, token := range map[string]string{"big": big, "little": little, "native": encode("native")} {
		out, _, err := runCLI(t, "--secret", "order", "--real-order", order, "decode", token)
		require.NoError(t, err)
		require.Equal(t, "[0.05]\n", out)
	}

	path := filepath.Join(t.TempDir(), "hashpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secret: order\nreal_byte_order: little\n"), 0o600))

	out, _, err := runCLI(t, "--config", path, "encode", "0.05")
	require.NoError(t, err)
	require.Equal(t, little+"\n", out)
}

func TestRun_ConfigWithPreviousSecrets(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "hashpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secret: new\nprevious_secrets: [old]\n"), 0o600))

	out, _, err := runCLI(t, "--secret", "old", "encode", "99")
	require.NoError(t, err)
	oldToken := strings.TrimSpace(out)

	out, logs, err := runCLI(t, "--config", path, "decode", oldToken)
	require.NoError(t, err)
	require.Equal(t, "[\"99\"]\n", out)
	require.Contains(t, logs, "previous secret")

	t.Setenv(config.EnvConfig, path)
	out, _, err = runCLI(t, "decode", oldToken)
	require.NoError(t, err)
	require.Equal(t, "[\"99\"]\n", out)
}

func TestRun_CRC(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--secret", "secret", "crc", "hello")
	require.NoError(t, err)
	require.Equal(t, "190\n", out)

	out, _, err = runCLI(t, "--secret", "secret", "crc", "--word", "hello")
	require.NoError(t, err)
	require.Equal(t, "2299\n", out)

	_, _, err = runCLI(t, "crc")
	require.Error(t, err)
}

func TestRun_Inspect(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--secret", "secret", "inspect")
	require.NoError(t, err)
	require.Contains(t, out, "alphabet:    YR4jcMgaQKNlusxHLt6oOI-dqvibUk17hzXmCfBJGe092P_AFTpVn85E3wDWSrZy\n")
	require.Contains(t, out, "type Integer:  3\n")
	require.Contains(t, out, "type IP:       1\n")
	require.Contains(t, out, "keys:        1\n")
}

func TestRun_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown command", []string{"explode"}, "unknown command"},
		{"encode without values", []string{"encode"}, "no values"},
		{"decode without tokens", []string{"decode"}, "no tokens"},
		{"bad compression", []string{"--compression", "brotli", "encode", "1"}, "unknown compression"},
		{"bad real order", []string{"--real-order", "middle", "encode", "0.05"}, "unknown real byte order"},
		{"bad token", []string{"decode", "!!"}, "invalid token"},
		{"missing config", []string{"--config", "/nonexistent/hashpack.yaml", "inspect"}, "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRun_Help(t *testing.T) {
	isolate(t)

	_, help, err := runCLI(t, "--help")
	require.NoError(t, err)
	require.Contains(t, help, "Commands:")
	require.Contains(t, help, "encode")
	require.Contains(t, help, "--secret")
}
