package hashpack

import (
	"testing"

	"github.com/istem/hashpack/errs"
	"github.com/stretchr/testify/require"
)

func TestNewKeyring(t *testing.T) {
	current := newHash(t, WithSecret("2026"))
	old := newHash(t, WithSecret("2025"))

	t.Run("no primary", func(t *testing.T) {
		_, err := NewKeyring(nil, old)
		require.ErrorIs(t, err, errs.ErrNoKeys)
	})

	t.Run("nil previous", func(t *testing.T) {
		_, err := NewKeyring(current, nil)
		require.ErrorIs(t, err, errs.ErrInvalidConfig)
	})

	t.Run("duplicate fingerprint", func(t *testing.T) {
		_, err := NewKeyring(current, old, newHash(t, WithSecret("2026")))
		require.ErrorIs(t, err, errs.ErrDuplicateKey)
	})

	t.Run("primary only", func(t *testing.T) {
		k, err := NewKeyring(current)
		require.NoError(t, err)
		require.Equal(t, 1, k.Len())
		require.Same(t, current, k.Primary())
	})
}

func TestKeyring_Rotation(t *testing.T) {
	oldest := newHash(t, WithSecret("2024"), WithLegacyKeystream())
	old := newHash(t, WithSecret("2025"))
	current := newHash(t, WithSecret("2026"))

	k, err := NewKeyring(current, old, oldest)
	require.NoError(t, err)
	require.Equal(t, 3, k.Len())

	tests := []struct {
		name   string
		issuer *Hash
		index  int
	}{
		{"primary", current, 0},
		{"previous", old, 1},
		{"legacy", oldest, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issuer.Encode(8080, "session", "10.0.0.7")
			require.NoError(t, err)

			values, index, err := k.Decode(token)
			require.NoError(t, err)
			require.Equal(t, tt.index, index)
			require.Equal(t, []any{"8080", "session", "10.0.0.7"}, values)
		})
	}

	t.Run("encodes with primary", func(t *testing.T) {
		token, err := k.Encode(1, 2)
		require.NoError(t, err)

		want, err := current.Encode(1, 2)
		require.NoError(t, err)
		require.Equal(t, want, token)
	})

	t.Run("unknown issuer", func(t *testing.T) {
		stranger := newHash(t, WithSecret("stranger"), WithChecksum(true))
		token, err := stranger.Encode(5, "x")
		require.NoError(t, err)

		values, index, err := k.Decode(token)
		if err != nil {
			require.ErrorIs(t, err, errs.ErrInvalidToken)
			require.Nil(t, values)
			require.Equal(t, -1, index)
		} else {
			require.NotEqual(t, []any{"5", "x"}, values)
		}
	})
}
