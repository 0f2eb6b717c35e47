package hashpack

import (
	"errors"
	"fmt"

	"github.com/istem/hashpack/errs"
	"github.com/istem/hashpack/internal/collision"
)

// Keyring rotates secrets: it issues tokens with a primary Hash and still accepts
// tokens issued by previous ones.
type Keyring struct {
	keys []*Hash
}

// NewKeyring creates a Keyring.
//
// Parameters:
//   - primary: The Hash used by Encode
//   - previous: Older Hash instances accepted by Decode, tried in order after primary
//
// Returns:
//   - *Keyring: The keyring
//   - error: errs.ErrNoKeys if primary is nil, errs.ErrDuplicateKey if two
//     instances share a fingerprint
func NewKeyring(primary *Hash, previous ...*Hash) (*Keyring, error) {
	if primary == nil {
		return nil, errs.ErrNoKeys
	}

	keys := make([]*Hash, 0, len(previous)+1)
	tracker := collision.NewTracker(len(previous) + 1)
	for i, h := range append([]*Hash{primary}, previous...) {
		if h == nil {
			return nil, fmt.Errorf("%w: key %d is nil", errs.ErrInvalidConfig, i)
		}
		if err := tracker.Track(h.Fingerprint()); err != nil {
			return nil, err
		}
		keys = append(keys, h)
	}

	return &Keyring{keys: keys}, nil
}

// Primary returns the Hash used for encoding.
func (k *Keyring) Primary() *Hash {
	return k.keys[0]
}

// Len returns the number of keys, primary included.
func (k *Keyring) Len() int {
	return len(k.keys)
}

// Encode encodes values with the primary Hash.
func (k *Keyring) Encode(values ...any) (string, error) {
	return k.keys[0].Encode(values...)
}

// Decode decodes token with the first key that accepts it.
//
// Returns:
//   - []any: The decoded values
//   - int: Index of the matching key, 0 for the primary
//   - error: An error wrapping errs.ErrInvalidToken when no key accepts the token
func (k *Keyring) Decode(token string) ([]any, int, error) {
	var errList []error
	for i, h := range k.keys {
		values, err := h.Decode(token)
		if err == nil {
			return values, i, nil
		}
		errList = append(errList, fmt.Errorf("key %d: %w", i, err))
	}

	return nil, -1, errors.Join(errList...)
}
