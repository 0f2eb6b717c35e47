// Package collision detects repeated codec fingerprints.
package collision

import (
	"fmt"

	"github.com/istem/hashpack/errs"
)

// Tracker records fingerprints in insertion order and rejects repeats.
type Tracker struct {
	seen map[uint64]int // fingerprint -> position of first occurrence
	next int
}

// NewTracker creates a Tracker sized for n fingerprints.
func NewTracker(n int) *Tracker {
	return &Tracker{
		seen: make(map[uint64]int, n),
	}
}

// Track records fingerprint at the next position.
//
// Returns errs.ErrDuplicateKey naming both positions if the fingerprint was
// already tracked. A rejected fingerprint does not take a position.
func (t *Tracker) Track(fingerprint uint64) error {
	if first, exists := t.seen[fingerprint]; exists {
		return fmt.Errorf("%w: keys %d and %d share fingerprint %016x",
			errs.ErrDuplicateKey, first, t.next, fingerprint)
	}

	t.seen[fingerprint] = t.next
	t.next++

	return nil
}
