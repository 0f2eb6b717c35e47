// Package hash computes codec fingerprints.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of the given parts.
//
// Every part is prefixed with its uvarint length, so moving bytes across a part
// boundary changes the result.
func Fingerprint(parts ...[]byte) uint64 {
	d := xxhash.New()

	var prefix [binary.MaxVarintLen64]byte
	for _, p := range parts {
		n := binary.PutUvarint(prefix[:], uint64(len(p)))
		_, _ = d.Write(prefix[:n])
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
