package domain

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable hex digest of the six values in canonical
// key order. Equal settings always share a fingerprint.
func (s MachineSettings) Fingerprint() string {
	buf := make([]byte, 0, 8*len(settingsKeys))
	for _, key := range settingsKeys {
		v := *s.f.field(key)
		if v == 0 {
			v = 0 // fold -0 into +0
		}
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
