package pow

import (
	"encoding/binary"
	"hash/fnv"
)

// Modulo is a synthetic predicate for tests and dry runs: the candidate is a
// cheap FNV-1a mix of seed and nonce, accepted when its leading value divides
// evenly by the difficulty. It keeps the same linear difficulty/attempts
// relation as SHA256 without the hashing cost.
type Modulo struct{}

// Candidate mixes the seed and big-endian nonce through FNV-1a and stores the
// 64-bit result in the leading hash bytes.
func (Modulo) Candidate(seed Seed, nonce uint64) Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)

	h := fnv.New64a()
	h.Write(seed[:])
	h.Write(buf[:])

	var out Hash
	binary.BigEndian.PutUint64(out[:8], h.Sum64())

	return out
}

// MeetsDifficulty accepts candidates whose leading value is a multiple of the
// difficulty.
func (Modulo) MeetsDifficulty(hash Hash, difficulty uint64) bool {
	if difficulty == 0 {
		return true
	}

	return binary.BigEndian.Uint64(hash[:8])%difficulty == 0
}
