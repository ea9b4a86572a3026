package pow

import (
	"encoding/binary"
	"math"

	"github.com/spacemeshos/sha256-simd"
)

// SHA256 is the default predicate: the candidate is the SHA-256 digest of
// seed || nonce, accepted when its leading 64 bits fall at or below a
// difficulty-scaled target. Expected attempts grow linearly with difficulty.
type SHA256 struct{}

// Candidate hashes the seed followed by the big-endian nonce.
func (SHA256) Candidate(seed Seed, nonce uint64) Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)

	h := sha256.New()
	h.Write(seed[:])
	h.Write(buf[:])

	var out Hash
	copy(out[:], h.Sum(nil))

	return out
}

// MeetsDifficulty accepts hashes whose leading 64 bits fall within the
// target MaxUint64/difficulty, so one in every `difficulty` candidates is
// accepted on average.
func (SHA256) MeetsDifficulty(hash Hash, difficulty uint64) bool {
	if difficulty == 0 {
		return true
	}

	return binary.BigEndian.Uint64(hash[:8]) <= math.MaxUint64/difficulty
}
