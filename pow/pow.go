// Package pow defines the proof-of-work acceptance predicate consumed by the
// benchmark harness. A Predicate turns a (seed, nonce) pair into a candidate
// hash and decides whether the candidate satisfies a difficulty level; the
// harness never looks inside the hash construction, so any scheme that keeps
// higher difficulties harder in expectation can be plugged in.
package pow

// Hash is a candidate digest produced by a Predicate.
type Hash [32]byte

// Seed is the per-trial input a Predicate mixes with each nonce. Distinct
// seeds produce uncorrelated search paths.
type Seed [32]byte

// Predicate is the two-operation capability the harness needs from a
// proof-of-work scheme. Implementations must be stateless or otherwise safe
// for concurrent use, and acceptance at a higher difficulty must imply
// acceptance at every lower one.
type Predicate interface {
	// Candidate derives the candidate hash for one nonce attempt.
	Candidate(seed Seed, nonce uint64) Hash

	// MeetsDifficulty reports whether the candidate satisfies difficulty.
	MeetsDifficulty(hash Hash, difficulty uint64) bool
}
