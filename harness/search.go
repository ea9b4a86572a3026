package harness

import (
	"time"

	"github.com/hashrace/powbench/pow"
)

// Searcher performs a single bounded nonce search against a predicate.
type Searcher struct {
	predicate pow.Predicate
}

// NewSearcher creates a Searcher over the given predicate.
func NewSearcher(predicate pow.Predicate) *Searcher {
	return &Searcher{predicate: predicate}
}

// Search tries nonces 0, 1, 2, ... until the predicate accepts a candidate
// or maxAttempts is exhausted. The attempt count and outcome are fully
// determined by (seed, difficulty, maxAttempts); only the elapsed wall-clock
// time varies between runs.
func (s *Searcher) Search(seed pow.Seed, difficulty, maxAttempts uint64) Trial {
	start := time.Now()

	for nonce := uint64(0); nonce < maxAttempts; nonce++ {
		hash := s.predicate.Candidate(seed, nonce)

		if s.predicate.MeetsDifficulty(hash, difficulty) {
			return Trial{
				NonceCount: nonce + 1,
				Elapsed:    time.Since(start),
				Outcome:    Solved,
			}
		}
	}

	return Trial{
		NonceCount: maxAttempts,
		Elapsed:    time.Since(start),
		Outcome:    CapExceeded,
	}
}
