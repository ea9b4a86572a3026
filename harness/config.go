package harness

import (
	"fmt"
	"math"
	"runtime"

	"github.com/hashrace/powbench/pow"
)

// Config controls a benchmark run.
type Config struct {
	// Difficulties is the strictly increasing sequence of levels to measure.
	Difficulties []uint64

	// Trials is the number of independent searches per difficulty.
	Trials int

	// MaxAttempts caps each search. 0 derives 100x the difficulty under
	// test, which keeps capped trials rare for any predicate with a linear
	// difficulty/attempts relation.
	MaxAttempts uint64

	// Workers is the number of trials run concurrently within a sample.
	// 1 runs the sample sequentially.
	Workers int

	// Seed is the base mining-hash seed per-trial seeds are derived from.
	Seed pow.Seed
}

// DefaultConfig returns a ladder small enough to finish in seconds with the
// SHA-256 predicate.
func DefaultConfig() Config {
	return Config{
		Difficulties: []uint64{50_000, 100_000, 150_000, 200_000, 250_000},
		Trials:       20,
		Workers:      runtime.NumCPU(),
	}
}

// Validate rejects configurations that would bias or break a run. It must
// pass before any trial executes; a repeated or decreasing difficulty is an
// error, not something to dedup or re-sort.
func (c Config) Validate() error {
	if len(c.Difficulties) == 0 {
		return fmt.Errorf("invalid configuration: no difficulty levels")
	}

	var prev uint64

	for i, d := range c.Difficulties {
		if d == 0 {
			return fmt.Errorf(
				"invalid configuration: difficulty at index %d is zero", i,
			)
		}

		if i > 0 && d <= prev {
			return fmt.Errorf(
				"invalid configuration: difficulties must be strictly "+
					"increasing (%d followed by %d)", prev, d,
			)
		}

		prev = d
	}

	if c.Trials <= 0 {
		return fmt.Errorf(
			"invalid configuration: trials must be positive, got %d", c.Trials,
		)
	}

	if c.Workers <= 0 {
		return fmt.Errorf(
			"invalid configuration: workers must be positive, got %d", c.Workers,
		)
	}

	return nil
}

// capFor returns the attempt budget for one difficulty.
func (c Config) capFor(difficulty uint64) uint64 {
	if c.MaxAttempts > 0 {
		return c.MaxAttempts
	}

	if difficulty > math.MaxUint64/100 {
		return math.MaxUint64
	}

	return difficulty * 100
}
