package harness

import (
	"encoding/binary"
	"sync"

	"github.com/spacemeshos/sha256-simd"

	"github.com/hashrace/powbench/pow"
)

// Sampler collects a fixed-size set of independent trials at one difficulty.
type Sampler struct {
	searcher *Searcher
	trials   int
	workers  int
	baseSeed pow.Seed
}

// NewSampler creates a Sampler that runs cfg.Trials searches per difficulty
// across cfg.Workers concurrent workers.
func NewSampler(searcher *Searcher, cfg Config) *Sampler {
	return &Sampler{
		searcher: searcher,
		trials:   cfg.Trials,
		workers:  cfg.Workers,
		baseSeed: cfg.Seed,
	}
}

// Sample runs the configured number of independent searches at the given
// difficulty, each with a freshly derived seed. Trials share no state, so
// they are fanned out across the worker pool and joined before the sample is
// returned; with one worker the sample runs sequentially.
func (s *Sampler) Sample(difficulty, maxAttempts uint64) Sample {
	sample := make(Sample, s.trials)

	indexes := make(chan int)

	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range indexes {
				seed := trialSeed(s.baseSeed, difficulty, uint64(i))
				sample[i] = s.searcher.Search(seed, difficulty, maxAttempts)
			}
		}()
	}

	for i := 0; i < s.trials; i++ {
		indexes <- i
	}

	close(indexes)
	wg.Wait()

	return sample
}

// trialSeed derives a unique per-trial seed. Reusing a seed within a sample
// would replay the same search path and correlate the trials.
func trialSeed(base pow.Seed, difficulty, trial uint64) pow.Seed {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], difficulty)
	binary.BigEndian.PutUint64(buf[8:], trial)

	h := sha256.New()
	h.Write(base[:])
	h.Write(buf[:])

	var seed pow.Seed
	copy(seed[:], h.Sum(nil))

	return seed
}
