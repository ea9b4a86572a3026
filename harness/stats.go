package harness

import (
	"math"
	"time"
)

// Aggregate reduces one sample into per-difficulty summary statistics. Only
// solved trials feed the means; the aggregate rate divides total attempts by
// total elapsed time rather than averaging per-trial rates, which would skew
// toward short trials. A sample with no solved trials yields a degenerate
// result with NaN statistics, never a division by zero.
func Aggregate(difficulty uint64, sample Sample) DifficultyResult {
	result := DifficultyResult{
		Difficulty: difficulty,
		TotalCount: len(sample),
	}

	var (
		totalNonces  uint64
		totalElapsed time.Duration
	)

	for _, trial := range sample {
		if trial.Outcome != Solved {
			continue
		}

		result.SolvedCount++
		totalNonces += trial.NonceCount
		totalElapsed += trial.Elapsed
	}

	if result.SolvedCount == 0 {
		result.MeanNonceCount = math.NaN()
		result.MeanTimeSeconds = math.NaN()
		result.AggregateHashRate = math.NaN()

		return result
	}

	solved := float64(result.SolvedCount)
	result.MeanNonceCount = float64(totalNonces) / solved
	result.MeanTimeSeconds = totalElapsed.Seconds() / solved

	if totalElapsed > 0 {
		result.AggregateHashRate = float64(totalNonces) / totalElapsed.Seconds()
	}

	return result
}
