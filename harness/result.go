// Package harness measures the cost of finding valid proof-of-work nonces
// across a ladder of difficulty levels. It samples repeated bounded nonce
// searches per level, aggregates them into summary statistics, and streams
// one result record per level.
package harness

import (
	"encoding/json"
	"math"
	"time"
)

// Outcome classifies how a nonce search ended.
type Outcome int

const (
	// Solved means an accepted nonce was found within the attempt budget.
	Solved Outcome = iota

	// CapExceeded means the search hit the attempt cap without a solution.
	CapExceeded
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case CapExceeded:
		return "cap_exceeded"
	default:
		return "unknown"
	}
}

// Trial records one nonce search at a fixed difficulty and seed. It is
// immutable once produced and self-contained: no state is shared between
// trials.
type Trial struct {
	NonceCount uint64
	Elapsed    time.Duration
	Outcome    Outcome
}

// Sample is the full set of trials collected at one difficulty, capped
// trials included.
type Sample []Trial

// DifficultyResult aggregates one sample. Means cover solved trials only;
// TotalCount keeps capped trials visible so a low mean cannot silently hide
// a high miss rate.
type DifficultyResult struct {
	Difficulty        uint64
	MeanNonceCount    float64
	MeanTimeSeconds   float64
	AggregateHashRate float64
	SolvedCount       int
	TotalCount        int
}

// Degenerate reports whether no trial solved at this difficulty. Degenerate
// results carry NaN means.
func (r DifficultyResult) Degenerate() bool {
	return r.SolvedCount == 0
}

// MarshalJSON renders NaN statistics as null; encoding/json rejects NaN
// float values outright.
func (r DifficultyResult) MarshalJSON() ([]byte, error) {
	type resultJSON struct {
		Difficulty        uint64   `json:"difficulty"`
		MeanNonceCount    *float64 `json:"mean_nonce_count"`
		MeanTimeSeconds   *float64 `json:"mean_time_seconds"`
		AggregateHashRate *float64 `json:"aggregate_hash_rate"`
		SolvedCount       int      `json:"solved_count"`
		TotalCount        int      `json:"total_count"`
	}

	out := resultJSON{
		Difficulty:  r.Difficulty,
		SolvedCount: r.SolvedCount,
		TotalCount:  r.TotalCount,
	}

	if !math.IsNaN(r.MeanNonceCount) {
		out.MeanNonceCount = &r.MeanNonceCount
	}

	if !math.IsNaN(r.MeanTimeSeconds) {
		out.MeanTimeSeconds = &r.MeanTimeSeconds
	}

	if !math.IsNaN(r.AggregateHashRate) {
		out.AggregateHashRate = &r.AggregateHashRate
	}

	return json.Marshal(out)
}

// Metadata describes the environment a report was produced on. It is
// computed once at run start and attached to the report.
type Metadata struct {
	CPU        string `json:"cpu"`
	MiningHash string `json:"mining_hash"`
}

// BenchmarkReport is the ordered outcome of a full run, one result per
// tested difficulty in ascending difficulty order.
type BenchmarkReport struct {
	Meta    Metadata           `json:"meta"`
	Results []DifficultyResult `json:"results"`
}
