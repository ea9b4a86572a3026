package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashrace/powbench/pow"
)

// FormatFunc renders one result as the line emitted for downstream
// consumers. The driver stays decoupled from the concrete output format.
type FormatFunc func(DifficultyResult) string

// Driver runs the full benchmark: one sample per configured difficulty,
// strictly in the configured order, streaming each formatted result line as
// soon as its level finishes so partial output survives interruption.
type Driver struct {
	cfg     Config
	meta    Metadata
	sampler *Sampler
	out     io.Writer
	format  FormatFunc
	logger  *slog.Logger
}

// NewDriver creates a Driver. out and format may be nil to disable line
// streaming; the report is still returned.
func NewDriver(
	cfg Config,
	meta Metadata,
	predicate pow.Predicate,
	out io.Writer,
	format FormatFunc,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		cfg:     cfg,
		meta:    meta,
		sampler: NewSampler(NewSearcher(predicate), cfg),
		out:     out,
		format:  format,
		logger:  logger,
	}
}

// Run executes the benchmark. Configuration errors abort before any trial
// runs; a degenerate level is logged and reported but never blocks the next
// one. The report lists results in the configured difficulty order.
func (d *Driver) Run(ctx context.Context) (BenchmarkReport, error) {
	if err := d.cfg.Validate(); err != nil {
		return BenchmarkReport{}, err
	}

	report := BenchmarkReport{
		Meta:    d.meta,
		Results: make([]DifficultyResult, 0, len(d.cfg.Difficulties)),
	}

	d.logger.Info("starting benchmark",
		slog.String("cpu", d.meta.CPU),
		slog.String("mining_hash", d.meta.MiningHash),
		slog.Int("levels", len(d.cfg.Difficulties)),
		slog.Int("trials", d.cfg.Trials),
		slog.Int("workers", d.cfg.Workers),
	)

	for _, difficulty := range d.cfg.Difficulties {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("benchmark interrupted: %w", err)
		}

		maxAttempts := d.cfg.capFor(difficulty)

		d.logger.Info("measuring difficulty",
			slog.Uint64("difficulty", difficulty),
			slog.Uint64("max_attempts", maxAttempts),
		)

		sample := d.sampler.Sample(difficulty, maxAttempts)
		result := Aggregate(difficulty, sample)

		if capped := result.TotalCount - result.SolvedCount; capped > 0 {
			// Frequent caps mean max attempts is too tight for this
			// difficulty, which biases the means low.
			d.logger.Warn("trials exceeded attempt cap",
				slog.Uint64("difficulty", difficulty),
				slog.Int("capped", capped),
				slog.Int("total", result.TotalCount),
			)
		}

		if result.Degenerate() {
			d.logger.Warn("no solved trials at difficulty",
				slog.Uint64("difficulty", difficulty),
			)
		}

		if d.out != nil && d.format != nil {
			if _, err := fmt.Fprintln(d.out, d.format(result)); err != nil {
				return report, fmt.Errorf("write result line: %w", err)
			}
		}

		report.Results = append(report.Results, result)
	}

	d.logger.Info("measurement complete",
		slog.Int("levels", len(report.Results)),
	)

	return report, nil
}
