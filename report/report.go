// Package report serializes benchmark results for downstream consumers. The
// line format is a compatibility contract with the external plotting tool:
// its field order and labels must not change.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/hashrace/powbench/harness"
)

// FormatLine renders one difficulty result in the fixed line format:
//
//	Difficulty: <d>, Average Nonce Count: <n>, Avg Time: <t> s, Aggregate Hash Rate: <r> (solutions/s)
//
// Degenerate results render NaN numeric fields; the downstream numeric
// parser skips such lines, which keeps the failure visible in the stream
// without breaking it.
func FormatLine(r harness.DifficultyResult) string {
	return fmt.Sprintf(
		"Difficulty: %d, Average Nonce Count: %.2f, Avg Time: %.3f s, "+
			"Aggregate Hash Rate: %.2f (solutions/s)",
		r.Difficulty,
		r.MeanNonceCount,
		r.MeanTimeSeconds,
		r.AggregateHashRate,
	)
}

// WriteLines writes the whole report in the line format, one line per
// difficulty in report order.
func WriteLines(w io.Writer, rep harness.BenchmarkReport) error {
	for _, r := range rep.Results {
		if _, err := fmt.Fprintln(w, FormatLine(r)); err != nil {
			return fmt.Errorf("write result line: %w", err)
		}
	}

	return nil
}

// WriteJSON writes the report, metadata included, as indented JSON.
func WriteJSON(w io.Writer, rep harness.BenchmarkReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

// WriteTable renders a human-readable summary table of the report.
func WriteTable(w io.Writer, rep harness.BenchmarkReport) error {
	if len(rep.Results) == 0 {
		return fmt.Errorf("no results to report")
	}

	if rep.Meta.CPU != "" {
		fmt.Fprintf(w, "CPU: %s\n", rep.Meta.CPU)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"difficulty", "avg nonces", "avg time", "rate (solutions/s)", "solved",
	})
	table.SetBorder(true)

	for _, r := range rep.Results {
		table.Append([]string{
			strconv.FormatUint(r.Difficulty, 10),
			formatFloat(r.MeanNonceCount, 2),
			formatFloat(r.MeanTimeSeconds, 3) + "s",
			formatFloat(r.AggregateHashRate, 2),
			fmt.Sprintf("%d/%d", r.SolvedCount, r.TotalCount),
		})
	}

	table.Render()

	return nil
}

func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', prec, 64)
}
