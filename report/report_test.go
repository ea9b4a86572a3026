package report

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashrace/powbench/harness"
)

// visualizerRegex mirrors the external plotting tool's line parser.
var visualizerRegex = regexp.MustCompile(
	`^Difficulty: (\d+), Average Nonce Count: ([\d.]+), ` +
		`Avg Time: ([\d.]+) s, Aggregate Hash Rate: ([\d.]+) \(solutions/s\)$`,
)

func TestFormatLineExact(t *testing.T) {
	r := require.New(t)

	result := harness.DifficultyResult{
		Difficulty:        56_000_000_000,
		MeanNonceCount:    886.08,
		MeanTimeSeconds:   1.207,
		AggregateHashRate: 4555.75,
		SolvedCount:       50,
		TotalCount:        50,
	}

	want := "Difficulty: 56000000000, Average Nonce Count: 886.08, " +
		"Avg Time: 1.207 s, Aggregate Hash Rate: 4555.75 (solutions/s)"
	r.Equal(want, FormatLine(result))
}

func TestFormatLineParsesDownstream(t *testing.T) {
	r := require.New(t)

	result := harness.DifficultyResult{
		Difficulty:        1000,
		MeanNonceCount:    12.5,
		MeanTimeSeconds:   0.004,
		AggregateHashRate: 3125.0,
		SolvedCount:       20,
		TotalCount:        20,
	}

	line := FormatLine(result)
	matches := visualizerRegex.FindStringSubmatch(line)
	r.NotNil(matches, "line does not match the parser contract: %s", line)
	r.Equal("1000", matches[1])
	r.Equal("12.50", matches[2])
	r.Equal("0.004", matches[3])
	r.Equal("3125.00", matches[4])
}

func TestFormatLineDegenerate(t *testing.T) {
	r := require.New(t)

	result := harness.DifficultyResult{
		Difficulty:        99,
		MeanNonceCount:    math.NaN(),
		MeanTimeSeconds:   math.NaN(),
		AggregateHashRate: math.NaN(),
		TotalCount:        10,
	}

	line := FormatLine(result)
	r.Contains(line, "Difficulty: 99,")
	r.Contains(line, "NaN")
	// The downstream numeric parser must skip, not choke on, this line.
	r.False(visualizerRegex.MatchString(line))
}

func TestWriteLines(t *testing.T) {
	r := require.New(t)

	rep := harness.BenchmarkReport{
		Results: []harness.DifficultyResult{
			{Difficulty: 1, MeanNonceCount: 1, SolvedCount: 1, TotalCount: 1},
			{Difficulty: 2, MeanNonceCount: 2, SolvedCount: 1, TotalCount: 1},
		},
	}

	var buf bytes.Buffer
	r.NoError(WriteLines(&buf, rep))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	r.Len(lines, 2)
	r.True(strings.HasPrefix(lines[0], "Difficulty: 1,"))
	r.True(strings.HasPrefix(lines[1], "Difficulty: 2,"))
}

func TestWriteJSON(t *testing.T) {
	r := require.New(t)

	rep := harness.BenchmarkReport{
		Meta: harness.Metadata{CPU: "test cpu", MiningHash: "deadbeef"},
		Results: []harness.DifficultyResult{
			{
				Difficulty:        10,
				MeanNonceCount:    5.5,
				MeanTimeSeconds:   0.1,
				AggregateHashRate: 55,
				SolvedCount:       2,
				TotalCount:        2,
			},
			{
				Difficulty:        20,
				MeanNonceCount:    math.NaN(),
				MeanTimeSeconds:   math.NaN(),
				AggregateHashRate: math.NaN(),
				TotalCount:        2,
			},
		},
	}

	var buf bytes.Buffer
	r.NoError(WriteJSON(&buf, rep))

	var decoded struct {
		Meta struct {
			CPU        string `json:"cpu"`
			MiningHash string `json:"mining_hash"`
		} `json:"meta"`
		Results []struct {
			Difficulty     uint64   `json:"difficulty"`
			MeanNonceCount *float64 `json:"mean_nonce_count"`
			SolvedCount    int      `json:"solved_count"`
			TotalCount     int      `json:"total_count"`
		} `json:"results"`
	}

	r.NoError(json.Unmarshal(buf.Bytes(), &decoded))
	r.Equal("test cpu", decoded.Meta.CPU)
	r.Len(decoded.Results, 2)

	r.NotNil(decoded.Results[0].MeanNonceCount)
	r.InDelta(5.5, *decoded.Results[0].MeanNonceCount, 1e-9)

	// Degenerate statistics serialize as null, not NaN.
	r.Nil(decoded.Results[1].MeanNonceCount)
	r.Equal(0, decoded.Results[1].SolvedCount)
	r.Equal(2, decoded.Results[1].TotalCount)
}

func TestWriteTable(t *testing.T) {
	r := require.New(t)

	rep := harness.BenchmarkReport{
		Meta: harness.Metadata{CPU: "test cpu"},
		Results: []harness.DifficultyResult{
			{
				Difficulty:        1000,
				MeanNonceCount:    42.0,
				MeanTimeSeconds:   0.5,
				AggregateHashRate: 84.0,
				SolvedCount:       5,
				TotalCount:        10,
			},
		},
	}

	var buf bytes.Buffer
	r.NoError(WriteTable(&buf, rep))

	output := buf.String()
	r.Contains(output, "test cpu")
	r.Contains(output, "1000")
	r.Contains(output, "42.00")
	r.Contains(output, "5/10")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteTable(&buf, harness.BenchmarkReport{}))
}
