// Package main provides the CLI entry point for powbench, a proof-of-work
// difficulty benchmarking tool.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hashrace/powbench/harness"
	"github.com/hashrace/powbench/pow"
	"github.com/hashrace/powbench/report"
	"github.com/hashrace/powbench/sysinfo"
)

// defaultMiningHash is the header hash the benchmark mixes into every trial
// seed unless --seed overrides it.
const defaultMiningHash = "e963a26e2f5712d662e5662e6ffd807b93d4a64f3c37861683dd18b922db7805"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "powbench",
		Short: "Proof-of-work difficulty benchmarking tool",
		Long: `Powbench measures how the cost of finding a valid proof-of-work nonce
grows with difficulty. For each configured difficulty level it runs repeated
independent nonce searches, aggregates them into summary statistics, and
streams one result line per level for downstream plotting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		cfgFile      string
		difficulties []int64
	)

	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the difficulty benchmark",
		Long: `Run repeated nonce searches at each configured difficulty level and
emit one aggregated result line per level. Difficulty levels must be strictly
increasing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, v, cfgFile, difficulties)
			if err != nil {
				return err
			}

			return runBenchmark(cmd.Context(), logger, v, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "",
		"Path to a config file (YAML or JSON)")
	flags.Int64SliceVar(&difficulties, "difficulties", nil,
		"Strictly increasing difficulty levels to measure")
	flags.Int("trials", 20,
		"Number of independent trials per difficulty level")
	flags.Uint64("max-attempts", 0,
		"Attempt cap per trial (0 = 100x the difficulty under test)")
	flags.Int("workers", runtime.NumCPU(),
		"Concurrent trials per sample (1 = sequential)")
	flags.String("seed", defaultMiningHash,
		"Mining hash seed as 32 hex-encoded bytes")
	flags.String("pow", "sha256",
		"Proof-of-work predicate: sha256 or modulo")
	flags.Bool("json", false,
		"Emit the full report as JSON instead of result lines")
	flags.Bool("table", false,
		"Render a summary table on stderr after the run")
	flags.String("output", "",
		"Write result lines to this file instead of stdout")

	for _, name := range []string{
		"trials", "max-attempts", "workers",
		"seed", "pow", "json", "table", "output",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

// loadConfig merges defaults, an optional config file, environment
// variables, and flags (highest precedence) into a harness Config.
func loadConfig(
	cmd *cobra.Command,
	v *viper.Viper,
	cfgFile string,
	flagDifficulties []int64,
) (harness.Config, error) {
	def := harness.DefaultConfig()

	v.SetDefault("trials", def.Trials)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("seed", defaultMiningHash)
	v.SetDefault("pow", "sha256")

	v.SetEnvPrefix("POWBENCH")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)

		if err := v.ReadInConfig(); err != nil {
			return harness.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := harness.Config{
		Difficulties: def.Difficulties,
		Trials:       v.GetInt("trials"),
		MaxAttempts:  v.GetUint64("max-attempts"),
		Workers:      v.GetInt("workers"),
	}

	var err error

	// The level list is the one setting viper's pflag binding can't carry
	// cleanly, so flags win over the file by hand here.
	switch {
	case cmd.Flags().Changed("difficulties"):
		cfg.Difficulties, err = toUint64Levels(flagDifficulties)
		if err != nil {
			return harness.Config{}, err
		}
	case v.IsSet("difficulties"):
		levels := v.GetIntSlice("difficulties")
		int64Levels := make([]int64, len(levels))

		for i, d := range levels {
			int64Levels[i] = int64(d)
		}

		cfg.Difficulties, err = toUint64Levels(int64Levels)
		if err != nil {
			return harness.Config{}, err
		}
	}

	seed, err := parseSeed(v.GetString("seed"))
	if err != nil {
		return harness.Config{}, err
	}

	cfg.Seed = seed

	return cfg, nil
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	v *viper.Viper,
	cfg harness.Config,
) error {
	predicate, err := selectPredicate(v.GetString("pow"))
	if err != nil {
		return err
	}

	meta := harness.Metadata{
		CPU:        sysinfo.CPULabel(),
		MiningHash: v.GetString("seed"),
	}

	out := os.Stdout

	if path := v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()

		out = f
	}

	// JSON mode replaces the line stream with one report document at the
	// end; the line format stays reserved for the plotting pipeline.
	var (
		lineOut io.Writer
		format  harness.FormatFunc
	)

	if !v.GetBool("json") {
		lineOut = out
		format = report.FormatLine
	}

	driver := harness.NewDriver(cfg, meta, predicate, lineOut, format, logger)

	rep, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}

	if v.GetBool("json") {
		if err := report.WriteJSON(out, rep); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
	}

	if v.GetBool("table") {
		if err := report.WriteTable(os.Stderr, rep); err != nil {
			return fmt.Errorf("write summary table: %w", err)
		}
	}

	return nil
}

func selectPredicate(name string) (pow.Predicate, error) {
	switch name {
	case "sha256":
		return pow.SHA256{}, nil
	case "modulo":
		return pow.Modulo{}, nil
	default:
		return nil, fmt.Errorf(
			"unknown pow predicate %q (want sha256 or modulo)", name,
		)
	}
}

func parseSeed(hexSeed string) (pow.Seed, error) {
	var seed pow.Seed

	raw, err := hex.DecodeString(hexSeed)
	if err != nil {
		return seed, fmt.Errorf("decode seed hex: %w", err)
	}

	if len(raw) != len(seed) {
		return seed, fmt.Errorf(
			"seed must be %d bytes, got %d", len(seed), len(raw),
		)
	}

	copy(seed[:], raw)

	return seed, nil
}

func toUint64Levels(levels []int64) ([]uint64, error) {
	out := make([]uint64, len(levels))

	for i, d := range levels {
		if d <= 0 {
			return nil, fmt.Errorf(
				"invalid configuration: difficulty %d is not positive", d,
			)
		}

		out[i] = uint64(d)
	}

	return out, nil
}
