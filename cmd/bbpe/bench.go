package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/go-bbpe/internal/bench"
	"github.com/example/go-bbpe/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		text         string
		runs         int
		format       string
		tpsThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark encode latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("--text is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			results, err := runBench(tok, text, runs)
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				bench.FormatJSON(results, stats, out)
			default:
				bench.FormatTable(results, stats, out)
			}

			// Compute mean throughput across all runs.
			var totalTPS float64
			for _, r := range results {
				totalTPS += r.TokensPerSec
			}
			meanTPS := totalTPS / float64(len(results))

			return bench.CheckThroughputThreshold(meanTPS, tpsThreshold)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode for each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of encode runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&tpsThreshold, "tps-threshold", 0, "Exit non-zero if mean tokens/s falls below this value (0 = disabled)")

	return cmd
}

func runBench(tok *tokenizer.Tokenizer, text string, runs int) ([]bench.RunResult, error) {
	results := make([]bench.RunResult, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		ids, err := tok.Encode(text)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:        i,
			Cold:         i == 0,
			Duration:     dur,
			Tokens:       len(ids),
			TokensPerSec: bench.CalcTokensPerSec(len(ids), dur),
		})
	}

	return results, nil
}
