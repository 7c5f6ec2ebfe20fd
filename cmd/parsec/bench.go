package main

import (
	"fmt"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"

	"github.com/consensys/go-parsec/pkg/sexp"
	"github.com/consensys/go-parsec/pkg/util"
)

var benchCmd = &cobra.Command{
	Use:   "bench <file>",
	Short: "Repeatedly parse a file and report a latency distribution.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iterations, _ := cmd.Flags().GetInt("iterations")

		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		text := string(bytes)

		// 1 microsecond to 10 seconds, 3 significant figures — plenty of
		// headroom for anything from a tiny grammar to a pathological
		// worst case, without the histogram itself dominating memory.
		hist := hdrhistogram.New(1, 10_000_000, 3)
		stats := util.NewPerfStats()

		for i := 0; i < iterations; i++ {
			start := time.Now()

			if _, err := sexp.ParseAll(text); err != nil {
				return fmt.Errorf("parse failed on iteration %d: %w", i, err)
			}

			elapsed := time.Since(start).Microseconds()
			if elapsed == 0 {
				elapsed = 1
			}

			if err := hist.RecordValue(elapsed); err != nil {
				return fmt.Errorf("recording latency sample: %w", err)
			}
		}

		fmt.Printf("iterations: %d\n", iterations)
		fmt.Printf("p50:  %d us\n", hist.ValueAtQuantile(50))
		fmt.Printf("p90:  %d us\n", hist.ValueAtQuantile(90))
		fmt.Printf("p99:  %d us\n", hist.ValueAtQuantile(99))
		fmt.Printf("max:  %d us\n", hist.Max())
		stats.Log("bench")

		return nil
	},
}

func init() {
	benchCmd.Flags().Int("iterations", 1000, "number of times to reparse the file")
}
