package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/consensys/go-parsec/pkg/sexp"
	"github.com/consensys/go-parsec/pkg/util"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Parse many independent files concurrently and report failures.",
	Long: "Runs a fully independent parse per file across a bounded worker pool. " +
		"Each file gets its own parser run, memo chain, and result — this is " +
		"concurrency ACROSS parses, never within a single one; a single input " +
		"is always parsed on one goroutine, start to finish.",
	Args: cobra.MinimumNArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		manifest, _ := cmd.Flags().GetString("manifest")

		if manifest != "" {
			// ReadInputFile transparently decompresses a .bz2 manifest,
			// letting a large file list ship compressed alongside the
			// grammar fixtures it names.
			args = append(args, util.ReadInputFile(manifest)...)
		}

		if len(args) == 0 {
			return fmt.Errorf("no files given, and --manifest named none")
		}

		results := make([]error, len(args))

		var wg sync.WaitGroup

		pool, err := ants.NewPool(workers)
		if err != nil {
			return fmt.Errorf("starting batch worker pool: %w", err)
		}
		defer pool.Release()

		for i, path := range args {
			wg.Add(1)

			i, path := i, path

			submitErr := pool.Submit(func() {
				defer wg.Done()
				results[i] = parseOneFile(path)
			})

			if submitErr != nil {
				wg.Done()
				results[i] = fmt.Errorf("submitting %s: %w", path, submitErr)
			}
		}

		wg.Wait()

		failed := 0

		for i, err := range results {
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", args[i], err)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
		}

		fmt.Printf("%d files parsed successfully\n", len(args))

		return nil
	},
}

func parseOneFile(path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = sexp.ParseAll(string(bytes))

	return err
}

func init() {
	batchCmd.Flags().Int("workers", 8, "maximum number of files to parse concurrently")
	batchCmd.Flags().String("manifest", "", "file listing additional paths to parse, one per line (may be .bz2 compressed)")
}
