package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building via `make`, but not when installing
// via "go install".
var Version string

// log is the process-wide logger, configured from persistent flags in
// init() below and used directly by the subcommands in this package that
// log (serve-metrics, run --trace).
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "parsec",
	Short: "A toolbox for running and inspecting parsec grammars.",
	Long:  "A command-line toolbox for driving the sexp grammar built on the parsec combinator library: one-shot parsing, batch processing, benchmarking, and an interactive REPL.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("parsec ")

			switch {
			case Version != "":
				fmt.Print(Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Print(info.Main.Version)
				} else {
					fmt.Print("(unknown version)")
				}
			}

			fmt.Println()

			return
		}

		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetFlag reads a bool persistent or local flag by name, returning false if
// it isn't registered — cobra's own accessor panics in that case, which is
// one indirection too many for call sites that just want a default.
func GetFlag(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return false
	}

	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}

	return v
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	cobra.OnInitialize(func() {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveMetricsCmd)
}
