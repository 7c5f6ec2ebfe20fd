package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/trace"
	"github.com/consensys/go-parsec/pkg/sexp"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse a single file and print the resulting S-expressions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		var terms []sexp.SExp

		if GetFlag(cmd, "trace") {
			terms, err = runTraced(string(bytes))
		} else {
			terms, err = sexp.ParseAll(string(bytes))
		}

		if err != nil {
			return err
		}

		for _, term := range terms {
			fmt.Println(term.String())
		}

		return nil
	},
}

// runTraced parses source through a trace.Tracer-wrapped copy of sexp's
// grammar, logging every production entered and exited at trace level. An
// ordinary parse failure resolves through Wrap's own eerr continuation, so
// its frame closes normally and carries no special handling here; a panic
// escaping the trampoline instead leaves whatever frames were still open on
// the tracer's stack, which is exactly what Dump is for — the recover below
// logs it before turning the panic into a reported error.
func runTraced(source string) (terms []sexp.SExp, err error) {
	log.SetLevel(logrus.TraceLevel)

	tracer := trace.New(log.WithField("component", "trace"))
	traced := trace.Wrap(tracer, sexp.Grammar)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error(tracer.Dump())
			err = fmt.Errorf("panic while parsing: %v", r)
		}
	}()

	terms, err = parsec.Run(traced, []rune(source))
	if err != nil {
		return nil, sexp.Diagnose(source, err)
	}

	return terms, nil
}

func init() {
	runCmd.Flags().Bool("trace", false, "log every parser entered/exited while parsing, and dump the open frame stack if parsing panics")
}
