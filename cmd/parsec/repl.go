package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/consensys/go-parsec/pkg/sexp"
	"github.com/consensys/go-parsec/pkg/util/termio"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse S-expressions typed at a prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, err := termio.NewTerminal()
		if err != nil {
			return fmt.Errorf("starting repl: %w", err)
		}

		defer func() { _ = term.Restore() }()

		prompt := termio.NewAnsiEscape().FgColour(termio.TERM_CYAN).Build() + "parsec> " + termio.ResetAnsiEscape().Build()
		term.SetPrompt(prompt)

		for {
			line, err := term.ReadLine()
			if errors.Is(err, io.EOF) {
				return nil
			}

			if err != nil {
				return err
			}

			if line == "" {
				continue
			}

			echoResult(term, line)
		}
	},
}

func echoResult(term *termio.Terminal, line string) {
	value, err := sexp.Parse(line)

	switch {
	case err != nil:
		msg := termio.NewAnsiEscape().FgColour(termio.TERM_RED).Build() + err.Error() + termio.ResetAnsiEscape().Build() + "\r\n"
		_, _ = term.Write([]byte(msg))
	case value == nil:
		_, _ = term.Write([]byte("(no expression)\r\n"))
	default:
		_, _ = term.Write([]byte(value.String() + "\r\n"))
	}
}
