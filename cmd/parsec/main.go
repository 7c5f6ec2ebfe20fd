// Command parsec is a small toolbox around the sexp grammar built on top
// of pkg/parsec: parse a file, batch-process a directory of them, benchmark
// a grammar, or poke at it interactively from a REPL.
package main

func main() {
	Execute()
}
