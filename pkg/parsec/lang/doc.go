// Package lang collects the derived combinators every recursive-descent
// grammar eventually reaches for: repetition counts, bracketing, separated
// lists, and left/right-associative operator chains. None of it touches
// parsec's internals — every combinator here is built by composing the
// public primitives in pkg/parsec, the same way application code would.
//
// The SepBy/SepBy1/EndBy/EndBy1/SepEndBy/SepEndBy1 family (sepby_gen.go) is
// generated rather than hand-written: the six functions differ only in
// whether a leading element is required and whether a trailing separator is
// permitted or required, and hand-maintaining six near-identical bodies
// invites exactly the kind of drift a template generator exists to prevent.
// See internal/generator for the source of truth; run `go generate` in this
// package to regenerate sepby_gen.go after editing templates/sepby.go.tmpl.
package lang

//go:generate go run ./internal/generator
