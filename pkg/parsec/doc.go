// Package parsec implements a combinator-style parsing engine over a generic
// input stream.  Parsers are built up from a small set of primitives
// (Always, Never, Bind, Token, Attempt, Either, Many, ...) using ordinary Go
// function composition, and are executed by a trampolined,
// continuation-passing interpreter which never grows the native call stack
// beyond a small constant depth, regardless of the size of the input or the
// nesting of the grammar.
//
// The evaluation model follows Parsec's four-continuation calling
// convention: every parser step reports one of consumed-ok, consumed-error,
// empty-ok or empty-error, which is what gives alternation (Either, Choice)
// its default non-backtracking commitment semantics.  Wrap a parser in
// Attempt to opt back into backtracking across it.
package parsec
