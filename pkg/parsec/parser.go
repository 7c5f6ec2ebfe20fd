package parsec

import "github.com/google/uuid"

// Cont is a success continuation: invoked with the value a parser produced,
// the state reached, and the memo chain to carry forward.
type Cont[T, V any] func(value V, state *ParserState[T], memo *Memo[T]) Thunk

// ErrCont is a failure continuation: invoked with the error a parser
// reported, the state at which it was reported, and the memo chain to carry
// forward.
type ErrCont[T any] func(err ParseError, state *ParserState[T], memo *Memo[T]) Thunk

// body is the continuation-passing implementation of a parser: given a
// state and a memo chain, plus the four continuations for
// consumed-ok/consumed-error/empty-ok/empty-error, it returns a Thunk which,
// once driven through Trampoline, eventually invokes exactly one of them.
type body[T, V any] func(
	state *ParserState[T],
	memo *Memo[T],
	cok Cont[T, V],
	cerr ErrCont[T],
	eok Cont[T, V],
	eerr ErrCont[T],
) Thunk

// Parser is an opaque, immutable parsing rule producing values of type V
// from a stream of T. Two Parser values are never confused by the memo
// table even if built identically, because every call to NewParser mints a
// fresh id: wrapping an existing parser (Expected, Memo, ...) always
// produces a distinct identity from the parser it wraps.
type Parser[T, V any] struct {
	name string
	id   uuid.UUID
	run  body[T, V]
}

// NewParser constructs a parser from its continuation-passing
// implementation, with a fresh, stable id and a diagnostic display name.
func NewParser[T, V any](name string, impl body[T, V]) Parser[T, V] {
	return Parser[T, V]{name: name, id: uuid.New(), run: impl}
}

// Name returns the parser's diagnostic display name.
func (p Parser[T, V]) Name() string { return p.name }

// invoke calls the parser's continuation-passing body. Unexported: outside
// this package, a Parser is driven via Run/Perform/Test, via Invoke, or by
// composing it into a larger parser with the combinators in this package.
func (p Parser[T, V]) invoke(
	state *ParserState[T],
	memo *Memo[T],
	cok Cont[T, V],
	cerr ErrCont[T],
	eok Cont[T, V],
	eerr ErrCont[T],
) Thunk {
	return p.run(state, memo, cok, cerr, eok, eerr)
}

// Invoke dispatches p's continuation-passing body directly, for packages
// outside parsec (pkg/parsec/trace, say) that need to build a combinator
// wrapping an arbitrary Parser without reimplementing its internals. Inside
// this package, prefer p.run/p.invoke; Invoke exists for external callers
// that only have Parser's exported surface to work with.
func Invoke[T, V any](
	p Parser[T, V],
	state *ParserState[T],
	memo *Memo[T],
	cok Cont[T, V],
	cerr ErrCont[T],
	eok Cont[T, V],
	eerr ErrCont[T],
) Thunk {
	return p.invoke(state, memo, cok, cerr, eok, eerr)
}

// Rec supplies a parser under construction with a reference to itself, for
// building self-referential (recursive) grammars. def is invoked exactly
// once, at construction time, with a handle that only becomes valid once
// construction completes; calling the handle during construction (rather
// than lazily, while parsing) is a programming error and will parse against
// a not-yet-initialised parser.
//
// This is implemented with a single-assignment indirection cell rather than
// a self-referential closure, so the cell can be written exactly once before
// any parse runs and never touched again — there is no cyclic ownership to
// reason about, just one forward reference resolved before first use.
func Rec[T, V any](def func(self Parser[T, V]) Parser[T, V]) Parser[T, V] {
	cell := new(Parser[T, V])

	indirect := NewParser[T, V]("rec", func(
		state *ParserState[T],
		memo *Memo[T],
		cok Cont[T, V],
		cerr ErrCont[T],
		eok Cont[T, V],
		eerr ErrCont[T],
	) Thunk {
		return suspend(func() Thunk {
			return cell.run(state, memo, cok, cerr, eok, eerr)
		})
	})

	*cell = def(indirect)

	return *cell
}

// RecParser is a convenience wrapper combining NewParser's naming with Rec's
// fixed-point construction, for the common case of a named recursive rule.
func RecParser[T, V any](name string, body func(self Parser[T, V]) Parser[T, V]) Parser[T, V] {
	p := Rec(body)
	p.name = name

	return p
}
