package parsec

import "fmt"

// Result is what driving a parser to completion produces: either a value
// and the state reached, or an error and the state at which it was
// reported. Exposing both fields (rather than the usual Go (V, error) pair)
// lets callers that care — a REPL reporting a column, a batch runner
// resuming after a partial parse — recover position information Run and
// Test intentionally throw away.
type Result[T, V any] struct {
	Value    V
	State    *ParserState[T]
	Err      ParseError
	Consumed bool
}

// Ok reports whether the parse succeeded.
func (r Result[T, V]) Ok() bool { return r.Err == nil }

// Exec drives p to completion from state, with a fresh empty memo chain,
// trampolining the continuation-passing machinery to termination.
//
// This is the single choke point every other entry point in this file
// funnels through.
func Exec[T, V any](p Parser[T, V], state *ParserState[T]) Result[T, V] {
	var result Result[T, V]

	thunk := p.run(state, NewMemo[T](),
		func(v V, s *ParserState[T], _ *Memo[T]) Thunk {
			result = Result[T, V]{Value: v, State: s, Consumed: true}
			return nil
		},
		func(e ParseError, s *ParserState[T], _ *Memo[T]) Thunk {
			result = Result[T, V]{Err: e, State: s, Consumed: true}
			return nil
		},
		func(v V, s *ParserState[T], _ *Memo[T]) Thunk {
			result = Result[T, V]{Value: v, State: s, Consumed: false}
			return nil
		},
		func(e ParseError, s *ParserState[T], _ *Memo[T]) Thunk {
			result = Result[T, V]{Err: e, State: s, Consumed: false}
			return nil
		},
	)

	Trampoline(thunk)

	return result
}

// Run drives p over input, constructing the initial Stream via FromSlice
// and starting with nil user state. Pass a pre-built Stream (one from
// FromRuneReader, say, or one already threaded through earlier parsing)
// to RunStream instead, which skips this conversion.
func Run[T, V any](p Parser[T, V], input []T) (V, error) {
	return RunStream(p, FromSlice(input), nil)
}

// RunStream is Run over an already-constructed Stream, with an explicit
// initial user state.
func RunStream[T, V any](p Parser[T, V], input Stream[T], user any) (V, error) {
	v, _, err := RunState(p, NewParserState(input, user))
	return v, err
}

// RunState drives p from an explicitly constructed initial state, returning
// the state reached alongside the value or error. This is the form to reach
// for when the caller wants to resume parsing (a REPL feeding one line at a
// time) or needs the final position for diagnostics.
//
// A ParserError raised by a malformed grammar (Choice with no alternatives,
// Many applied to an empty-succeeding parser, ...) is recovered here and
// returned as an ordinary error rather than left to unwind past Run's
// caller as a panic: it is still a grammar defect, not a parse failure, but
// callers driving user-supplied grammars (cmd/parsec's batch runner, the
// LSP server) need to be able to report it and carry on rather than crash.
func RunState[T, V any](p Parser[T, V], state *ParserState[T]) (v V, final *ParserState[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParserError)
			if !ok {
				panic(r)
			}

			final = state
			err = pe
		}
	}()

	r := Exec(p, state)
	if !r.Ok() {
		var zero V
		return zero, r.State, wrapParseError(r.Err)
	}

	return r.Value, r.State, nil
}

// Perform runs p purely for effect, discarding any value it produces and
// reporting only whether it succeeded.
func Perform[T, V any](p Parser[T, V], input Stream[T]) error {
	_, err := RunStream(p, input, nil)
	return err
}

// Test reports whether p succeeds over input, without exposing the value or
// the error detail. This is the shape most grammar unit tests want: "does
// this production accept this input".
func Test[T, V any](p Parser[T, V], input Stream[T]) bool {
	return TestState(p, NewParserState(input, nil))
}

// TestState is Test starting from a caller-supplied state.
func TestState[T, V any](p Parser[T, V], state *ParserState[T]) bool {
	return Exec(p, state).Ok()
}

// TestStream is Test with an explicit user state.
func TestStream[T, V any](p Parser[T, V], input Stream[T], user any) bool {
	return TestState(p, NewParserState(input, user))
}

// RunMany repeatedly parses p from the front of input, returning a lazy
// stream of results: First is the outcome of the current application of p,
// and pulling Rest resumes parsing from the state that application reached.
// Nothing beyond the current application is ever computed eagerly, so this
// can drive an unbounded (or reader-backed) input without materializing the
// full result set — the whole point of exposing it as a Stream rather than
// a slice. The stream ends once the input is exhausted, or right after the
// first failing application of p, whose Result carries the reported error;
// check Result.Ok() while
// consuming rather than assuming every element succeeded.
func RunMany[T, V any](p Parser[T, V], input Stream[T]) Stream[Result[T, V]] {
	return RunManyStream(p, input, nil)
}

// RunManyStream is RunMany with an explicit initial user state.
func RunManyStream[T, V any](p Parser[T, V], input Stream[T], user any) Stream[Result[T, V]] {
	return RunManyState(p, NewParserState(input, user))
}

// RunManyState is RunMany starting from a caller-supplied state.
func RunManyState[T, V any](p Parser[T, V], state *ParserState[T]) Stream[Result[T, V]] {
	if state.IsEmpty() {
		return End[Result[T, V]]()
	}

	r := Exec(p, state)

	if !r.Ok() {
		return ConsStream(r, End[Result[T, V]]())
	}

	return MemoStream(r, func() Stream[Result[T, V]] {
		return RunManyState(p, r.State)
	})
}

// wrapParseError adapts a ParseError into a plain error carrying position
// context in its message, so that callers using the (V, error) idiom still
// see where a failure occurred without having to type-assert back to
// ParseError.
func wrapParseError(e ParseError) error {
	if e == nil {
		return nil
	}

	return fmt.Errorf("parse error at offset %d: %w", e.Pos().Index(), e)
}
