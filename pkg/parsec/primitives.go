package parsec

// Always constructs a parser which never touches the input and always
// succeeds with x, reported via eok (it consumed nothing).
func Always[T, V any](x V) Parser[T, V] {
	return NewParser[T, V]("always", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, V], _ ErrCont[T], eok Cont[T, V], _ ErrCont[T],
	) Thunk {
		return suspend(func() Thunk { return eok(x, state, m) })
	})
}

// Never constructs a parser which never touches the input and always fails
// with err, reported via eerr.
func Never[T, V any](err ParseError) Parser[T, V] {
	return NewParser[T, V]("never", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, V], _ ErrCont[T], _ Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return suspend(func() Thunk { return eerr(err, state, m) })
	})
}

// Bind sequences p with a parser produced from p's result. This is the
// library's monadic sequencing primitive; nearly every other multi-step
// combinator (Cons, Sequence, the derived family in parsec/lang) reduces to
// it.
//
// Consumption composes: once p has consumed a token, q's own eok/eerr are
// promoted to cok/cerr, because the sequence as a whole has now consumed
// input and can no longer be treated as a candidate for empty-alternation.
// If p succeeded without consuming, q's outcomes pass through unchanged.
func Bind[T, A, V any](p Parser[T, A], f func(A) Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("bind", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			func(a A, s2 *ParserState[T], m2 *Memo[T]) Thunk {
				return suspend(func() Thunk { return f(a).run(s2, m2, cok, cerr, cok, cerr) })
			},
			cerr,
			func(a A, s2 *ParserState[T], m2 *Memo[T]) Thunk {
				return suspend(func() Thunk { return f(a).run(s2, m2, cok, cerr, eok, eerr) })
			},
			eerr,
		)
	})
}

// Binds is the n-ary convenience form of Bind: it runs a fixed sequence of
// value-producing steps, threading each result into the next, and finishes
// with a builder that assembles the collected values. Grammars that would
// otherwise nest Bind calls several levels deep for a single production use
// this instead.
func Binds[T, V any](ps []Parser[T, any], build func([]any) V) Parser[T, V] {
	if len(ps) == 0 {
		return Always[T, V](build(nil))
	}

	return bindsFrom(ps, nil, build)
}

func bindsFrom[T, V any](ps []Parser[T, any], acc []any, build func([]any) V) Parser[T, V] {
	head := ps[0]
	rest := ps[1:]

	return Bind(head, func(v any) Parser[T, V] {
		next := append(append([]any{}, acc...), v)
		if len(rest) == 0 {
			return Always[T, V](build(next))
		}

		return bindsFrom[T, V](rest, next, build)
	})
}

// Token is the fundamental input-consuming primitive: on empty input it
// fails empty via errFn(pos, nil); otherwise it peeks the next token and,
// if pred accepts it, consumes it (cok); if pred rejects it, fails empty
// (eerr) without ever consuming the token.
func Token[T any](pred func(T) bool, errFn func(Position, *T) ParseError) Parser[T, T] {
	return NewParser[T, T]("token", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, T], _ ErrCont[T], _ Cont[T, T], eerr ErrCont[T],
	) Thunk {
		if state.IsEmpty() {
			return suspend(func() Thunk { return eerr(errFn(state.Position(), nil), state, m) })
		}

		tok := state.First()
		if pred(tok) {
			return suspend(func() Thunk { return cok(tok, state.Next(), m) })
		}

		return suspend(func() Thunk { return eerr(errFn(state.Position(), &tok), state, m) })
	})
}

// AnyToken accepts and consumes whatever token is next, failing only at
// end of input.
func AnyToken[T any]() Parser[T, T] {
	return NewParser[T, T]("anyToken", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, T], _ ErrCont[T], _ Cont[T, T], eerr ErrCont[T],
	) Thunk {
		if state.IsEmpty() {
			return suspend(func() Thunk { return eerr(NewExpectError(state.Position(), "any token"), state, m) })
		}

		return suspend(func() Thunk { return cok(state.First(), state.Next(), m) })
	})
}

// Attempt runs p, but rewires a consumed-error outcome into an empty-error
// reported at the state p started from. This is the library's sole
// backtracking primitive: everything else defaults to Parsec's
// non-backtracking commitment (once a parser has consumed input, Either will
// not try an alternative). Wrap p in Attempt to opt back into backtracking
// across it.
//
// Memo entries accumulated while running p are preserved regardless of
// whether p is reinterpreted as having failed empty: they are pure, and
// discarding them would only cost future performance, not correctness.
func Attempt[T, V any](p Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("attempt("+p.name+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			cok,
			func(e ParseError, _ *ParserState[T], m2 *Memo[T]) Thunk {
				return suspend(func() Thunk { return eerr(e, state, m2) })
			},
			eok,
			eerr,
		)
	})
}

// Lookahead runs p and, on any success, reports the pre-call state instead
// of whatever state p reached — so a successful lookahead never consumes
// input. Failures propagate unchanged.
func Lookahead[T, V any](p Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("lookahead("+p.name+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			func(v V, _ *ParserState[T], m2 *Memo[T]) Thunk { return suspend(func() Thunk { return cok(v, state, m2) }) },
			cerr,
			func(v V, _ *ParserState[T], m2 *Memo[T]) Thunk { return suspend(func() Thunk { return eok(v, state, m2) }) },
			eerr,
		)
	})
}

// Either tries p; if p fails without consuming input, tries q at the
// original state, folding the two failures into a MultipleError if q also
// fails empty. Any other outcome of p propagates directly. This is the
// crux of the four-continuation dispatch: p is only ever abandoned in
// favour of q on eerr — a consumed-error commits.
//
// q is run with the memo p produced (mFromP), not the caller's original
// memo, so that memo work performed while exploring the failed first
// alternative is not thrown away just because that alternative didn't pan
// out.
func Either[T, V any](p, q Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("either("+p.name+", "+q.name+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			cok,
			cerr,
			eok,
			func(errP ParseError, _ *ParserState[T], mFromP *Memo[T]) Thunk {
				return suspend(func() Thunk {
					return q.run(state, mFromP,
						cok,
						cerr,
						eok,
						func(errQ ParseError, s2 *ParserState[T], m2 *Memo[T]) Thunk {
							merged := NewMultipleError(state.Position(), []ParseError{errP, errQ})
							return suspend(func() Thunk { return eerr(merged, s2, m2) })
						},
					)
				})
			},
		)
	})
}

// Choice tries each alternative in order, left to right, committing to the
// first one that either succeeds or consumes input before failing. It is
// implemented as a right fold of choicePair, which merges failures into a
// ChoiceError. Each fold step flattens the inner alternatives' errors into
// the new tail, so when all N alternatives fail, building the error copies
// O(N²) entries in total.
//
// Choice() called with zero alternatives is a grammar defect: it panics
// with ParserError immediately, at construction time, rather than waiting
// to be run.
func Choice[T, V any](ps ...Parser[T, V]) Parser[T, V] {
	if len(ps) == 0 {
		panicGrammar("choice: called with no alternatives")
	}

	acc := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		acc = choicePair(ps[i], acc)
	}

	return acc
}

// choicePair is like Either but merges failures into a ChoiceError rather
// than a MultipleError. When q's error is itself a ChoiceError, its errors
// are flattened into a new MultipleError to serve as the tail.
func choicePair[T, V any](p, q Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("choice("+p.name+", "+q.name+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			cok,
			cerr,
			eok,
			func(errP ParseError, _ *ParserState[T], mFromP *Memo[T]) Thunk {
				return suspend(func() Thunk {
					return q.run(state, mFromP,
						cok,
						cerr,
						eok,
						func(errQ ParseError, s2 *ParserState[T], m2 *Memo[T]) Thunk {
							var tail *MultipleError
							if mult, ok := errQ.(*MultipleError); ok {
								tail = mult
							} else if choice, ok := errQ.(*ChoiceError); ok {
								tail = NewMultipleError(choice.Pos(), choice.Errors())
							} else {
								tail = NewMultipleError(errQ.Pos(), []ParseError{errQ})
							}

							merged := NewChoiceError(state.Position(), errP, tail)
							return suspend(func() Thunk { return eerr(merged, s2, m2) })
						},
					)
				})
			},
		)
	})
}

// Expected wraps p so that any error it reports without consuming input is
// replaced with a simple "expected <label>" error, hiding whatever more
// detailed (and often more confusing, deep in a grammar) failure occurred
// underneath.
func Expected[T, V any](label string, p Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("expected("+label+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			cok,
			cerr,
			eok,
			func(_ ParseError, s2 *ParserState[T], m2 *Memo[T]) Thunk {
				return suspend(func() Thunk { return eerr(NewExpectError(state.Position(), label), s2, m2) })
			},
		)
	})
}

// Fail constructs a parser which always fails empty at the current
// position, with msg if given or an UnknownError otherwise.
func Fail[T, V any](msg string) Parser[T, V] {
	return NewParser[T, V]("fail", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, V], _ ErrCont[T], _ Cont[T, V], eerr ErrCont[T],
	) Thunk {
		var err ParseError
		if msg == "" {
			err = NewUnknownError(state.Position())
		} else {
			err = NewExpectError(state.Position(), msg)
		}

		return suspend(func() Thunk { return eerr(err, state, m) })
	})
}

// eofValue is what Eof reports on success: the input has genuinely ended,
// so there is no token to hand back beyond a marker value.
type eofValue struct{}

// EofValue is the sentinel value Eof succeeds with.
var EofValue = eofValue{}

// Eof succeeds, with EofValue, iff the input is exhausted; otherwise it
// fails empty, naming the unexpected leftover token.
func Eof[T any]() Parser[T, eofValue] {
	return NewParser[T, eofValue]("eof", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, eofValue], _ ErrCont[T], eok Cont[T, eofValue], eerr ErrCont[T],
	) Thunk {
		if state.IsEmpty() {
			return suspend(func() Thunk { return eok(EofValue, state, m) })
		}

		err := NewExpectFoundError(state.Position(), "end of input", state.First())

		return suspend(func() Thunk { return eerr(err, state, m) })
	})
}

// Optional runs p; on any success it passes the value through. On empty
// failure it succeeds with the given default instead. A consumed failure
// still propagates: Optional does not backtrack (wrap p in Attempt first if
// that is what's wanted).
func Optional[T, V any](p Parser[T, V], def V) Parser[T, V] {
	return Either(p, Always[T, V](def))
}

// Next runs p then q, discarding p's value and returning q's. This is
// ordinary sequencing when only the second result matters.
func Next[T, A, V any](p Parser[T, A], q Parser[T, V]) Parser[T, V] {
	return Bind(p, func(A) Parser[T, V] { return q })
}

// Extract builds an accessor parser: it succeeds, without consuming input,
// with f applied to the current state.
func Extract[T, V any](f func(*ParserState[T]) V) Parser[T, V] {
	return NewParser[T, V]("extract", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, V], _ ErrCont[T], eok Cont[T, V], _ ErrCont[T],
	) Thunk {
		return suspend(func() Thunk { return eok(f(state), state, m) })
	})
}

// ModifyParserState builds a parser which replaces the current state with
// f(state) and reports that *new* state as its result value — as opposed to
// Extract, which reports a value without ever changing the state. This
// asymmetry (documented in SPEC_FULL.md) is load-bearing: user code composing
// state-accessor parsers with Bind relies on knowing which of the two
// behaviours a given accessor has.
func ModifyParserState[T any](f func(*ParserState[T]) *ParserState[T]) Parser[T, *ParserState[T]] {
	return NewParser[T, *ParserState[T]]("modifyParserState", func(
		state *ParserState[T], m *Memo[T],
		_ Cont[T, *ParserState[T]], _ ErrCont[T], eok Cont[T, *ParserState[T]], _ ErrCont[T],
	) Thunk {
		next := f(state)
		return suspend(func() Thunk { return eok(next, next, m) })
	})
}

// GetParserState reports the current ParserState.
func GetParserState[T any]() Parser[T, *ParserState[T]] {
	return Extract(func(s *ParserState[T]) *ParserState[T] { return s })
}

// SetParserState replaces the current state wholesale.
func SetParserState[T any](next *ParserState[T]) Parser[T, *ParserState[T]] {
	return ModifyParserState(func(*ParserState[T]) *ParserState[T] { return next })
}

// GetState reports the current opaque user state.
func GetState[T any]() Parser[T, any] {
	return Extract(func(s *ParserState[T]) any { return s.UserState() })
}

// SetState replaces the opaque user state, leaving position and input
// untouched.
func SetState[T any](user any) Parser[T, *ParserState[T]] {
	return ModifyParserState(func(s *ParserState[T]) *ParserState[T] { return s.WithUserState(user) })
}

// ModifyState applies f to the current user state and installs the result.
func ModifyState[T any](f func(any) any) Parser[T, *ParserState[T]] {
	return ModifyParserState(func(s *ParserState[T]) *ParserState[T] { return s.WithUserState(f(s.UserState())) })
}

// GetInput reports the current remaining input stream.
func GetInput[T any]() Parser[T, Stream[T]] {
	return Extract(func(s *ParserState[T]) Stream[T] { return s.Input() })
}

// SetInput replaces the remaining input stream.
//
// Routed through ModifyParserState rather than ModifyState: the latter would
// only be able to touch the opaque user state, silently leaving the actual
// input untouched, which is the source bug the redesign in DESIGN.md
// corrects.
func SetInput[T any](input Stream[T]) Parser[T, *ParserState[T]] {
	return ModifyParserState(func(s *ParserState[T]) *ParserState[T] { return s.WithInput(input) })
}

// GetPosition reports the current cursor position.
func GetPosition[T any]() Parser[T, Position] {
	return Extract(func(s *ParserState[T]) Position { return s.Position() })
}

// SetPosition splices pos into the current state, leaving input and user
// state untouched. Position ordinarily only ever advances via Increment on
// token consumption (see ParserState.Next in state.go); this bypasses that,
// so a caller reporting a position unrelated to what Input() would actually
// yield next is left with a state whose position and input have diverged.
// That trade-off is deliberate — reporting positions from an
// out-of-band source (an #include'd file's own line numbers, a token
// pre-scanned by a lexer upstream of this grammar) is exactly the case this
// exists for, and SetParserState/ModifyParserState are always available
// for a grammar that also wants to swap the input tail atomically alongside
// the position.
func SetPosition[T any](pos Position) Parser[T, *ParserState[T]] {
	return ModifyParserState(func(s *ParserState[T]) *ParserState[T] { return s.WithPosition(pos) })
}
