package parsec

// Cons runs p then q, consing p's value onto the front of q's result
// stream. Together with Eager this is how grammars build up a list-shaped
// result without paying for slice growth at every step: the intermediate
// value is a lazy Stream[V], and only a caller that actually wants a slice
// (Eager) pays to walk it.
func Cons[T, V any](p Parser[T, V], q Parser[T, Stream[V]]) Parser[T, Stream[V]] {
	return Bind(p, func(v V) Parser[T, Stream[V]] {
		return Bind(q, func(rest Stream[V]) Parser[T, Stream[V]] {
			return Always[T, Stream[V]](ConsStream(v, rest))
		})
	})
}

// Append runs p then q, both producing result streams, and lazily
// concatenates them.
func Append[T, V any](p, q Parser[T, Stream[V]]) Parser[T, Stream[V]] {
	return Bind(p, func(a Stream[V]) Parser[T, Stream[V]] {
		return Bind(q, func(b Stream[V]) Parser[T, Stream[V]] {
			return Always[T, Stream[V]](AppendStream(a, b))
		})
	})
}

// Eager drains p's lazily-built result stream into a concrete slice. Use
// this at the boundary where a grammar's internal Stream-of-results needs
// to become an ordinary []V for the rest of the program.
func Eager[T, V any](p Parser[T, Stream[V]]) Parser[T, []V] {
	return Bind(p, func(s Stream[V]) Parser[T, []V] {
		return Always[T, []V](ToSlice(s))
	})
}

// Many runs p zero or more times, collecting the results as a lazy result
// stream, and stops at the first position where p fails without consuming.
// A p that fails having consumed input is a hard error for the whole Many,
// per the library's default non-backtracking commitment.
//
// Many panics with ParserError, at parse time, if p ever succeeds without
// consuming: an empty-succeeding p iterated by Many would otherwise loop
// forever, and that is a grammar defect rather than a recoverable parse
// failure.
func Many[T, V any](p Parser[T, V]) Parser[T, Stream[V]] {
	return NewParser[T, Stream[V]]("many("+p.name+")", func(
		state *ParserState[T], m *Memo[T],
		cok Cont[T, Stream[V]], cerr ErrCont[T], eok Cont[T, Stream[V]], _ ErrCont[T],
	) Thunk {
		var loop func(s *ParserState[T], mm *Memo[T], acc []V) Thunk

		loop = func(s *ParserState[T], mm *Memo[T], acc []V) Thunk {
			return p.run(s, mm,
				func(v V, s2 *ParserState[T], m2 *Memo[T]) Thunk {
					return suspend(func() Thunk { return loop(s2, m2, append(acc, v)) })
				},
				func(e ParseError, s2 *ParserState[T], m2 *Memo[T]) Thunk {
					return suspend(func() Thunk { return cerr(e, s2, m2) })
				},
				func(V, *ParserState[T], *Memo[T]) Thunk {
					panicGrammar("many: applied to a parser (%s) that can succeed without consuming input", p.name)
					return nil
				},
				func(_ ParseError, s2 *ParserState[T], m2 *Memo[T]) Thunk {
					result := FromSlice(acc)
					if len(acc) == 0 {
						return suspend(func() Thunk { return eok(result, s2, m2) })
					}

					return suspend(func() Thunk { return cok(result, s2, m2) })
				},
			)
		}

		return loop(state, m, nil)
	})
}

// Many1 runs p one or more times: it fails (empty, since the first attempt
// consumed nothing) if p does not succeed at least once.
func Many1[T, V any](p Parser[T, V]) Parser[T, Stream[V]] {
	return Cons(p, Many(p))
}

// Sequence runs each parser in ps in order, threading state and memo
// through all of them, and collects their results as a result stream (see
// Eager to get a slice instead).
func Sequence[T, V any](ps ...Parser[T, V]) Parser[T, Stream[V]] {
	if len(ps) == 0 {
		return Always[T, Stream[V]](End[V]())
	}

	return Cons(ps[0], Sequence(ps[1:]...))
}

// Character matches a single token equal to c.
func Character[T comparable](c T) Parser[T, T] {
	return Token(func(t T) bool { return t == c }, func(pos Position, found *T) ParseError {
		if found == nil {
			return NewExpectError(pos, "a token")
		}

		return NewExpectFoundError(pos, "a token", *found)
	})
}

// String matches a fixed sequence of tokens in order, consuming as many of
// them as match before failing. Grounded on the common Parsec idiom of
// building word-level matchers out of Character via Sequence.
func String[T comparable](ts []T) Parser[T, []T] {
	if len(ts) == 0 {
		return Always[T, []T](nil)
	}

	ps := make([]Parser[T, T], len(ts))
	for i, t := range ts {
		ps[i] = Character(t)
	}

	return Eager(Sequence(ps...))
}
