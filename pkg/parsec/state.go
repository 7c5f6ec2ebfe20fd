package parsec

// ParserState is the immutable cursor threaded through a parse: the
// remaining input, the current position, and whatever opaque user state the
// grammar has chosen to carry along (symbol tables, indentation stacks,
// whatever). Every transition produces a new ParserState; nothing here is
// ever mutated once observed by a caller, with the single exception of the
// next-state cache described below.
type ParserState[T any] struct {
	input Stream[T]
	pos   Position
	user  any

	// next caches the result of Next(), so that repeatedly consuming the
	// same token from the same state returns the identical successor
	// object. This gives memo-key comparisons a cheap identity fast path
	// and, more importantly, means a stream backed by an io.RuneReader is
	// never read twice for the same position no matter how many times
	// backtracking revisits it.
	next *ParserState[T]
}

// NewParserState constructs the initial state for a parse over input,
// carrying the given user state.
func NewParserState[T any](input Stream[T], user any) *ParserState[T] {
	return &ParserState[T]{input: input, pos: StartPosition(), user: user}
}

// Input returns the remaining input stream.
func (s *ParserState[T]) Input() Stream[T] {
	return s.input
}

// Position returns the current cursor position.
func (s *ParserState[T]) Position() Position {
	return s.pos
}

// UserState returns the opaque user-supplied state.
func (s *ParserState[T]) UserState() any {
	return s.user
}

// IsEmpty reports whether there is no more input left to consume.
func (s *ParserState[T]) IsEmpty() bool {
	return s.input.IsEmpty()
}

// First peeks the next token without consuming it. Only valid when
// IsEmpty() is false.
func (s *ParserState[T]) First() T {
	return s.input.First()
}

// Next returns the state reached by consuming exactly one token. The result
// is cached on s so that repeated calls are idempotent and cheap.
func (s *ParserState[T]) Next() *ParserState[T] {
	if s.next == nil {
		tok := s.input.First()
		s.next = &ParserState[T]{
			input: s.input.Rest(),
			pos:   Increment(s.pos, tok),
			user:  s.user,
		}
	}

	return s.next
}

// WithUserState returns a state identical to s but carrying a different user
// state. Position and input are unaffected.
func (s *ParserState[T]) WithUserState(user any) *ParserState[T] {
	return &ParserState[T]{input: s.input, pos: s.pos, user: user}
}

// WithInput returns a state identical to s but reading from a different
// input stream, leaving position and user state untouched.
//
// This exists so SetInput can be implemented via ModifyParserState (as
// required by the redesigned behaviour in DESIGN.md) rather than via
// ModifyState, which would silently clobber the user state instead.
func (s *ParserState[T]) WithInput(input Stream[T]) *ParserState[T] {
	return &ParserState[T]{input: input, pos: s.pos, user: s.user}
}

// WithPosition returns a state identical to s but reporting a different
// cursor position, leaving input and user state untouched. Splicing in a
// position inconsistent with the actual input tail (as reported by error
// messages, say) is the caller's responsibility: nothing here re-derives pos
// from input, the way Next does via Increment.
func (s *ParserState[T]) WithPosition(pos Position) *ParserState[T] {
	return &ParserState[T]{input: s.input, pos: pos, user: s.user}
}

// Eq reports whether two states are equal for memoization purposes: purely
// by position. Input tails are expected to be consistent with position, and
// user state is deliberately excluded from identity.
func (s *ParserState[T]) Eq(other *ParserState[T]) bool {
	return s.pos.Equal(other.pos)
}
