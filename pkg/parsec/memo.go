package parsec

import "github.com/google/uuid"

// outcomeKind tags which of the four continuations a memo cell records.
type outcomeKind uint8

const (
	kindConsumedOK outcomeKind = iota
	kindConsumedErr
	kindEmptyOK
	kindEmptyErr
)

// MemoCell is one immutable link in the memo chain: it binds a
// (parser id, state) key to a recorded outcome. The chain is threaded
// through ParserState-adjacent calls as part of the Memo value itself,
// never as a side table, so that backtracking naturally discards or
// preserves entries along with whichever Memo value a combinator chooses to
// carry forward.
type MemoCell[T any] struct {
	id   uuid.UUID
	key  *ParserState[T]
	kind outcomeKind

	value any
	err   ParseError

	resultState *ParserState[T]
	resultMemo  *Memo[T]

	next *MemoCell[T]
}

// Memo is a singly-linked chain of MemoCells, most-recently-added first.
type Memo[T any] struct {
	head *MemoCell[T]
}

// NewMemo returns an empty memo chain.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{}
}

// prepend returns a new Memo with cell as its head, linked onto m.
func (m *Memo[T]) prepend(cell *MemoCell[T]) *Memo[T] {
	cell.next = m.head
	return &Memo[T]{head: cell}
}

// lookup scans the chain for a cell keyed by (id, state), where state
// equality is ParserState.Eq (position equality).
func (m *Memo[T]) lookup(id uuid.UUID, state *ParserState[T]) (*MemoCell[T], bool) {
	for c := m.head; c != nil; c = c.next {
		if c.id == id && c.key.Eq(state) {
			return c, true
		}
	}

	return nil, false
}

// replay re-enacts a recorded outcome through the caller's own
// continuations, standing in for whatever p originally did at this state
// without re-running its body.
func replay[T, V any](cell *MemoCell[T], cok Cont[T, V], cerr ErrCont[T], eok Cont[T, V], eerr ErrCont[T]) Thunk {
	switch cell.kind {
	case kindConsumedOK:
		return suspend(func() Thunk { return cok(cell.value.(V), cell.resultState, cell.resultMemo) })
	case kindConsumedErr:
		return suspend(func() Thunk { return cerr(cell.err, cell.resultState, cell.resultMemo) })
	case kindEmptyOK:
		return suspend(func() Thunk { return eok(cell.value.(V), cell.resultState, cell.resultMemo) })
	default: // kindEmptyErr
		return suspend(func() Thunk { return eerr(cell.err, cell.resultState, cell.resultMemo) })
	}
}

// Memo wraps p so that repeated visits to the same (parser, state) pair
// within one parse replay the first outcome instead of re-running p's body.
//
// The three "healthy" branches (consumed-ok, consumed-error, empty-ok)
// record their cell onto pm, the memo p itself produced, and report pm
// onward unchanged — the new cell for (id, state) is simply the newest
// addition to exactly the chain that resulted from running p.
//
// The empty-error branch is the deliberately-preserved asymmetry flagged as
// an open question in DESIGN.md: the cell is instead prepended onto m, the
// memo chain from *before* p ran, discarding whatever entries p accumulated
// internally while still failing — yet the resumer stored in that cell
// replays with pm, the very memo it just discarded from the live chain. A
// second visit to this exact (parser, state) pair therefore sees a memo
// chain richer than the one produced by the first, non-memoized failure.
// This is exercised deliberately by memo_test.go rather than "fixed" to the
// symmetric form, per the resolution recorded in DESIGN.md.
func Memo[T, V any](p Parser[T, V]) Parser[T, V] {
	id := p.id
	name := "memo(" + p.name + ")"

	q := NewParser[T, V](name, func(
		state *ParserState[T],
		m *Memo[T],
		cok Cont[T, V],
		cerr ErrCont[T],
		eok Cont[T, V],
		eerr ErrCont[T],
	) Thunk {
		if cell, ok := m.lookup(id, state); ok {
			return replay[T, V](cell, cok, cerr, eok, eerr)
		}

		return p.run(state, m,
			func(v V, s2 *ParserState[T], pm *Memo[T]) Thunk {
				nm := pm.prepend(&MemoCell[T]{id: id, key: state, kind: kindConsumedOK, value: v, resultState: s2, resultMemo: pm})
				return suspend(func() Thunk { return cok(v, s2, nm) })
			},
			func(e ParseError, s2 *ParserState[T], pm *Memo[T]) Thunk {
				nm := pm.prepend(&MemoCell[T]{id: id, key: state, kind: kindConsumedErr, err: e, resultState: s2, resultMemo: pm})
				return suspend(func() Thunk { return cerr(e, s2, nm) })
			},
			func(v V, s2 *ParserState[T], pm *Memo[T]) Thunk {
				nm := pm.prepend(&MemoCell[T]{id: id, key: state, kind: kindEmptyOK, value: v, resultState: s2, resultMemo: pm})
				return suspend(func() Thunk { return eok(v, s2, nm) })
			},
			func(e ParseError, s2 *ParserState[T], pm *Memo[T]) Thunk {
				nm := m.prepend(&MemoCell[T]{id: id, key: state, kind: kindEmptyErr, err: e, resultState: s2, resultMemo: pm})
				return suspend(func() Thunk { return eerr(e, s2, nm) })
			},
		)
	})

	return q
}

// Backtrack runs p but discards any memo entries it accumulates: all four of
// p's continuations are rewired to forward the caller's original memo
// instead of whatever p produced. Use this around a speculative branch whose
// memo work should not leak into the surrounding parse.
func Backtrack[T, V any](p Parser[T, V]) Parser[T, V] {
	return NewParser[T, V]("backtrack("+p.name+")", func(
		state *ParserState[T],
		m *Memo[T],
		cok Cont[T, V],
		cerr ErrCont[T],
		eok Cont[T, V],
		eerr ErrCont[T],
	) Thunk {
		return p.run(state, m,
			func(v V, s2 *ParserState[T], _ *Memo[T]) Thunk { return cok(v, s2, m) },
			func(e ParseError, s2 *ParserState[T], _ *Memo[T]) Thunk { return cerr(e, s2, m) },
			func(v V, s2 *ParserState[T], _ *Memo[T]) Thunk { return eok(v, s2, m) },
			func(e ParseError, s2 *ParserState[T], _ *Memo[T]) Thunk { return eerr(e, s2, m) },
		)
	})
}
