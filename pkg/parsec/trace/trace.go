// Package trace provides an opt-in execution tracer for debugging
// grammars: a stack of the parsers currently "in flight" (in the sense of
// having been entered but not yet resolved to a continuation call), dumped
// via go-spew on request (Dump). It is never wired into the hot path by default — enabling it
// costs an allocation and a log call per Enter/Exit — and reaches no
// further than pkg/parsec's public API.
package trace

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/sirupsen/logrus"

	"github.com/consensys/go-parsec/pkg/parsec"
)

// Frame records one parser's entry: its display name and the position it
// was entered at.
type Frame struct {
	Name  string
	Index int
}

// Tracer accumulates a call stack of Frames as a grammar runs. It is not
// safe for concurrent use by multiple goroutines tracing the same parse
// (parses are inherently single-threaded, per the concurrency model), but a
// Tracer instance may be reused across independent, sequential parses.
type Tracer struct {
	stack *arraystack.Stack[Frame]
	log   *logrus.Entry
	depth int
}

// New constructs a Tracer that logs through log.
func New(log *logrus.Entry) *Tracer {
	return &Tracer{stack: arraystack.New[Frame](), log: log}
}

// Enter records that a parser named name has been entered at position
// index.
func (t *Tracer) Enter(name string, index int) {
	t.stack.Push(Frame{name, index})
	t.depth++

	t.log.WithFields(logrus.Fields{"depth": t.depth, "parser": name, "pos": index}).Trace("enter")
}

// Exit pops the most recently entered frame, reporting whether the parser
// it belonged to consumed input and succeeded.
func (t *Tracer) Exit(consumed, ok bool) {
	frame, present := t.stack.Pop()
	if !present {
		t.log.Warn("trace: Exit called with no matching Enter")
		return
	}

	t.depth--

	t.log.WithFields(logrus.Fields{
		"depth":    t.depth,
		"parser":   frame.Name,
		"pos":      frame.Index,
		"consumed": consumed,
		"ok":       ok,
	}).Trace("exit")
}

// Depth reports how many frames are currently on the stack.
func (t *Tracer) Depth() int {
	return t.depth
}

// Dump renders the current stack, deepest frame last, via go-spew — useful
// after a panic or a ParserError has cut a parse short, to see exactly which
// grammar productions were still active.
func (t *Tracer) Dump() string {
	frames := t.stack.Values()

	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}

	return spew.Sdump(frames)
}

// Wrap instruments p so that entering its body calls t.Enter and leaving it
// through any of the four continuations calls t.Exit, giving one frame per
// wrapped parser. Wrapping only the grammar's root produces one Enter/Exit
// pair spanning the whole parse; wrapping individual named productions
// (each RecParser or NewParser call in a grammar) as well nests a frame per
// production, since a wrapped parser's own continuations are what get
// threaded down into whatever it delegates to. p's own name is used as the
// frame name, so naming a parser is what makes it show up distinctly in a
// Dump.
func Wrap[T, V any](t *Tracer, p parsec.Parser[T, V]) parsec.Parser[T, V] {
	return parsec.NewParser(p.Name(), func(
		state *parsec.ParserState[T],
		memo *parsec.Memo[T],
		cok parsec.Cont[T, V],
		cerr parsec.ErrCont[T],
		eok parsec.Cont[T, V],
		eerr parsec.ErrCont[T],
	) parsec.Thunk {
		t.Enter(p.Name(), state.Position().Index())

		tracedCok := func(v V, s *parsec.ParserState[T], m *parsec.Memo[T]) parsec.Thunk {
			t.Exit(true, true)
			return cok(v, s, m)
		}
		tracedCerr := func(err parsec.ParseError, s *parsec.ParserState[T], m *parsec.Memo[T]) parsec.Thunk {
			t.Exit(true, false)
			return cerr(err, s, m)
		}
		tracedEok := func(v V, s *parsec.ParserState[T], m *parsec.Memo[T]) parsec.Thunk {
			t.Exit(false, true)
			return eok(v, s, m)
		}
		tracedEerr := func(err parsec.ParseError, s *parsec.ParserState[T], m *parsec.Memo[T]) parsec.Thunk {
			t.Exit(false, false)
			return eerr(err, s, m)
		}

		return parsec.Invoke(p, state, memo, tracedCok, tracedCerr, tracedEok, tracedEerr)
	})
}
