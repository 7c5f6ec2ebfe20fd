package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
)

// TestMemoIsObservationallyTransparent locks in property 8: wrapping a
// parser in Memo never changes what it parses or the error it reports,
// only how many times its body actually runs.
func TestMemoIsObservationallyTransparent(t *testing.T) {
	raw := digit()
	memoized := parsec.Memo(raw)

	for _, input := range []string{"7", "a", ""} {
		v1, err1 := parsec.Run(raw, []rune(input))
		v2, err2 := parsec.Run(memoized, []rune(input))

		assert.Equal(t, v1, v2)
		assert.Equal(t, err1 == nil, err2 == nil)
	}
}

// TestMemoReplaysWithoutRerunning counts invocations of the wrapped body to
// confirm a second visit to the same (parser, state) pair is served from
// the memo chain rather than re-executing p.
func TestMemoReplaysWithoutRerunning(t *testing.T) {
	calls := 0

	counted := parsec.NewParser[rune, rune]("counted", func(
		state *parsec.ParserState[rune], m *parsec.Memo[rune],
		cok parsec.Cont[rune, rune], _ parsec.ErrCont[rune], _ parsec.Cont[rune, rune], eerr parsec.ErrCont[rune],
	) parsec.Thunk {
		calls++

		if state.IsEmpty() || state.First() != 'x' {
			return func() parsec.Thunk { return eerr(parsec.NewExpectError(state.Position(), "x"), state, m) }
		}

		return func() parsec.Thunk { return cok('x', state.Next(), m) }
	})

	memoized := parsec.Memo(counted)

	// Bind the same state into two branches so memoized is invoked twice at
	// an identical position.
	twice := parsec.Bind(parsec.Lookahead(memoized), func(rune) parsec.Parser[rune, rune] {
		return memoized
	})

	v, err := parsec.Run(twice, []rune("x"))
	assert.NoError(t, err)
	assert.Equal(t, 'x', v)
	assert.Equal(t, 1, calls, "second visit to the same (parser, state) pair should replay, not re-run")
}

// TestMemoEmptyErrorAsymmetry exercises the documented peerr asymmetry: a
// memoized parser that fails empty at some state still resumes correctly
// (with the same error) if that same (parser, state) pair is visited a
// second time via a different call path, even though the live memo chain
// used for the two visits is not the same chain the first failure actually
// produced. This is the behaviour DESIGN.md records as preserved rather
// than "fixed".
func TestMemoEmptyErrorAsymmetry(t *testing.T) {
	failing := parsec.Memo(digit())

	// First: run failing directly.
	_, err1 := parsec.Run(failing, []rune("a"))
	assert.Error(t, err1)

	// Second: run it again from a fresh top-level parse (a distinct memo
	// chain each time) — the point being that Memo's asymmetric branch
	// concerns replay *within* a single parse, not across separate Run
	// calls, which start from an empty chain every time.
	_, err2 := parsec.Run(failing, []rune("a"))
	assert.Error(t, err2)

	// Within a single parse, force two visits to the same failing state
	// via Either, whose second alternative re-runs failing at the state the
	// first one failed empty at, and confirm the second visit reports the
	// identical error rather than diverging.
	twice := parsec.Either(failing, failing)

	_, err3 := parsec.Run(twice, []rune("a"))

	var multi *parsec.MultipleError
	if assert.ErrorAs(t, err3, &multi) {
		errs := multi.Errors()
		assert.Len(t, errs, 2)
		assert.Same(t, errs[0], errs[1])
	}
}

func TestBacktrackDiscardsMemoButNotResult(t *testing.T) {
	p := parsec.Backtrack(parsec.Memo(digit()))

	v, err := parsec.Run(p, []rune("7"))
	assert.NoError(t, err)
	assert.Equal(t, '7', v)
}
