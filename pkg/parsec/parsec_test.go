package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
)

func TestAlwaysNeverConsumeNothing(t *testing.T) {
	v, err := parsec.Run(parsec.Always[rune, int](42), []rune("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = parsec.Run(parsec.Never[rune, int](parsec.NewUnknownError(parsec.StartPosition())), []rune("abc"))
	assert.Error(t, err)
}

func digit() parsec.Parser[rune, rune] {
	return parsec.Token(func(r rune) bool { return r >= '0' && r <= '9' }, func(pos parsec.Position, found *rune) parsec.ParseError {
		return parsec.NewExpectError(pos, "a digit")
	})
}

func letter() parsec.Parser[rune, rune] {
	return parsec.Token(func(r rune) bool { return r >= 'a' && r <= 'z' }, func(pos parsec.Position, found *rune) parsec.ParseError {
		return parsec.NewExpectError(pos, "a letter")
	})
}

func TestTokenConsumesExactlyOne(t *testing.T) {
	v, err := parsec.Run(digit(), []rune("7"))
	assert.NoError(t, err)
	assert.Equal(t, '7', v)

	_, err = parsec.Run(digit(), []rune("a"))
	assert.Error(t, err)

	_, err = parsec.Run(digit(), []rune(""))
	assert.Error(t, err)
}

func TestEitherPrefersFirstSuccess(t *testing.T) {
	p := parsec.Either(digit(), letter())

	v, err := parsec.Run(p, []rune("a"))
	assert.NoError(t, err)
	assert.Equal(t, 'a', v)
}

func TestEitherDoesNotBacktrackPastConsumedInput(t *testing.T) {
	// p1 consumes a digit then fails; Either must not try p2 since p1
	// consumed input before failing.
	p1 := parsec.Next(digit(), parsec.Fail[rune, rune]("boom"))
	p2 := parsec.Always[rune, rune]('x')

	_, err := parsec.Run(parsec.Either(p1, p2), []rune("1"))
	assert.Error(t, err, "Either must commit once an alternative has consumed input")
}

func TestAttemptEnablesBacktracking(t *testing.T) {
	p1 := parsec.Attempt(parsec.Next(letter(), parsec.Fail[rune, rune]("boom")))
	p2 := letter()

	v, err := parsec.Run(parsec.Either(p1, p2), []rune("a"))
	assert.NoError(t, err)
	assert.Equal(t, 'a', v)
}

func TestManyCollectsZeroOrMore(t *testing.T) {
	p := parsec.Eager(parsec.Many(digit()))

	v, err := parsec.Run(p, []rune("123a"))
	assert.NoError(t, err)
	assert.Equal(t, []rune{'1', '2', '3'}, v)

	v, err = parsec.Run(p, []rune("a"))
	assert.NoError(t, err)
	assert.Empty(t, v)
}

func TestMany1RequiresAtLeastOne(t *testing.T) {
	p := parsec.Eager(parsec.Many1(digit()))

	_, err := parsec.Run(p, []rune("a"))
	assert.Error(t, err)
}

// Many raises its ParserError as a panic; Run recovers it at the runner
// boundary and returns it as a *ParserError.
func TestManyPanicsOnEmptySucceedingParser(t *testing.T) {
	p := parsec.Eager(parsec.Many(parsec.Always[rune, rune]('x')))
	_, err := parsec.Run(p, []rune("abc"))

	var grammarErr *parsec.ParserError
	assert.ErrorAs(t, err, &grammarErr)
}

func TestChoiceCombinesManyAlternatives(t *testing.T) {
	p := parsec.Choice(
		parsec.Expected[rune, rune]("digit", digit()),
		parsec.Expected[rune, rune]("letter", letter()),
		parsec.Expected[rune, rune]("space", parsec.Token(func(r rune) bool { return r == ' ' }, func(pos parsec.Position, found *rune) parsec.ParseError {
			return parsec.NewExpectError(pos, "space")
		})),
	)

	_, err := parsec.Run(p, []rune("!"))
	assert.Error(t, err)
}

func TestEofSucceedsOnlyAtEndOfInput(t *testing.T) {
	assert.True(t, parsec.Test(parsec.Eof[rune](), parsec.FromString("")))
	assert.False(t, parsec.Test(parsec.Eof[rune](), parsec.FromString("x")))
}

func TestRecBuildsSelfReferentialGrammar(t *testing.T) {
	// balanced parens: S -> '(' S ')' S | epsilon
	var balanced parsec.Parser[rune, int]

	balanced = parsec.RecParser[rune, int]("balanced", func(self parsec.Parser[rune, int]) parsec.Parser[rune, int] {
		open := parsec.Character('(')
		close_ := parsec.Character(')')

		nested := parsec.Bind(open, func(rune) parsec.Parser[rune, int] {
			return parsec.Bind(self, func(inner int) parsec.Parser[rune, int] {
				return parsec.Bind(close_, func(rune) parsec.Parser[rune, int] {
					return parsec.Bind(self, func(after int) parsec.Parser[rune, int] {
						return parsec.Always[rune, int](1 + inner + after)
					})
				})
			})
		})

		return parsec.Optional(nested, 0)
	})

	_, _, err := parsec.RunState(balanced, parsec.NewParserState(parsec.FromString("(()())"), nil))
	assert.NoError(t, err)
}
