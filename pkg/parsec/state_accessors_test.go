package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
)

func TestGetSetStateRoundTrips(t *testing.T) {
	p := parsec.Bind(parsec.SetState[rune]("hello"), func(*parsec.ParserState[rune]) parsec.Parser[rune, any] {
		return parsec.GetState[rune]()
	})

	v, err := parsec.Run(p, []rune("abc"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestSetInputReplacesRemainingStream(t *testing.T) {
	p := parsec.Bind(parsec.SetInput[rune](parsec.FromString("xyz")), func(*parsec.ParserState[rune]) parsec.Parser[rune, rune] {
		return parsec.Character('x')
	})

	v, err := parsec.Run(p, []rune("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 'x', v)
}

// TestSetPositionSplicesAnArbitraryPosition confirms SetPosition changes
// what GetPosition reports without touching the input stream underneath it.
func TestSetPositionSplicesAnArbitraryPosition(t *testing.T) {
	target := parsec.Increment(parsec.Increment(parsec.StartPosition(), 'a'), 'b')

	p := parsec.Bind(parsec.SetPosition[rune](target), func(*parsec.ParserState[rune]) parsec.Parser[rune, parsec.Position] {
		return parsec.GetPosition[rune]()
	})

	pos, err := parsec.Run(p, []rune("abc"))
	assert.NoError(t, err)
	assert.True(t, pos.Equal(target))

	// Input is untouched: the next token consumed is still 'a', the actual
	// first rune of the original input, not whatever sits at target.
	next := parsec.Bind(parsec.SetPosition[rune](target), func(*parsec.ParserState[rune]) parsec.Parser[rune, rune] {
		return parsec.Character('a')
	})

	v, err := parsec.Run(next, []rune("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 'a', v)
}
