package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/char"
	"github.com/consensys/go-parsec/pkg/parsec/lang"
)

func TestSepByAcceptsEmptyInput(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')

	v, err := parsec.Run(lang.SepBy(sep, a), []rune(""))
	assert.NoError(t, err)
	assert.Empty(t, v)
}

func TestSepBy1RequiresAtLeastOneItem(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')

	v, err := parsec.Run(lang.SepBy1(sep, a), []rune("a,a,a"))
	assert.NoError(t, err)
	assert.Equal(t, []rune{'a', 'a', 'a'}, v)

	_, err = parsec.Run(lang.SepBy1(sep, a), []rune(""))
	assert.Error(t, err)
}

// TestSepBy1RejectsTrailingSeparator locks in the "no trailing separator"
// half of SepBy1's contract: unlike SepEndBy1, a dangling sep with nothing
// after it is left unconsumed rather than silently accepted.
func TestSepBy1RejectsTrailingSeparator(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')

	v, err := parsec.Run(parsec.Next(lang.SepBy1(sep, a), char.Rune(',')), []rune("a,a,"))
	assert.NoError(t, err)
	assert.Equal(t, ',', v)
}

// TestSepEndByToleratesTrailingSeparator locks in scenario S3: a trailing
// separator after the last item is accepted, unlike SepBy.
func TestSepEndByToleratesTrailingSeparator(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')

	v, err := parsec.Run(lang.SepEndBy(sep, a), []rune("a,a,"))
	assert.NoError(t, err)
	assert.Equal(t, []rune{'a', 'a'}, v)
}

// TestSepEndByStopsBeforeUnconsumedRemainder locks in scenario S4.
func TestSepEndByStopsBeforeUnconsumedRemainder(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')
	z := char.Rune('z')

	v, err := parsec.Run(parsec.Next(lang.SepEndBy(sep, a), z), []rune("a,a,z"))
	assert.NoError(t, err)
	assert.Equal(t, 'z', v)
}

// TestSepEndBy1RequiresAtLeastOneItem locks in scenario S5.
func TestSepEndBy1RequiresAtLeastOneItem(t *testing.T) {
	sep := char.Rune(',')
	a := char.Rune('a')

	_, err := parsec.Run(lang.SepEndBy1(sep, a), []rune(""))
	assert.Error(t, err)
}

func TestEndByRequiresTrailingSeparatorOnEveryItem(t *testing.T) {
	sep := char.Rune(';')
	a := char.Rune('a')

	v, err := parsec.Run(lang.EndBy(sep, a), []rune("a;a;"))
	assert.NoError(t, err)
	assert.Equal(t, []rune{'a', 'a'}, v)

	_, err = parsec.Run(parsec.Next(lang.EndBy(sep, a), char.Rune('a')), []rune("a;a"))
	assert.Error(t, err, "EndBy must not accept an item with no trailing separator")
}

func TestTimesRunsExactlyN(t *testing.T) {
	v, err := parsec.Run(lang.Times(3, char.Digit()), []rune("123"))
	assert.NoError(t, err)
	assert.Equal(t, []rune{'1', '2', '3'}, v)

	_, err = parsec.Run(lang.Times(3, char.Digit()), []rune("12"))
	assert.Error(t, err)
}

func TestBetweenDiscardsBracketingValues(t *testing.T) {
	p := lang.Between(char.Rune('('), char.Digit(), char.Rune(')'))

	v, err := parsec.Run(p, []rune("(7)"))
	assert.NoError(t, err)
	assert.Equal(t, '7', v)
}

func TestChainL1FoldsLeftAssociatively(t *testing.T) {
	sub := parsec.Bind(char.Rune('-'), func(rune) parsec.Parser[rune, lang.BinOp[int]] {
		return parsec.Always[rune, lang.BinOp[int]](func(l, r int) int { return l - r })
	})
	digit := parsec.Bind(char.Digit(), func(r rune) parsec.Parser[rune, int] {
		return parsec.Always[rune, int](int(r - '0'))
	})

	// "9-3-2" as (9-3)-2 == 4, not 9-(3-2) == 8.
	v, err := parsec.Run(lang.ChainL1(digit, sub), []rune("9-3-2"))
	assert.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestChainR1FoldsRightAssociatively(t *testing.T) {
	sub := parsec.Bind(char.Rune('-'), func(rune) parsec.Parser[rune, lang.BinOp[int]] {
		return parsec.Always[rune, lang.BinOp[int]](func(l, r int) int { return l - r })
	})
	digit := parsec.Bind(char.Digit(), func(r rune) parsec.Parser[rune, int] {
		return parsec.Always[rune, int](int(r - '0'))
	})

	// "9-3-2" as 9-(3-2) == 8.
	v, err := parsec.Run(lang.ChainR1(digit, sub), []rune("9-3-2"))
	assert.NoError(t, err)
	assert.Equal(t, 8, v)
}
