// Package char supplies the token-level building blocks for grammars over
// rune streams: single-character predicates and the small keyword matcher
// built on top of them. Everything here is expressed purely in terms of the
// public parsec API — nothing in this package reaches into parsec's
// internals — so it doubles as a worked example of how to layer a
// domain-specific vocabulary on top of the core combinators.
package char

import (
	"strconv"
	"unicode"

	"golang.org/x/exp/constraints"

	"github.com/consensys/go-parsec/pkg/parsec"
)

// Satisfy accepts and consumes the next rune iff pred accepts it.
func Satisfy(label string, pred func(rune) bool) parsec.Parser[rune, rune] {
	return parsec.Token(pred, func(pos parsec.Position, found *rune) parsec.ParseError {
		if found == nil {
			return parsec.NewExpectError(pos, label)
		}

		return parsec.NewExpectFoundError(pos, label, *found)
	})
}

// Rune matches a single specific rune.
func Rune(r rune) parsec.Parser[rune, rune] {
	return Satisfy(string(r), func(c rune) bool { return c == r })
}

// Letter matches any Unicode letter.
func Letter() parsec.Parser[rune, rune] {
	return Satisfy("a letter", unicode.IsLetter)
}

// Digit matches any Unicode decimal digit.
func Digit() parsec.Parser[rune, rune] {
	return Satisfy("a digit", unicode.IsDigit)
}

// AlphaNum matches any Unicode letter or digit.
func AlphaNum() parsec.Parser[rune, rune] {
	return Satisfy("a letter or digit", func(c rune) bool {
		return unicode.IsLetter(c) || unicode.IsDigit(c)
	})
}

// Space matches a single Unicode whitespace character.
func Space() parsec.Parser[rune, rune] {
	return Satisfy("whitespace", unicode.IsSpace)
}

// Spaces consumes zero or more whitespace characters, returning them as a
// result stream.
func Spaces() parsec.Parser[rune, parsec.Stream[rune]] {
	return parsec.Many(Space())
}

// OneOf matches any rune present in chars.
func OneOf(chars string) parsec.Parser[rune, rune] {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}

	return Satisfy("one of \""+chars+"\"", func(c rune) bool {
		_, ok := set[c]
		return ok
	})
}

// NoneOf matches any rune absent from chars.
func NoneOf(chars string) parsec.Parser[rune, rune] {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}

	return Satisfy("none of \""+chars+"\"", func(c rune) bool {
		_, ok := set[c]
		return !ok
	})
}

// Number matches one or more decimal digits and parses them into T, for
// grammars that want an integer literal rather than the raw rune sequence
// Many1(Digit()) would give them. T is constrained to constraints.Integer
// since converting the parsed magnitude back requires some concrete sized
// integer type; a value too large for T fails the parse (as a committed
// error, since the digits have already been consumed) rather than
// silently wrapping.
func Number[T constraints.Integer]() parsec.Parser[rune, T] {
	digits := parsec.Eager(parsec.Many1(Digit()))

	return parsec.Bind(digits, func(rs []rune) parsec.Parser[rune, T] {
		n, err := strconv.ParseInt(string(rs), 10, 64)
		if err != nil {
			return parsec.Fail[rune, T](err.Error())
		}

		if int64(T(n)) != n {
			return parsec.Fail[rune, T]("value overflows target type")
		}

		return parsec.Always[rune, T](T(n))
	})
}

// Newline matches a single line-feed character.
func Newline() parsec.Parser[rune, rune] {
	return Rune('\n')
}

// Tab matches a single tab character.
func Tab() parsec.Parser[rune, rune] {
	return Rune('\t')
}
