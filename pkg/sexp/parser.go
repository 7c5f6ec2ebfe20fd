package sexp

import (
	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/char"
	"github.com/consensys/go-parsec/pkg/srcpos"
)

// reservedRunes delimits a symbol: none of these may appear inside one, and
// each doubles as its own single-character token.
const reservedRunes = " \t\n\r(){};"

// comment consumes a ';' through to (but not including) the next newline,
// or end of input.
var comment = parsec.Next(char.Rune(';'), parsec.Many(char.NoneOf("\n")))

// skip consumes whitespace and comments, greedily and silently.
var skip = parsec.Many(parsec.Either(char.Space(), comment))

// lexeme runs p then discards any trailing whitespace/comments, the usual
// Parsec idiom for turning a bare token parser into one that composes
// cleanly in a sequence of tokens.
func lexeme[V any](p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Bind(p, func(v V) parsec.Parser[rune, V] {
		return parsec.Next(skip, parsec.Always[rune, V](v))
	})
}

// symbolText matches a maximal run of non-reserved, non-whitespace runes.
var symbolText = parsec.Eager(parsec.Many1(char.NoneOf(reservedRunes)))

var symbolParser = lexeme(parsec.Bind(symbolText, func(rs []rune) parsec.Parser[rune, SExp] {
	return parsec.Always[rune, SExp](&Symbol{string(rs)})
}))

// exprParser is the recursive top-level grammar: a symbol, or a
// parenthesised List, or a braced Set, each of whose elements is itself an
// expr.
var exprParser = parsec.RecParser[rune, SExp]("sexp", func(self parsec.Parser[rune, SExp]) parsec.Parser[rune, SExp] {
	elements := parsec.Eager(parsec.Many(self))

	list := lexeme(parsec.Bind(lexeme(char.Rune('(')), func(rune) parsec.Parser[rune, SExp] {
		return parsec.Bind(elements, func(es []SExp) parsec.Parser[rune, SExp] {
			return parsec.Next(expectClose(')'), parsec.Always[rune, SExp](&List{es}))
		})
	}))

	set := lexeme(parsec.Bind(lexeme(char.Rune('{')), func(rune) parsec.Parser[rune, SExp] {
		return parsec.Bind(elements, func(es []SExp) parsec.Parser[rune, SExp] {
			return parsec.Next(expectClose('}'), parsec.Always[rune, SExp](&Set{es}))
		})
	}))

	return parsec.Choice(list, set, symbolParser)
})

// expectClose matches a single closing delimiter, or fails with a message
// naming the delimiter expected — this is what turns "(foo" or "{foo" into
// a reported "expected closing ')'" (or '}') error rather than a bare one,
// since by construction Many(self) only stops once none of list/set/symbol
// can advance any further.
func expectClose(c rune) parsec.Parser[rune, rune] {
	return parsec.Expected("closing '"+string(c)+"'", lexeme(char.Rune(c)))
}

// Grammar is the top-level rule matching a whole document: leading
// whitespace/comments, zero or more expressions, then end of input.
// Exposed so callers driving parsec directly (the metrics-instrumented
// server, the cache layer) can reuse the exact grammar ParseAll runs rather
// than duplicating it.
var Grammar = parsec.Next(skip, parsec.Bind(parsec.Eager(parsec.Many(exprParser)), func(es []SExp) parsec.Parser[rune, []SExp] {
	eof := parsec.Expected("end of expression", parsec.Eof[rune]())
	return parsec.Next(eof, parsec.Always[rune, []SExp](es))
}))

// Diagnose adapts a plain error returned by running Grammar (or ParseAll)
// into a srcpos.SyntaxError carrying line/column context for the given raw
// source text, if it wraps a parsec.ParseError; otherwise it is returned
// unchanged.
func Diagnose(source string, err error) error {
	if err == nil {
		return nil
	}

	pe, ok := asParseError(err)
	if !ok {
		return err
	}

	return srcpos.NewFile("", []byte(source)).Diagnose(pe)
}

// Parse parses a single S-expression from s, or returns an error if the
// string is malformed. An empty (or all-whitespace/comment) input returns
// (nil, nil), matching the original recursive-descent parser's behaviour of
// treating EOF-with-nothing-parsed as "no expression here" rather than an
// error.
func Parse(s string) (SExp, error) {
	terms, err := ParseAll(s)
	if err != nil {
		return nil, err
	}

	if len(terms) == 0 {
		return nil, nil
	}

	if len(terms) > 1 {
		return nil, srcpos.NewFile("", []byte(s)).SyntaxError(srcpos.PointSpan(0), "unexpected remainder")
	}

	return terms[0], nil
}

// ParseAll parses s into zero or more top-level S-expressions, failing on
// the first malformed one.
func ParseAll(s string) ([]SExp, error) {
	terms, err := parsec.Run(Grammar, []rune(s))
	if err != nil {
		return nil, Diagnose(s, err)
	}

	return terms, nil
}

// asParseError unwraps the fmt.Errorf-wrapped error Run returns back to the
// underlying parsec.ParseError, when there is one, so ParseAll can attach
// line/column context via srcpos.
func asParseError(err error) (parsec.ParseError, bool) {
	type unwrapper interface{ Unwrap() error }

	for e := err; e != nil; {
		if pe, ok := e.(parsec.ParseError); ok {
			return pe, true
		}

		u, ok := e.(unwrapper)
		if !ok {
			return nil, false
		}

		e = u.Unwrap()
	}

	return nil, false
}
