package sexp

import (
	"strconv"
	"testing"
)

// integerTranslator builds a Translator[int] treating symbols as decimal
// literals, "add" lists/sets as n-ary sums, and "sub" lists as binary
// differences between two symbol operands. Used below to exercise
// Translator against both List and Set nodes, since translateSExpList
// dispatches on the leading symbol regardless of which of the two holds it.
func integerTranslator() *Translator[int] {
	tr := NewTranslator[int]()

	tr.AddSymbolRule(func(s string) (int, error) {
		return strconv.Atoi(s)
	})

	tr.AddRecursiveRule("add", func(args []int) (int, error) {
		sum := 0
		for _, a := range args {
			sum += a
		}

		return sum, nil
	})

	tr.AddBinaryRule("sub", func(lhs, rhs string) (int, error) {
		l, err := strconv.Atoi(lhs)
		if err != nil {
			return 0, err
		}

		r, err := strconv.Atoi(rhs)
		if err != nil {
			return 0, err
		}

		return l - r, nil
	})

	return tr
}

func TestTranslatorTranslatesSymbol(t *testing.T) {
	v, err := integerTranslator().Translate(&Symbol{"42"})
	if err != nil {
		t.Fatal(err)
	}

	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestTranslatorTranslatesRecursiveList(t *testing.T) {
	v, err := integerTranslator().ParseAndTranslate("(add 1 2 (add 3 4))")
	if err != nil {
		t.Fatal(err)
	}

	if v != 10 {
		t.Errorf("got %d, want 10", v)
	}
}

// TestTranslatorTranslatesRecursiveSet exercises the *Set arm of
// translateSExp: a Set dispatches on its leading symbol exactly like a List
// does, so the "add" rule registered above applies unchanged.
func TestTranslatorTranslatesRecursiveSet(t *testing.T) {
	e1 := Symbol{"add"}
	e2 := Symbol{"5"}
	e3 := Symbol{"6"}
	set := Set{[]SExp{&e1, &e2, &e3}}

	v, err := integerTranslator().Translate(&set)
	if err != nil {
		t.Fatal(err)
	}

	if v != 11 {
		t.Errorf("got %d, want 11", v)
	}
}

func TestTranslatorTranslatesBinaryRule(t *testing.T) {
	v, err := integerTranslator().ParseAndTranslate("(sub 9 4)")
	if err != nil {
		t.Fatal(err)
	}

	if v != 5 {
		t.Errorf("got %d, want 5", v)
	}
}

func TestTranslatorReportsUnknownList(t *testing.T) {
	_, err := integerTranslator().ParseAndTranslate("(mul 2 3)")
	if err == nil {
		t.Error("expected an error for an unregistered list rule")
	}
}

func TestTranslatorPropagatesParseErrors(t *testing.T) {
	_, err := integerTranslator().ParseAndTranslate("(add 1")
	if err == nil {
		t.Error("expected a parse error to propagate from ParseAndTranslate")
	}
}
