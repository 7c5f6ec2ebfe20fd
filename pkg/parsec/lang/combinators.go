package lang

import "github.com/consensys/go-parsec/pkg/parsec"

// Times runs p exactly n times in sequence, collecting the results. n <= 0
// yields an empty slice without touching p at all.
func Times[T, V any](n int, p parsec.Parser[T, V]) parsec.Parser[T, []V] {
	if n <= 0 {
		return parsec.Always[T, []V](nil)
	}

	ps := make([]parsec.Parser[T, V], n)
	for i := range ps {
		ps[i] = p
	}

	return parsec.Eager(parsec.Sequence(ps...))
}

// Between runs open, then p, then close, discarding the bracketing values
// and returning p's.
func Between[T, O, C, V any](open parsec.Parser[T, O], p parsec.Parser[T, V], close_ parsec.Parser[T, C]) parsec.Parser[T, V] {
	return parsec.Next(open, parsec.Bind(p, func(v V) parsec.Parser[T, V] {
		return parsec.Next(close_, parsec.Always[T, V](v))
	}))
}

// BinOp combines a left and right operand into a new value, typically
// building an AST node for an infix operator.
type BinOp[V any] func(left, right V) V

// chainStep pairs an infix operator with the operand that followed it, the
// unit ChainL1/ChainR1 collect via Many before folding.
type chainStep[V any] struct {
	op      BinOp[V]
	operand V
}

func chainSteps[T, V any](p parsec.Parser[T, V], op parsec.Parser[T, BinOp[V]]) parsec.Parser[T, []chainStep[V]] {
	step := parsec.Bind(op, func(f BinOp[V]) parsec.Parser[T, chainStep[V]] {
		return parsec.Bind(p, func(v V) parsec.Parser[T, chainStep[V]] {
			return parsec.Always[T, chainStep[V]](chainStep[V]{f, v})
		})
	})

	return parsec.Eager(parsec.Many(step))
}

// ChainL1 parses one or more V's separated by an operator parser that
// yields a BinOp, and folds them left-associatively:
// a `op1` b `op2` c parses as (a `op1` b) `op2` c.
func ChainL1[T, V any](p parsec.Parser[T, V], op parsec.Parser[T, BinOp[V]]) parsec.Parser[T, V] {
	return parsec.Bind(p, func(first V) parsec.Parser[T, V] {
		return parsec.Bind(chainSteps(p, op), func(steps []chainStep[V]) parsec.Parser[T, V] {
			acc := first
			for _, step := range steps {
				acc = step.op(acc, step.operand)
			}

			return parsec.Always[T, V](acc)
		})
	})
}

// ChainL is ChainL1 except that, if p does not match at all (fails without
// consuming input), def is returned instead.
func ChainL[T, V any](p parsec.Parser[T, V], op parsec.Parser[T, BinOp[V]], def V) parsec.Parser[T, V] {
	return parsec.Optional(ChainL1(p, op), def)
}

// ChainR1 is ChainL1's right-associative counterpart:
// a `op1` b `op2` c parses as a `op1` (b `op2` c).
func ChainR1[T, V any](p parsec.Parser[T, V], op parsec.Parser[T, BinOp[V]]) parsec.Parser[T, V] {
	return parsec.Bind(p, func(first V) parsec.Parser[T, V] {
		return parsec.Bind(chainSteps(p, op), func(steps []chainStep[V]) parsec.Parser[T, V] {
			if len(steps) == 0 {
				return parsec.Always[T, V](first)
			}

			// Re-associate the left-to-right scan of operands into a
			// right fold: apply operators from the last pair backwards.
			operands := make([]V, 0, len(steps)+1)
			operands = append(operands, first)

			for _, step := range steps {
				operands = append(operands, step.operand)
			}

			acc := operands[len(operands)-1]
			for i := len(steps) - 1; i >= 0; i-- {
				acc = steps[i].op(operands[i], acc)
			}

			return parsec.Always[T, V](acc)
		})
	})
}

// ChainR is ChainR1 except it returns def when p does not match at all
// (fails without consuming input).
func ChainR[T, V any](p parsec.Parser[T, V], op parsec.Parser[T, BinOp[V]], def V) parsec.Parser[T, V] {
	return parsec.Optional(ChainR1(p, op), def)
}
