package eval

import (
	"fmt"
	"math"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/types"
)

// VisitBinaryArithOpEvalRange implements expr.Visitor. The data-first
// skeleton is used because the raw value is needed to compute
// (x arith right) even when the chunk is indexed.
func (e *Evaluator) VisitBinaryArithOpEvalRange(x *expr.BinaryArithOpEvalRange) (*bitset.BitSet, error) {
	if _, err := e.fieldMeta(x.Field, x.Type); err != nil {
		return nil, err
	}
	if x.Op != types.OpEqual && x.Op != types.OpNotEqual {
		return nil, fmt.Errorf("%w: %s on arithmetic result", ErrUnsupportedOperator, x.Op)
	}
	switch x.Type {
	case types.Int8:
		return execArithInt[int8](e, x)
	case types.Int16:
		return execArithInt[int16](e, x)
	case types.Int32:
		return execArithInt[int32](e, x)
	case types.Int64:
		return execArithInt[int64](e, x)
	case types.Float32:
		return execArithFloat[float32](e, x)
	case types.Float64:
		return execArithFloat[float64](e, x)
	default:
		return nil, fmt.Errorf("%w: %s for arithmetic", ErrUnsupportedType, x.Type)
	}
}

// execArithInt evaluates (x arith right) op val with two's-complement
// wrapping and truncated division.
func execArithInt[T types.Integer](e *Evaluator, x *expr.BinaryArithOpEvalRange) (*bitset.BitSet, error) {
	right, ok := types.ValueAs[T](x.RightOperand)
	if !ok {
		return nil, valueKindMismatch(x.RightOperand, x.Type)
	}
	val, ok := types.ValueAs[T](x.Value)
	if !ok {
		return nil, valueKindMismatch(x.Value, x.Type)
	}

	if (x.ArithOp == types.ArithDiv || x.ArithOp == types.ArithMod) && right == 0 {
		return nil, fmt.Errorf("%w: %s by zero on field %d", ErrArithmeticFault, x.ArithOp, x.Field)
	}

	var apply func(T) T
	switch x.ArithOp {
	case types.ArithAdd:
		apply = func(v T) T { return v + right }
	case types.ArithSub:
		apply = func(v T) T { return v - right }
	case types.ArithMul:
		apply = func(v T) T { return v * right }
	case types.ArithDiv:
		apply = func(v T) T { return v / right }
	case types.ArithMod:
		apply = func(v T) T { return v % right }
	default:
		return nil, fmt.Errorf("%w: arith op %s", ErrUnsupportedOperator, x.ArithOp)
	}

	return execDataRange(e, x.Field, arithPredicate(x.Op, apply, val))
}

// execArithFloat evaluates the float flavor; Mod follows IEEE remainder
// truncated toward zero, cast back to T.
func execArithFloat[T types.Float](e *Evaluator, x *expr.BinaryArithOpEvalRange) (*bitset.BitSet, error) {
	right, ok := types.ValueAs[T](x.RightOperand)
	if !ok {
		return nil, valueKindMismatch(x.RightOperand, x.Type)
	}
	val, ok := types.ValueAs[T](x.Value)
	if !ok {
		return nil, valueKindMismatch(x.Value, x.Type)
	}

	var apply func(T) T
	switch x.ArithOp {
	case types.ArithAdd:
		apply = func(v T) T { return v + right }
	case types.ArithSub:
		apply = func(v T) T { return v - right }
	case types.ArithMul:
		apply = func(v T) T { return v * right }
	case types.ArithDiv:
		apply = func(v T) T { return v / right }
	case types.ArithMod:
		apply = func(v T) T { return T(math.Mod(float64(v), float64(right))) }
	default:
		return nil, fmt.Errorf("%w: arith op %s", ErrUnsupportedOperator, x.ArithOp)
	}

	return execDataRange(e, x.Field, arithPredicate(x.Op, apply, val))
}

func arithPredicate[T types.Numeric](op types.OpType, apply func(T) T, val T) elementPredicate[T] {
	if op == types.OpEqual {
		return func(v T) bool { return apply(v) == val }
	}
	return func(v T) bool { return apply(v) != val }
}
