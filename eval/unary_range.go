package eval

import (
	"fmt"
	"strings"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/types"
)

// VisitUnaryRange implements expr.Visitor.
func (e *Evaluator) VisitUnaryRange(x *expr.UnaryRange) (*bitset.BitSet, error) {
	if _, err := e.fieldMeta(x.Field, x.Type); err != nil {
		return nil, err
	}
	switch x.Type {
	case types.Bool:
		return execUnaryRangeBool(e, x)
	case types.Int8:
		return execUnaryRange[int8](e, x)
	case types.Int16:
		return execUnaryRange[int16](e, x)
	case types.Int32:
		return execUnaryRange[int32](e, x)
	case types.Int64:
		return execUnaryRange[int64](e, x)
	case types.Float32:
		return execUnaryRange[float32](e, x)
	case types.Float64:
		return execUnaryRange[float64](e, x)
	case types.String:
		return execUnaryRange[string](e, x)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, x.Type)
	}
}

func execUnaryRange[T types.Ordered](e *Evaluator, x *expr.UnaryRange) (*bitset.BitSet, error) {
	val, ok := types.ValueAs[T](x.Value)
	if !ok {
		return nil, valueKindMismatch(x.Value, x.Type)
	}

	switch x.Op {
	case types.OpEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.In([]T{val}), nil },
			func(v T) bool { return v == val },
		)
	case types.OpNotEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.NotIn([]T{val}), nil },
			func(v T) bool { return v != val },
		)
	case types.OpLessThan:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.Range(val, types.OpLessThan) },
			func(v T) bool { return v < val },
		)
	case types.OpLessEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.Range(val, types.OpLessEqual) },
			func(v T) bool { return v <= val },
		)
	case types.OpGreaterThan:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.Range(val, types.OpGreaterThan) },
			func(v T) bool { return v > val },
		)
	case types.OpGreaterEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.Range(val, types.OpGreaterEqual) },
			func(v T) bool { return v >= val },
		)
	case types.OpPrefixMatch:
		prefix, ok := any(val).(string)
		if !ok {
			return nil, fmt.Errorf("%w: PrefixMatch on %s", ErrUnsupportedOperator, x.Type)
		}
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) { return ix.Query(prefix) },
			func(v T) bool { return strings.HasPrefix(any(v).(string), prefix) },
		)
	default:
		return nil, fmt.Errorf("%w: %s for UnaryRange", ErrUnsupportedOperator, x.Op)
	}
}

// execUnaryRangeBool handles the bool column case, which has no ordering.
func execUnaryRangeBool(e *Evaluator, x *expr.UnaryRange) (*bitset.BitSet, error) {
	val, ok := types.ValueAs[bool](x.Value)
	if !ok {
		return nil, valueKindMismatch(x.Value, x.Type)
	}

	switch x.Op {
	case types.OpEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[bool]) (*bitset.BitSet, error) { return ix.In([]bool{val}), nil },
			func(v bool) bool { return v == val },
		)
	case types.OpNotEqual:
		return execRange(e, x.Field,
			func(ix index.ScalarIndex[bool]) (*bitset.BitSet, error) { return ix.NotIn([]bool{val}), nil },
			func(v bool) bool { return v != val },
		)
	default:
		return nil, fmt.Errorf("%w: %s on Bool", ErrUnsupportedOperator, x.Op)
	}
}
