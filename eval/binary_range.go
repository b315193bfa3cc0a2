package eval

import (
	"fmt"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/types"
)

// VisitBinaryRange implements expr.Visitor.
func (e *Evaluator) VisitBinaryRange(x *expr.BinaryRange) (*bitset.BitSet, error) {
	if _, err := e.fieldMeta(x.Field, x.Type); err != nil {
		return nil, err
	}
	switch x.Type {
	case types.Int8:
		return execBinaryRange[int8](e, x)
	case types.Int16:
		return execBinaryRange[int16](e, x)
	case types.Int32:
		return execBinaryRange[int32](e, x)
	case types.Int64:
		return execBinaryRange[int64](e, x)
	case types.Float32:
		return execBinaryRange[float32](e, x)
	case types.Float64:
		return execBinaryRange[float64](e, x)
	case types.String:
		return execBinaryRange[string](e, x)
	default:
		return nil, fmt.Errorf("%w: %s for BinaryRange", ErrUnsupportedType, x.Type)
	}
}

func execBinaryRange[T types.Ordered](e *Evaluator, x *expr.BinaryRange) (*bitset.BitSet, error) {
	lo, ok := types.ValueAs[T](x.Lower)
	if !ok {
		return nil, valueKindMismatch(x.Lower, x.Type)
	}
	hi, ok := types.ValueAs[T](x.Upper)
	if !ok {
		return nil, valueKindMismatch(x.Upper, x.Type)
	}
	loInc, hiInc := x.LowerInclusive, x.UpperInclusive

	ixQuery := func(ix index.ScalarIndex[T]) (*bitset.BitSet, error) {
		return ix.RangeBetween(lo, loInc, hi, hiInc), nil
	}

	var pred elementPredicate[T]
	switch {
	case loInc && hiInc:
		pred = func(v T) bool { return lo <= v && v <= hi }
	case loInc && !hiInc:
		pred = func(v T) bool { return lo <= v && v < hi }
	case !loInc && hiInc:
		pred = func(v T) bool { return lo < v && v <= hi }
	default:
		pred = func(v T) bool { return lo < v && v < hi }
	}

	return execRange(e, x.Field, ixQuery, pred)
}
