package eval

import (
	"fmt"
	"strings"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

// VisitCompare implements expr.Visitor. Field-to-field comparison has no
// index path; every chunk is evaluated row-wise through accessors that
// read the raw span below the data barrier and reverse-lookup the scalar
// index above it.
func (e *Evaluator) VisitCompare(x *expr.Compare) (*bitset.BitSet, error) {
	left, err := e.fieldMeta(x.LeftField, x.LeftType)
	if err != nil {
		return nil, err
	}
	right, err := e.fieldMeta(x.RightField, x.RightType)
	if err != nil {
		return nil, err
	}
	if err := e.checkBarriers(left.ID, e.barriers(left.ID)); err != nil {
		return nil, err
	}
	if err := e.checkBarriers(right.ID, e.barriers(right.ID)); err != nil {
		return nil, err
	}

	chunks := make([]*bitset.BitSet, 0, e.numChunks)
	for chunkID := int64(0); chunkID < e.numChunks; chunkID++ {
		leftAt, err := e.valueAccessor(left, chunkID)
		if err != nil {
			return nil, err
		}
		rightAt, err := e.valueAccessor(right, chunkID)
		if err != nil {
			return nil, err
		}

		size := e.chunkSize(chunkID)
		bs := bitset.New(size)
		for i := int64(0); i < size; i++ {
			lv, err := leftAt(i)
			if err != nil {
				return nil, err
			}
			rv, err := rightAt(i)
			if err != nil {
				return nil, err
			}
			ok, err := compareValues(x.Op, lv, rv)
			if err != nil {
				return nil, err
			}
			bs.SetTo(i, ok)
		}
		chunks = append(chunks, bs)
	}

	return assemble(e, chunks)
}

// valueAccessor yields a type-tagged value per row of one chunk,
// transparently selecting raw span or reverse lookup.
func (e *Evaluator) valueAccessor(f segment.Field, chunkID int64) (func(int64) (types.Value, error), error) {
	switch f.Type {
	case types.Bool:
		return accessor[bool](e, f.ID, chunkID)
	case types.Int8:
		return accessor[int8](e, f.ID, chunkID)
	case types.Int16:
		return accessor[int16](e, f.ID, chunkID)
	case types.Int32:
		return accessor[int32](e, f.ID, chunkID)
	case types.Int64:
		return accessor[int64](e, f.ID, chunkID)
	case types.Float32:
		return accessor[float32](e, f.ID, chunkID)
	case types.Float64:
		return accessor[float64](e, f.ID, chunkID)
	case types.String:
		return accessor[string](e, f.ID, chunkID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, f.Type)
	}
}

func accessor[T types.Element](e *Evaluator, field types.FieldID, chunkID int64) (func(int64) (types.Value, error), error) {
	if chunkID < e.barriers(field).data {
		span, err := segment.Data[T](e.seg, field, chunkID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		return func(i int64) (types.Value, error) {
			if i < 0 || i >= int64(len(span)) {
				return types.Value{}, fmt.Errorf("%w: row %d outside chunk span", ErrInvariantViolation, i)
			}
			return types.ValueOf(span[i]), nil
		}, nil
	}

	ix, err := segment.Index[T](e.seg, field, chunkID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	return func(i int64) (types.Value, error) {
		v, err := ix.ReverseLookup(i)
		if err != nil {
			return types.Value{}, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		return types.ValueOf(v), nil
	}, nil
}

// compareValues applies op to two type-tagged operands. Kinds must match
// exactly; the engine does not widen across heterogeneous columns.
func compareValues(op types.OpType, a, b types.Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, fmt.Errorf("%w: %s vs %s", ErrIncompatibleOperands, a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case types.Bool:
		switch op {
		case types.OpEqual:
			return a.Bool() == b.Bool(), nil
		case types.OpNotEqual:
			return a.Bool() != b.Bool(), nil
		default:
			return false, fmt.Errorf("%w: %s on Bool", ErrUnsupportedOperator, op)
		}
	case types.Int8, types.Int16, types.Int32, types.Int64:
		return compareOrdered(op, a.Int64(), b.Int64())
	case types.Float32, types.Float64:
		return compareOrdered(op, a.Float64(), b.Float64())
	case types.String:
		if op == types.OpPrefixMatch {
			return strings.HasPrefix(a.Str(), b.Str()), nil
		}
		return compareOrdered(op, a.Str(), b.Str())
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedType, a.Kind())
	}
}

func compareOrdered[T types.Ordered](op types.OpType, a, b T) (bool, error) {
	switch op {
	case types.OpEqual:
		return a == b, nil
	case types.OpNotEqual:
		return a != b, nil
	case types.OpLessThan:
		return a < b, nil
	case types.OpLessEqual:
		return a <= b, nil
	case types.OpGreaterThan:
		return a > b, nil
	case types.OpGreaterEqual:
		return a >= b, nil
	default:
		return false, fmt.Errorf("%w: %s for Compare", ErrUnsupportedOperator, op)
	}
}
