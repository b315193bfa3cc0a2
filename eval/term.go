package eval

import (
	"fmt"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

// VisitTerm implements expr.Visitor. Terms against the segment's primary
// key are answered through the ID lookup, honoring the read timestamp;
// every other field falls back to per-element set membership.
func (e *Evaluator) VisitTerm(x *expr.Term) (*bitset.BitSet, error) {
	f, err := e.fieldMeta(x.Field, x.Type)
	if err != nil {
		return nil, err
	}

	if f.Primary && f.Type.PrimaryKeyEligible() {
		return e.execTermPrimaryKey(x, f)
	}

	switch x.Type {
	case types.Bool:
		return execTermMembership[bool](e, x)
	case types.Int8:
		return execTermMembership[int8](e, x)
	case types.Int16:
		return execTermMembership[int16](e, x)
	case types.Int32:
		return execTermMembership[int32](e, x)
	case types.Int64:
		return execTermMembership[int64](e, x)
	case types.Float32:
		return execTermMembership[float32](e, x)
	case types.Float64:
		return execTermMembership[float64](e, x)
	case types.String:
		return execTermString(e, x)
	default:
		return nil, fmt.Errorf("%w: %s for Term", ErrUnsupportedType, x.Type)
	}
}

// execTermPrimaryKey translates the term set into an ID lookup filtered by
// the read timestamp and sets the returned offsets.
func (e *Evaluator) execTermPrimaryKey(x *expr.Term, f segment.Field) (*bitset.BitSet, error) {
	var ids types.IDList
	switch f.Type {
	case types.Int64:
		for _, term := range x.Terms {
			v, ok := types.ValueAs[int64](term)
			if !ok {
				return nil, valueKindMismatch(term, f.Type)
			}
			ids.Ints = append(ids.Ints, v)
		}
	case types.String:
		for _, term := range x.Terms {
			v, ok := types.ValueAs[string](term)
			if !ok {
				return nil, valueKindMismatch(term, f.Type)
			}
			ids.Strings = append(ids.Strings, v)
		}
	default:
		return nil, fmt.Errorf("%w: %s as primary key", ErrUnsupportedType, f.Type)
	}

	_, offsets, err := e.seg.SearchIDs(ids, e.ts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}

	bs := bitset.New(e.rowCount)
	for _, offset := range offsets {
		if offset < 0 || offset >= e.rowCount {
			return nil, fmt.Errorf("%w: id offset %d outside %d rows", ErrInvariantViolation, offset, e.rowCount)
		}
		bs.Set(offset)
	}
	return bs, nil
}

// execTermMembership answers a non-string term through set membership over
// raw values, reconstituting indexed chunks via reverse lookup.
func execTermMembership[T types.Element](e *Evaluator, x *expr.Term) (*bitset.BitSet, error) {
	set, err := termSet[T](x)
	if err != nil {
		return nil, err
	}
	return execDataRange(e, x.Field, func(v T) bool {
		_, ok := set[v]
		return ok
	})
}

// execTermString additionally serves indexed chunks through the index's In
// query.
func execTermString(e *Evaluator, x *expr.Term) (*bitset.BitSet, error) {
	set, err := termSet[string](x)
	if err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(set))
	for _, term := range x.Terms {
		v, _ := types.ValueAs[string](term)
		terms = append(terms, v)
	}

	return execRange(e, x.Field,
		func(ix index.ScalarIndex[string]) (*bitset.BitSet, error) { return ix.In(terms), nil },
		func(v string) bool {
			_, ok := set[v]
			return ok
		},
	)
}

func termSet[T types.Element](x *expr.Term) (map[T]struct{}, error) {
	set := make(map[T]struct{}, len(x.Terms))
	for _, term := range x.Terms {
		v, ok := types.ValueAs[T](term)
		if !ok {
			return nil, valueKindMismatch(term, x.Type)
		}
		set[v] = struct{}{}
	}
	return set, nil
}
