package index

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/types"
)

// Memory is an immutable in-memory scalar index over one chunk of a
// column: a roaring posting list per distinct value plus a sorted
// dictionary for range scans. The original column is retained for reverse
// lookup.
type Memory[T types.Element] struct {
	values   []T
	distinct []T
	postings map[T]*roaring.Bitmap
}

// NewMemory builds a Memory index over the given chunk column.
func NewMemory[T types.Element](column []T) *Memory[T] {
	m := &Memory[T]{
		values:   make([]T, len(column)),
		postings: make(map[T]*roaring.Bitmap),
	}
	copy(m.values, column)

	for offset, v := range column {
		if v != v {
			// NaN equals no value: it gets no posting list, so In and the
			// ordered queries never select it and NotIn always does.
			continue
		}
		pl, ok := m.postings[v]
		if !ok {
			pl = roaring.New()
			m.postings[v] = pl
			m.distinct = append(m.distinct, v)
		}
		pl.Add(uint32(offset))
	}

	sort.Slice(m.distinct, func(i, j int) bool {
		return less(m.distinct[i], m.distinct[j])
	})

	return m
}

// Count implements ScalarIndex.
func (m *Memory[T]) Count() int64 {
	return int64(len(m.values))
}

// ReverseLookup implements ScalarIndex.
func (m *Memory[T]) ReverseLookup(offset int64) (T, error) {
	if offset < 0 || offset >= int64(len(m.values)) {
		var zero T
		return zero, ErrOffsetOutOfRange
	}
	return m.values[offset], nil
}

// In implements ScalarIndex.
func (m *Memory[T]) In(vals []T) *bitset.BitSet {
	acc := roaring.New()
	for _, v := range vals {
		if pl, ok := m.postings[v]; ok {
			acc.Or(pl)
		}
	}
	return m.densify(acc)
}

// NotIn implements ScalarIndex.
func (m *Memory[T]) NotIn(vals []T) *bitset.BitSet {
	res := m.In(vals)
	res.Flip()
	return res
}

// Range implements ScalarIndex.
func (m *Memory[T]) Range(val T, op types.OpType) (*bitset.BitSet, error) {
	n := len(m.distinct)
	// first distinct >= val and first distinct > val
	ge := sort.Search(n, func(i int) bool { return !less(m.distinct[i], val) })
	gt := sort.Search(n, func(i int) bool { return less(val, m.distinct[i]) })

	switch op {
	case types.OpEqual:
		return m.In([]T{val}), nil
	case types.OpNotEqual:
		return m.NotIn([]T{val}), nil
	case types.OpLessThan:
		return m.orRange(0, ge), nil
	case types.OpLessEqual:
		return m.orRange(0, gt), nil
	case types.OpGreaterThan:
		return m.orRange(gt, n), nil
	case types.OpGreaterEqual:
		return m.orRange(ge, n), nil
	default:
		return nil, ErrUnsupportedOp
	}
}

// RangeBetween implements ScalarIndex.
func (m *Memory[T]) RangeBetween(lo T, loInc bool, hi T, hiInc bool) *bitset.BitSet {
	n := len(m.distinct)

	start := sort.Search(n, func(i int) bool { return !less(m.distinct[i], lo) })
	if !loInc {
		start = sort.Search(n, func(i int) bool { return less(lo, m.distinct[i]) })
	}

	end := sort.Search(n, func(i int) bool { return less(hi, m.distinct[i]) })
	if !hiInc {
		end = sort.Search(n, func(i int) bool { return !less(m.distinct[i], hi) })
	}

	if start >= end {
		return bitset.New(m.Count())
	}
	return m.orRange(start, end)
}

// Query implements ScalarIndex.
func (m *Memory[T]) Query(prefix string) (*bitset.BitSet, error) {
	distinct, ok := any(m.distinct).([]string)
	if !ok {
		return nil, ErrNotStringIndex
	}

	acc := roaring.New()
	start := sort.SearchStrings(distinct, prefix)
	for i := start; i < len(distinct) && strings.HasPrefix(distinct[i], prefix); i++ {
		acc.Or(m.postings[any(distinct[i]).(T)])
	}
	return m.densify(acc), nil
}

// orRange unions the postings of distinct[start:end) into a dense bitset.
func (m *Memory[T]) orRange(start, end int) *bitset.BitSet {
	acc := roaring.New()
	for i := start; i < end; i++ {
		acc.Or(m.postings[m.distinct[i]])
	}
	return m.densify(acc)
}

func (m *Memory[T]) densify(acc *roaring.Bitmap) *bitset.BitSet {
	res := bitset.New(m.Count())
	it := acc.Iterator()
	for it.HasNext() {
		res.Set(int64(it.Next()))
	}
	return res
}

// less orders two elements of the same scalar type. Bool orders false
// before true.
func less[T types.Element](a, b T) bool {
	switch av := any(a).(type) {
	case bool:
		return !av && any(b).(bool)
	case int8:
		return av < any(b).(int8)
	case int16:
		return av < any(b).(int16)
	case int32:
		return av < any(b).(int32)
	case int64:
		return av < any(b).(int64)
	case float32:
		return av < any(b).(float32)
	case float64:
		return av < any(b).(float64)
	case string:
		return av < any(b).(string)
	default:
		return false
	}
}
