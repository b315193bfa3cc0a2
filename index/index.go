package index

import (
	"errors"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/types"
)

var (
	// ErrUnsupportedOp is returned for operators an index method cannot serve.
	ErrUnsupportedOp = errors.New("index: unsupported operator")

	// ErrNotStringIndex is returned when a prefix query hits a non-string index.
	ErrNotStringIndex = errors.New("index: prefix query requires a string index")

	// ErrOffsetOutOfRange is returned by ReverseLookup for an invalid offset.
	ErrOffsetOutOfRange = errors.New("index: offset out of range")
)

// ScalarIndex answers membership, range and prefix queries over one chunk
// of a scalar column. Every query result is a dense bitset of length
// Count(), aligned to the chunk's row offsets.
type ScalarIndex[T types.Element] interface {
	// In returns the rows whose value is any of vals.
	In(vals []T) *bitset.BitSet

	// NotIn returns the rows whose value is none of vals.
	NotIn(vals []T) *bitset.BitSet

	// Range returns the rows satisfying (value op val) for an ordering or
	// equality operator.
	Range(val T, op types.OpType) (*bitset.BitSet, error)

	// RangeBetween returns the rows inside the interval given by lo and hi
	// with per-bound inclusivity. An empty interval yields an all-false
	// result.
	RangeBetween(lo T, loInc bool, hi T, hiInc bool) *bitset.BitSet

	// Query returns the rows whose string value starts with prefix.
	Query(prefix string) (*bitset.BitSet, error)

	// ReverseLookup returns the value stored at the given chunk row offset.
	ReverseLookup(offset int64) (T, error)

	// Count returns the number of rows covered by the index.
	Count() int64
}
