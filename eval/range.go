package eval

import (
	"fmt"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

// indexQuery answers a predicate for one whole chunk from its scalar
// index.
type indexQuery[T types.Element] func(ix index.ScalarIndex[T]) (*bitset.BitSet, error)

// elementPredicate answers a predicate for one element.
type elementPredicate[T types.Element] func(x T) bool

// execRange is the index-first chunked skeleton shared by the range and
// term dispatchers: chunks below the index barrier are answered by the
// index query, the rest by scanning the raw span.
func execRange[T types.Element](e *Evaluator, field types.FieldID, ixQuery indexQuery[T], pred elementPredicate[T]) (*bitset.BitSet, error) {
	idxBarrier := min(e.barriers(field).index, e.numChunks)
	chunks := make([]*bitset.BitSet, 0, e.numChunks)

	for chunkID := int64(0); chunkID < idxBarrier; chunkID++ {
		ix, err := segment.Index[T](e.seg, field, chunkID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		bs, err := ixQuery(ix)
		if err != nil {
			return nil, err
		}
		if bs.Len() != e.chunkSize(chunkID) {
			return nil, fmt.Errorf("%w: index result size %d for chunk %d, want %d",
				ErrInvariantViolation, bs.Len(), chunkID, e.chunkSize(chunkID))
		}
		chunks = append(chunks, bs)
	}

	for chunkID := idxBarrier; chunkID < e.numChunks; chunkID++ {
		bs, err := scanChunk(e, field, chunkID, pred)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, bs)
	}

	return assemble(e, chunks)
}

// execDataRange is the data-first chunked skeleton used where raw values
// are required even when an index exists: chunks below the data barrier
// are scanned, the rest reconstituted value-by-value via ReverseLookup.
func execDataRange[T types.Element](e *Evaluator, field types.FieldID, pred elementPredicate[T]) (*bitset.BitSet, error) {
	bars := e.barriers(field)
	if err := e.checkBarriers(field, bars); err != nil {
		return nil, err
	}
	chunks := make([]*bitset.BitSet, 0, e.numChunks)

	for chunkID := int64(0); chunkID < bars.data; chunkID++ {
		bs, err := scanChunk(e, field, chunkID, pred)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, bs)
	}

	for chunkID := bars.data; chunkID < bars.index; chunkID++ {
		ix, err := segment.Index[T](e.seg, field, chunkID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		size := e.chunkSize(chunkID)
		if ix.Count() != size {
			return nil, fmt.Errorf("%w: index covers %d rows for chunk %d, want %d",
				ErrInvariantViolation, ix.Count(), chunkID, size)
		}
		bs := bitset.New(size)
		for offset := int64(0); offset < size; offset++ {
			v, err := ix.ReverseLookup(offset)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
			}
			bs.SetTo(offset, pred(v))
		}
		chunks = append(chunks, bs)
	}

	return assemble(e, chunks)
}

// scanChunk applies the element predicate over one raw chunk span.
func scanChunk[T types.Element](e *Evaluator, field types.FieldID, chunkID int64, pred elementPredicate[T]) (*bitset.BitSet, error) {
	span, err := segment.Data[T](e.seg, field, chunkID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	size := e.chunkSize(chunkID)
	if int64(len(span)) != size {
		return nil, fmt.Errorf("%w: span size %d for chunk %d, want %d",
			ErrInvariantViolation, len(span), chunkID, size)
	}

	bs := bitset.New(size)
	for i := int64(0); i < size; i++ {
		bs.SetTo(i, pred(span[i]))
	}
	return bs, nil
}

// checkBarriers rejects segments where neither representation covers every
// chunk of a field.
func (e *Evaluator) checkBarriers(field types.FieldID, bars barrierPair) error {
	if max(bars.data, bars.index) != e.numChunks {
		return fmt.Errorf("%w: field %d barriers (data %d, index %d) do not cover %d chunks",
			ErrInvariantViolation, field, bars.data, bars.index, e.numChunks)
	}
	return nil
}

func assemble(e *Evaluator, chunks []*bitset.BitSet) (*bitset.BitSet, error) {
	res := bitset.Assemble(chunks)
	if res.Len() != e.rowCount {
		return nil, fmt.Errorf("%w: assembled size %d not equal to row count %d",
			ErrInvariantViolation, res.Len(), e.rowCount)
	}
	return res, nil
}
