package segment

import (
	"errors"
	"fmt"

	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/types"
)

var (
	// ErrUnknownField is returned for a field id outside the schema.
	ErrUnknownField = errors.New("segment: unknown field")

	// ErrChunkUnavailable is returned when the requested representation of a
	// chunk is not materialized (raw data beyond the data barrier, index
	// beyond the index barrier).
	ErrChunkUnavailable = errors.New("segment: chunk not materialized")

	// ErrTypeMismatch is returned when a typed accessor does not match the
	// column's element type.
	ErrTypeMismatch = errors.New("segment: column type mismatch")

	// ErrNoPrimaryKey is returned by SearchIDs on a segment without an
	// eligible primary field.
	ErrNoPrimaryKey = errors.New("segment: no primary key")
)

// Segment is the read-only view of one data segment. Implementations are
// thread-compatible, not thread-safe: one evaluation drives one segment
// from a single goroutine. Barriers may advance between evaluations but
// must not retreat during one.
type Segment interface {
	// Schema returns the segment's field table.
	Schema() *Schema

	// RowCount returns the number of rows.
	RowCount() int64

	// SizePerChunk returns the fixed chunk width; the last chunk may be
	// short.
	SizePerChunk() int64

	// NumChunks returns ceil(RowCount / SizePerChunk).
	NumChunks() int64

	// NumChunkData returns the field's data barrier: the count of chunks
	// with raw data materialized.
	NumChunkData(field types.FieldID) int64

	// NumChunkIndex returns the field's index barrier: the count of chunks
	// with a scalar index materialized.
	NumChunkIndex(field types.FieldID) int64

	// ChunkData returns the raw column span of one chunk as a []T. Use the
	// generic Data helper for the typed form.
	ChunkData(field types.FieldID, chunk int64) (any, error)

	// ChunkScalarIndex returns the chunk's scalar index as an
	// index.ScalarIndex[T]. Use the generic Index helper for the typed form.
	ChunkScalarIndex(field types.FieldID, chunk int64) (any, error)

	// SearchIDs resolves primary key values to row offsets, filtered by the
	// read timestamp. It returns the matched ids and their offsets.
	SearchIDs(ids types.IDList, ts types.Timestamp) (types.IDList, []int64, error)
}

// Data fetches one chunk's raw span with its static type.
func Data[T types.Element](s Segment, field types.FieldID, chunk int64) ([]T, error) {
	raw, err := s.ChunkData(field, chunk)
	if err != nil {
		return nil, err
	}
	span, ok := raw.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: field %d chunk %d holds %T", ErrTypeMismatch, field, chunk, raw)
	}
	return span, nil
}

// Index fetches one chunk's scalar index with its static type.
func Index[T types.Element](s Segment, field types.FieldID, chunk int64) (index.ScalarIndex[T], error) {
	raw, err := s.ChunkScalarIndex(field, chunk)
	if err != nil {
		return nil, err
	}
	ix, ok := raw.(index.ScalarIndex[T])
	if !ok {
		return nil, fmt.Errorf("%w: field %d chunk %d index is %T", ErrTypeMismatch, field, chunk, raw)
	}
	return ix, nil
}
