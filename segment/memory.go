package segment

import (
	"fmt"

	"github.com/hupe1980/scalargo/index"
	"github.com/hupe1980/scalargo/types"
)

// InMemory is a Segment backed by plain columns. Columns are installed
// with SetColumn; barriers start fully raw (data barrier at NumChunks,
// index barrier at zero) and are moved with SetBarriers, which builds the
// chunk indexes it exposes. Row timestamps gate primary key visibility.
type InMemory struct {
	schema       *Schema
	sizePerChunk int64
	rowCount     int64
	cols         map[types.FieldID]*column
	timestamps   []types.Timestamp
	pkInts       map[int64]int64
	pkStrings    map[string]int64
}

type column struct {
	field        Field
	dataBarrier  int64
	indexBarrier int64
	span         func(chunk int64) any
	buildIndex   func(chunk int64) any
	indexes      []any
}

// NewInMemory creates an empty in-memory segment with the given chunk
// width.
func NewInMemory(schema *Schema, sizePerChunk int64) (*InMemory, error) {
	if sizePerChunk <= 0 {
		return nil, fmt.Errorf("segment: size per chunk must be positive, got %d", sizePerChunk)
	}
	return &InMemory{
		schema:       schema,
		sizePerChunk: sizePerChunk,
		cols:         make(map[types.FieldID]*column),
	}, nil
}

// SetColumn installs the full column for a field. Every column must have
// the same length; the first installed column fixes the row count.
func SetColumn[T types.Element](s *InMemory, field types.FieldID, values []T) error {
	f, ok := s.schema.FieldByID(field)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	if got := types.ElementTypeOf[T](); got != f.Type {
		return fmt.Errorf("%w: field %q is %s, column is %s", ErrTypeMismatch, f.Name, f.Type, got)
	}
	if len(s.cols) == 0 {
		s.rowCount = int64(len(values))
	} else if int64(len(values)) != s.rowCount {
		return fmt.Errorf("segment: column length %d does not match row count %d", len(values), s.rowCount)
	}

	data := make([]T, len(values))
	copy(data, values)

	col := &column{
		field:       f,
		dataBarrier: numChunksFor(s.rowCount, s.sizePerChunk),
	}
	col.span = func(chunk int64) any {
		lo, hi := s.chunkBounds(chunk)
		return data[lo:hi]
	}
	col.buildIndex = func(chunk int64) any {
		lo, hi := s.chunkBounds(chunk)
		return index.NewMemory(data[lo:hi])
	}
	s.cols[field] = col

	if f.Primary {
		switch pk := any(data).(type) {
		case []int64:
			s.pkInts = make(map[int64]int64, len(pk))
			for off, id := range pk {
				s.pkInts[id] = int64(off)
			}
		case []string:
			s.pkStrings = make(map[string]int64, len(pk))
			for off, id := range pk {
				s.pkStrings[id] = int64(off)
			}
		}
	}
	return nil
}

// SetRowTimestamps installs per-row insert timestamps used by SearchIDs
// visibility. Without them every row is visible.
func (s *InMemory) SetRowTimestamps(ts []types.Timestamp) error {
	if int64(len(ts)) != s.rowCount {
		return fmt.Errorf("segment: timestamp count %d does not match row count %d", len(ts), s.rowCount)
	}
	s.timestamps = make([]types.Timestamp, len(ts))
	copy(s.timestamps, ts)
	return nil
}

// SetBarriers moves a field's barriers, building scalar indexes for chunks
// below the index barrier. max(dataBarrier, indexBarrier) must equal
// NumChunks.
func (s *InMemory) SetBarriers(field types.FieldID, dataBarrier, indexBarrier int64) error {
	col, ok := s.cols[field]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	nc := s.NumChunks()
	if dataBarrier < 0 || dataBarrier > nc || indexBarrier < 0 || indexBarrier > nc {
		return fmt.Errorf("segment: barriers (%d, %d) out of range for %d chunks", dataBarrier, indexBarrier, nc)
	}
	if max(dataBarrier, indexBarrier) != nc {
		return fmt.Errorf("segment: max(data barrier %d, index barrier %d) != %d chunks", dataBarrier, indexBarrier, nc)
	}

	col.dataBarrier = dataBarrier
	col.indexBarrier = indexBarrier
	col.indexes = make([]any, nc)
	for chunk := int64(0); chunk < indexBarrier; chunk++ {
		col.indexes[chunk] = col.buildIndex(chunk)
	}
	return nil
}

// Schema implements Segment.
func (s *InMemory) Schema() *Schema {
	return s.schema
}

// RowCount implements Segment.
func (s *InMemory) RowCount() int64 {
	return s.rowCount
}

// SizePerChunk implements Segment.
func (s *InMemory) SizePerChunk() int64 {
	return s.sizePerChunk
}

// NumChunks implements Segment.
func (s *InMemory) NumChunks() int64 {
	return numChunksFor(s.rowCount, s.sizePerChunk)
}

// NumChunkData implements Segment.
func (s *InMemory) NumChunkData(field types.FieldID) int64 {
	if col, ok := s.cols[field]; ok {
		return col.dataBarrier
	}
	return 0
}

// NumChunkIndex implements Segment.
func (s *InMemory) NumChunkIndex(field types.FieldID) int64 {
	if col, ok := s.cols[field]; ok {
		return col.indexBarrier
	}
	return 0
}

// ChunkData implements Segment.
func (s *InMemory) ChunkData(field types.FieldID, chunk int64) (any, error) {
	col, ok := s.cols[field]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	if chunk < 0 || chunk >= s.NumChunks() {
		return nil, fmt.Errorf("segment: chunk %d out of range", chunk)
	}
	if chunk >= col.dataBarrier {
		return nil, fmt.Errorf("%w: field %q chunk %d has no raw data", ErrChunkUnavailable, col.field.Name, chunk)
	}
	return col.span(chunk), nil
}

// ChunkScalarIndex implements Segment.
func (s *InMemory) ChunkScalarIndex(field types.FieldID, chunk int64) (any, error) {
	col, ok := s.cols[field]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	if chunk < 0 || chunk >= s.NumChunks() {
		return nil, fmt.Errorf("segment: chunk %d out of range", chunk)
	}
	if chunk >= col.indexBarrier || col.indexes[chunk] == nil {
		return nil, fmt.Errorf("%w: field %q chunk %d has no index", ErrChunkUnavailable, col.field.Name, chunk)
	}
	return col.indexes[chunk], nil
}

// SearchIDs implements Segment.
func (s *InMemory) SearchIDs(ids types.IDList, ts types.Timestamp) (types.IDList, []int64, error) {
	pk, ok := s.schema.PrimaryField()
	if !ok {
		return types.IDList{}, nil, ErrNoPrimaryKey
	}

	var (
		matched types.IDList
		offsets []int64
	)
	switch pk.Type {
	case types.Int64:
		for _, id := range ids.Ints {
			off, ok := s.pkInts[id]
			if !ok || !s.visible(off, ts) {
				continue
			}
			matched.Ints = append(matched.Ints, id)
			offsets = append(offsets, off)
		}
	case types.String:
		for _, id := range ids.Strings {
			off, ok := s.pkStrings[id]
			if !ok || !s.visible(off, ts) {
				continue
			}
			matched.Strings = append(matched.Strings, id)
			offsets = append(offsets, off)
		}
	default:
		return types.IDList{}, nil, ErrNoPrimaryKey
	}
	return matched, offsets, nil
}

func (s *InMemory) visible(offset int64, ts types.Timestamp) bool {
	if s.timestamps == nil {
		return true
	}
	return s.timestamps[offset] <= ts
}

func (s *InMemory) chunkBounds(chunk int64) (int64, int64) {
	lo := chunk * s.sizePerChunk
	hi := lo + s.sizePerChunk
	if hi > s.rowCount {
		hi = s.rowCount
	}
	return lo, hi
}

func numChunksFor(rowCount, sizePerChunk int64) int64 {
	return (rowCount + sizePerChunk - 1) / sizePerChunk
}
