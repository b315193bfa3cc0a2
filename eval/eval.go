package eval

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
	"github.com/hupe1980/scalargo/wasm"
)

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRegistry sets the WASM registry used for UDF predicates. Defaults to
// the process-wide registry.
func WithRegistry(r *wasm.Registry) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.registry = r
		}
	}
}

type barrierPair struct {
	data  int64
	index int64
}

// Evaluator walks a predicate tree over one segment. Row count and chunk
// geometry are snapshotted by New and each field's barriers on first
// access, so a segment materializing further chunks mid-call is not
// observed. An
// Evaluator is single-use per goroutine and retains no state between
// Evaluate calls beyond those snapshots.
type Evaluator struct {
	seg          segment.Segment
	ts           types.Timestamp
	rowCount     int64
	sizePerChunk int64
	numChunks    int64
	bars         map[types.FieldID]barrierPair
	registry     *wasm.Registry
	logger       *slog.Logger
}

// New creates an Evaluator over the segment at the given read timestamp.
func New(seg segment.Segment, ts types.Timestamp, opts ...Option) (*Evaluator, error) {
	rowCount := seg.RowCount()
	sizePerChunk := seg.SizePerChunk()
	if rowCount < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", ErrInvariantViolation, rowCount)
	}
	if sizePerChunk <= 0 {
		return nil, fmt.Errorf("%w: size per chunk %d", ErrInvariantViolation, sizePerChunk)
	}

	e := &Evaluator{
		seg:          seg,
		ts:           ts,
		rowCount:     rowCount,
		sizePerChunk: sizePerChunk,
		numChunks:    (rowCount + sizePerChunk - 1) / sizePerChunk,
		bars:         make(map[types.FieldID]barrierPair),
		registry:     wasm.Default(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate walks the tree and returns a bitset of length RowCount.
func (e *Evaluator) Evaluate(root expr.Expr) (*bitset.BitSet, error) {
	e.logger.Debug("evaluate start", "rows", e.rowCount, "chunks", e.numChunks)

	res, err := e.evalChild(root)
	if err != nil {
		e.logger.Debug("evaluate failed", "error", err)
		return nil, err
	}

	e.logger.Debug("evaluate done", "rows", e.rowCount, "selected", res.Count())
	return res, nil
}

// evalChild dispatches into the visitor and validates the subtree result.
func (e *Evaluator) evalChild(x expr.Expr) (*bitset.BitSet, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrInvariantViolation)
	}
	bs, err := x.Accept(e)
	if err != nil {
		return nil, err
	}
	if bs == nil || bs.Len() != e.rowCount {
		return nil, fmt.Errorf("%w: subtree result size not equal to row count", ErrInvariantViolation)
	}
	return bs, nil
}

// barriers snapshots a field's data and index barriers on first access.
func (e *Evaluator) barriers(field types.FieldID) barrierPair {
	if b, ok := e.bars[field]; ok {
		return b
	}
	b := barrierPair{
		data:  e.seg.NumChunkData(field),
		index: e.seg.NumChunkIndex(field),
	}
	e.bars[field] = b
	return b
}

// chunkSize returns the row count of one chunk; the last may be short.
func (e *Evaluator) chunkSize(chunkID int64) int64 {
	if chunkID == e.numChunks-1 {
		return e.rowCount - chunkID*e.sizePerChunk
	}
	return e.sizePerChunk
}

// fieldMeta resolves a field and checks the expression's declared type
// against the schema.
func (e *Evaluator) fieldMeta(field types.FieldID, declared types.ElementType) (segment.Field, error) {
	f, ok := e.seg.Schema().FieldByID(field)
	if !ok {
		return segment.Field{}, fmt.Errorf("%w: unknown field %d", ErrSchemaMismatch, field)
	}
	if f.Type != declared {
		return segment.Field{}, fmt.Errorf("%w: field %q is %s, expression declares %s",
			ErrSchemaMismatch, f.Name, f.Type, declared)
	}
	return f, nil
}

// VisitLogicalUnary implements expr.Visitor.
func (e *Evaluator) VisitLogicalUnary(x *expr.LogicalUnary) (*bitset.BitSet, error) {
	child, err := e.evalChild(x.Child)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case expr.LogicalNot:
		child.Flip()
		return child, nil
	default:
		return nil, fmt.Errorf("%w: invalid unary logical op %d", ErrUnsupportedOperator, x.Op)
	}
}

// VisitLogicalBinary implements expr.Visitor. Both children are always
// fully evaluated; no short-circuiting.
func (e *Evaluator) VisitLogicalBinary(x *expr.LogicalBinary) (*bitset.BitSet, error) {
	left, err := e.evalChild(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalChild(x.Right)
	if err != nil {
		return nil, err
	}
	if left.Len() != right.Len() {
		return nil, fmt.Errorf("%w: left size %d not equal to right size %d",
			ErrInvariantViolation, left.Len(), right.Len())
	}

	res := left
	switch x.Op {
	case expr.LogicalAnd:
		res.And(right)
	case expr.LogicalOr:
		res.Or(right)
	case expr.LogicalXor:
		res.Xor(right)
	case expr.LogicalMinus:
		res.AndNot(right)
	default:
		return nil, fmt.Errorf("%w: invalid binary logical op %d", ErrUnsupportedOperator, x.Op)
	}
	return res, nil
}
