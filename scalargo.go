package scalargo

import (
	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/eval"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

// Evaluate walks the predicate tree over one segment at the given read
// timestamp and returns a selection bitset whose length equals the
// segment's row count.
func Evaluate(seg segment.Segment, root expr.Expr, ts types.Timestamp, opts ...eval.Option) (*bitset.BitSet, error) {
	ev, err := eval.New(seg, ts, opts...)
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(root)
}

// WithLogger adapts a Logger into an evaluator option.
func WithLogger(l *Logger) eval.Option {
	if l == nil {
		return eval.WithLogger(nil)
	}
	return eval.WithLogger(l.Logger)
}
