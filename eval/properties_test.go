package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

func evalBits(t *testing.T, seg segment.Segment, e expr.Expr) *bitset.BitSet {
	t.Helper()
	ev, err := New(seg, types.MaxTimestamp)
	require.NoError(t, err)
	res, err := ev.Evaluate(e)
	require.NoError(t, err)
	require.Equal(t, seg.RowCount(), res.Len())
	return res
}

func ageGt(v int32) *expr.UnaryRange {
	return &expr.UnaryRange{Field: ageField, Type: types.Int32, Op: types.OpGreaterThan, Value: types.Int32Value(v)}
}

func ageLe(v int32) *expr.UnaryRange {
	return &expr.UnaryRange{Field: ageField, Type: types.Int32, Op: types.OpLessEqual, Value: types.Int32Value(v)}
}

func TestProperty_NotIsFlip(t *testing.T) {
	seg := newAgeSegment(t, 2)

	plain := evalBits(t, seg, ageGt(15))
	notted := evalBits(t, seg, &expr.LogicalUnary{Op: expr.LogicalNot, Child: ageGt(15)})

	flipped := plain.Clone()
	flipped.Flip()
	require.True(t, notted.Equal(flipped))

	// double negation restores
	doubled := evalBits(t, seg, &expr.LogicalUnary{
		Op:    expr.LogicalNot,
		Child: &expr.LogicalUnary{Op: expr.LogicalNot, Child: ageGt(15)},
	})
	require.True(t, doubled.Equal(plain))
}

func TestProperty_LogicalBinaryMatchesBitsetAlgebra(t *testing.T) {
	seg := newAgeSegment(t, 2)

	a := ageGt(15)
	b := ageLe(25)
	av := evalBits(t, seg, a)
	bv := evalBits(t, seg, b)

	tests := []struct {
		name  string
		op    expr.BinaryLogicalOp
		apply func(l, r *bitset.BitSet)
	}{
		{"and", expr.LogicalAnd, func(l, r *bitset.BitSet) { l.And(r) }},
		{"or", expr.LogicalOr, func(l, r *bitset.BitSet) { l.Or(r) }},
		{"xor", expr.LogicalXor, func(l, r *bitset.BitSet) { l.Xor(r) }},
		{"minus", expr.LogicalMinus, func(l, r *bitset.BitSet) { l.AndNot(r) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalBits(t, seg, &expr.LogicalBinary{Op: tt.op, Left: a, Right: b})
			want := av.Clone()
			tt.apply(want, bv)
			require.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestProperty_IndexAndElementPathsAgree(t *testing.T) {
	exprs := []expr.Expr{
		ageGt(15),
		&expr.UnaryRange{Field: ageField, Type: types.Int32, Op: types.OpNotEqual, Value: types.Int32Value(20)},
		&expr.BinaryRange{
			Field: ageField, Type: types.Int32,
			Lower: types.Int32Value(10), Upper: types.Int32Value(25),
			LowerInclusive: true, UpperInclusive: false,
		},
		expr.NewTerm(ageField, []int32{20, 30}),
	}

	barriers := []struct {
		name  string
		data  int64
		index int64
	}{
		{"raw only", 2, 0},
		{"mixed", 1, 2},
		{"index only", 0, 2},
	}

	for _, e := range exprs {
		var want string
		for i, b := range barriers {
			seg := newAgeSegment(t, 2)
			require.NoError(t, seg.SetBarriers(ageField, b.data, b.index))
			got := evalBits(t, seg, e).String()
			if i == 0 {
				want = got
				continue
			}
			require.Equal(t, want, got, "barriers %s", b.name)
		}
	}
}

func TestProperty_ChunkLayoutIndependence(t *testing.T) {
	for _, spc := range []int64{1, 2, 4, 8} {
		seg := newAgeSegment(t, spc)
		require.Equal(t, "0111", evalBits(t, seg, ageGt(15)).String(), "size_per_chunk=%d", spc)
	}
}

func TestProperty_UnaryEqEqualsSingletonTerm(t *testing.T) {
	seg := newAgeSegment(t, 2)

	eq := evalBits(t, seg, &expr.UnaryRange{
		Field: ageField, Type: types.Int32, Op: types.OpEqual, Value: types.Int32Value(20),
	})
	term := evalBits(t, seg, expr.NewTerm(ageField, []int32{20}))
	require.True(t, eq.Equal(term))
}

func TestProperty_BinaryRangeEqualsAndOfUnary(t *testing.T) {
	seg := newAgeSegment(t, 2)

	rng := evalBits(t, seg, &expr.BinaryRange{
		Field: ageField, Type: types.Int32,
		Lower: types.Int32Value(15), Upper: types.Int32Value(25),
		LowerInclusive: true, UpperInclusive: true,
	})
	and := evalBits(t, seg, &expr.LogicalBinary{
		Op: expr.LogicalAnd,
		Left: &expr.UnaryRange{
			Field: ageField, Type: types.Int32, Op: types.OpGreaterEqual, Value: types.Int32Value(15),
		},
		Right: ageLe(25),
	})
	require.True(t, rng.Equal(and))
}

func TestProperty_EmptyIntervalIsAllFalse(t *testing.T) {
	seg := newAgeSegment(t, 2)

	got := evalBits(t, seg, &expr.BinaryRange{
		Field: ageField, Type: types.Int32,
		Lower: types.Int32Value(25), Upper: types.Int32Value(15),
		LowerInclusive: true, UpperInclusive: true,
	})
	require.Equal(t, "0000", got.String())
}

func TestProperty_PKTermEqualsUnaryEqUnion(t *testing.T) {
	seg := newAgeSegment(t, 2)

	// Term through the PK path and the equivalent Or of Eq predicates
	term := evalBits(t, seg, expr.NewTerm(idField, []int64{2, 4}))
	union := evalBits(t, seg, &expr.LogicalBinary{
		Op: expr.LogicalOr,
		Left: &expr.UnaryRange{
			Field: idField, Type: types.Int64, Op: types.OpEqual, Value: types.Int64Value(2),
		},
		Right: &expr.UnaryRange{
			Field: idField, Type: types.Int64, Op: types.OpEqual, Value: types.Int64Value(4),
		},
	})
	require.True(t, term.Equal(union))
}

func TestProperty_CompareAgainstIndexedChunks(t *testing.T) {
	schema := segment.MustSchema(
		segment.Field{ID: 1, Name: "a", Type: types.Int32},
		segment.Field{ID: 2, Name: "b", Type: types.Int32},
	)

	build := func(t *testing.T) *segment.InMemory {
		seg, err := segment.NewInMemory(schema, 2)
		require.NoError(t, err)
		require.NoError(t, segment.SetColumn(seg, 1, []int32{1, 3, 5, 2}))
		require.NoError(t, segment.SetColumn(seg, 2, []int32{2, 3, 4, 9}))
		return seg
	}

	cmp := &expr.Compare{
		LeftField: 1, LeftType: types.Int32,
		RightField: 2, RightType: types.Int32,
		Op: types.OpGreaterEqual,
	}

	raw := build(t)
	want := evalBits(t, raw, cmp).String()

	// left field served entirely by its index
	indexed := build(t)
	require.NoError(t, indexed.SetBarriers(1, 0, 2))
	require.Equal(t, want, evalBits(t, indexed, cmp).String())
}
