package scalargo_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scalargo"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

func newTestSegment(t *testing.T) *segment.InMemory {
	t.Helper()
	schema := segment.MustSchema(
		segment.Field{ID: 100, Name: "id", Type: types.Int64, Primary: true},
		segment.Field{ID: 101, Name: "age", Type: types.Int32},
	)
	seg, err := segment.NewInMemory(schema, 2)
	require.NoError(t, err)
	require.NoError(t, segment.SetColumn(seg, 100, []int64{1, 2, 3, 4}))
	require.NoError(t, segment.SetColumn(seg, 101, []int32{10, 20, 30, 20}))
	return seg
}

func TestEvaluate_Facade(t *testing.T) {
	seg := newTestSegment(t)

	mask, err := scalargo.Evaluate(seg, &expr.UnaryRange{
		Field: 101,
		Type:  types.Int32,
		Op:    types.OpGreaterThan,
		Value: types.Int32Value(15),
	}, types.MaxTimestamp)
	require.NoError(t, err)
	require.Equal(t, "0111", mask.String())
}

func TestEvaluate_ErrorKindsSurface(t *testing.T) {
	seg := newTestSegment(t)

	_, err := scalargo.Evaluate(seg, &expr.UnaryRange{
		Field: 999,
		Type:  types.Int32,
		Op:    types.OpEqual,
		Value: types.Int32Value(1),
	}, types.MaxTimestamp)
	require.ErrorIs(t, err, scalargo.ErrSchemaMismatch)
}

func TestEvaluate_WithLogger(t *testing.T) {
	seg := newTestSegment(t)

	var buf bytes.Buffer
	logger := scalargo.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	_, err := scalargo.Evaluate(seg, expr.NewTerm(types.FieldID(100), []int64{2}),
		types.MaxTimestamp, scalargo.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "evaluate done")
}
