package scalargo_test

import (
	"fmt"

	"github.com/hupe1980/scalargo"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/segment"
	"github.com/hupe1980/scalargo/types"
)

func Example() {
	schema := segment.MustSchema(
		segment.Field{ID: 100, Name: "id", Type: types.Int64, Primary: true},
		segment.Field{ID: 101, Name: "age", Type: types.Int32},
	)

	seg, err := segment.NewInMemory(schema, 2)
	if err != nil {
		panic(err)
	}
	if err := segment.SetColumn(seg, 100, []int64{1, 2, 3, 4}); err != nil {
		panic(err)
	}
	if err := segment.SetColumn(seg, 101, []int32{10, 20, 30, 20}); err != nil {
		panic(err)
	}

	// age > 15 AND id IN (2, 4)
	pred := &expr.LogicalBinary{
		Op: expr.LogicalAnd,
		Left: &expr.UnaryRange{
			Field: 101,
			Type:  types.Int32,
			Op:    types.OpGreaterThan,
			Value: types.Int32Value(15),
		},
		Right: expr.NewTerm(100, []int64{2, 4}),
	}

	mask, err := scalargo.Evaluate(seg, pred, types.MaxTimestamp)
	if err != nil {
		panic(err)
	}
	fmt.Println(mask)
	// Output: 0101
}
