// Package scalargo is the scalar predicate evaluation core of a
// vector-database segment query engine.
//
// It evaluates a tree-shaped logical predicate over the scalar columns of
// a single data segment and produces a row-aligned boolean selection mask.
// Execution is chunked: each chunk of a column is served either from its
// raw span or from a pre-built scalar index, depending on which
// representations the segment has materialized. Predicates may also call
// user-defined functions expressed as WebAssembly modules, invoked once
// per row with typed arguments.
//
// # Quick Start
//
//	schema := segment.MustSchema(
//	    segment.Field{ID: 100, Name: "id", Type: types.Int64, Primary: true},
//	    segment.Field{ID: 101, Name: "age", Type: types.Int32},
//	)
//	seg, _ := segment.NewInMemory(schema, 2)
//	segment.SetColumn(seg, 100, []int64{1, 2, 3, 4})
//	segment.SetColumn(seg, 101, []int32{10, 20, 30, 20})
//
//	mask, _ := scalargo.Evaluate(seg, &expr.UnaryRange{
//	    Field: 101,
//	    Type:  types.Int32,
//	    Op:    types.OpGreaterThan,
//	    Value: types.Int32Value(15),
//	}, types.MaxTimestamp)
//	fmt.Println(mask) // 0111
//
// The mask's length always equals the segment row count; composing it
// with vector-similarity results is the caller's concern.
//
// # Key Properties
//
//   - Index path and raw-scan path produce identical results
//   - Logical operators never short-circuit; both children always run
//   - Term predicates on the primary key honor the read timestamp
//   - All invariant violations abort evaluation with a typed error kind
package scalargo
