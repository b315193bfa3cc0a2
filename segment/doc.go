// Package segment exposes the read-only view of a data segment consumed by
// the evaluator: schema, chunk geometry, per-chunk raw spans and scalar
// indexes, and a visibility-filtered primary key lookup. An in-memory
// implementation is provided for embedding and tests.
package segment
