// Package eval walks a scalar predicate tree over one segment and
// produces a row-aligned selection bitset. Evaluation iterates chunks,
// choosing the scalar-index path or the raw-scan path per chunk based on
// the field's materialization barriers, and assembles the per-chunk
// results in strict row order.
package eval
