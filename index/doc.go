// Package index defines the per-chunk scalar index contract consumed by
// the evaluator, and an in-memory implementation backed by roaring posting
// lists over a sorted value dictionary.
package index
