// Package expr defines the immutable expression tree over the scalar
// columns of a segment. Nodes are owned by the caller and consumed by a
// Visitor that produces a row-aligned bitset per subtree.
package expr
