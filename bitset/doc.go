// Package bitset implements a dense, fixed-length, word-packed boolean
// vector with the algebra the evaluator composes chunk results with:
// and/or/xor/minus, flip, and concatenation via Assemble.
package bitset
