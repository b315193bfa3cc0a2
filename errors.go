package scalargo

import (
	"github.com/hupe1980/scalargo/eval"
)

// Error kinds surfaced by evaluation, re-exported at the API boundary.
// All of them abort the evaluation they occur in; none are recoverable
// locally. Test with errors.Is.
var (
	// ErrSchemaMismatch indicates a declared element type differing from the
	// schema's, or an unknown field id.
	ErrSchemaMismatch = eval.ErrSchemaMismatch

	// ErrUnsupportedOperator indicates an operator invalid for the variant
	// or element type.
	ErrUnsupportedOperator = eval.ErrUnsupportedOperator

	// ErrUnsupportedType indicates a variant applied to an element type
	// outside its domain.
	ErrUnsupportedType = eval.ErrUnsupportedType

	// ErrInvariantViolation indicates a bitset size mismatch, barrier
	// inconsistency, or an assembled length differing from the row count.
	ErrInvariantViolation = eval.ErrInvariantViolation

	// ErrUDFNotFound indicates a UDF call against an unregistered name.
	ErrUDFNotFound = eval.ErrUDFNotFound

	// ErrUDFCompile indicates a UDF body that failed to register.
	ErrUDFCompile = eval.ErrUDFCompile

	// ErrIncompatibleOperands indicates a field-to-field comparison across
	// unrelated element types.
	ErrIncompatibleOperands = eval.ErrIncompatibleOperands

	// ErrArithmeticFault indicates integer division or modulo by zero.
	ErrArithmeticFault = eval.ErrArithmeticFault
)
