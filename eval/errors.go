package eval

import (
	"errors"
	"fmt"

	"github.com/hupe1980/scalargo/types"
)

var (
	// ErrSchemaMismatch indicates a declared element type differing from the
	// schema's, or an unknown field id.
	ErrSchemaMismatch = errors.New("eval: schema mismatch")

	// ErrUnsupportedOperator indicates an operator invalid for the variant
	// or element type.
	ErrUnsupportedOperator = errors.New("eval: unsupported operator")

	// ErrUnsupportedType indicates a variant applied to an element type
	// outside its domain.
	ErrUnsupportedType = errors.New("eval: unsupported element type")

	// ErrInvariantViolation indicates a bitset size mismatch, barrier
	// inconsistency, or an assembled length differing from the row count.
	ErrInvariantViolation = errors.New("eval: invariant violation")

	// ErrUDFNotFound indicates a UDF call against an unregistered name.
	ErrUDFNotFound = errors.New("eval: udf not found")

	// ErrUDFCompile indicates a UDF body that failed to register.
	ErrUDFCompile = errors.New("eval: udf compilation failed")

	// ErrIncompatibleOperands indicates a field-to-field comparison across
	// unrelated element types.
	ErrIncompatibleOperands = errors.New("eval: incompatible operands")

	// ErrArithmeticFault indicates integer division or modulo by zero.
	ErrArithmeticFault = errors.New("eval: arithmetic fault")
)

func valueKindMismatch(v types.Value, t types.ElementType) error {
	return fmt.Errorf("%w: value %s is not %s", ErrSchemaMismatch, v, t)
}
