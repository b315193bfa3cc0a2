package expr

import (
	"slices"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/types"
)

// Expr is the interface implemented by every expression variant.
type Expr interface {
	Accept(v Visitor) (*bitset.BitSet, error)
}

// Visitor consumes expression variants and returns a bitset per subtree.
type Visitor interface {
	VisitLogicalUnary(e *LogicalUnary) (*bitset.BitSet, error)
	VisitLogicalBinary(e *LogicalBinary) (*bitset.BitSet, error)
	VisitUnaryRange(e *UnaryRange) (*bitset.BitSet, error)
	VisitBinaryRange(e *BinaryRange) (*bitset.BitSet, error)
	VisitBinaryArithOpEvalRange(e *BinaryArithOpEvalRange) (*bitset.BitSet, error)
	VisitTerm(e *Term) (*bitset.BitSet, error)
	VisitCompare(e *Compare) (*bitset.BitSet, error)
	VisitUdf(e *Udf) (*bitset.BitSet, error)
}

// UnaryLogicalOp enumerates unary logical combinators.
type UnaryLogicalOp uint8

const (
	LogicalNot UnaryLogicalOp = iota + 1
)

// BinaryLogicalOp enumerates binary logical combinators.
// Minus is A AND NOT B.
type BinaryLogicalOp uint8

const (
	LogicalAnd BinaryLogicalOp = iota + 1
	LogicalOr
	LogicalXor
	LogicalMinus
)

// LogicalUnary negates its child.
type LogicalUnary struct {
	Op    UnaryLogicalOp
	Child Expr
}

// Accept implements Expr.
func (e *LogicalUnary) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitLogicalUnary(e)
}

// LogicalBinary combines two children with a bitwise logical operator.
type LogicalBinary struct {
	Op    BinaryLogicalOp
	Left  Expr
	Right Expr
}

// Accept implements Expr.
func (e *LogicalBinary) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitLogicalBinary(e)
}

// UnaryRange compares a column against a single constant.
type UnaryRange struct {
	Field types.FieldID
	Type  types.ElementType
	Op    types.OpType
	Value types.Value
}

// Accept implements Expr.
func (e *UnaryRange) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitUnaryRange(e)
}

// BinaryRange tests a column against an interval. An empty interval yields
// an all-false result; lower <= upper is not required.
type BinaryRange struct {
	Field          types.FieldID
	Type           types.ElementType
	Lower          types.Value
	Upper          types.Value
	LowerInclusive bool
	UpperInclusive bool
}

// Accept implements Expr.
func (e *BinaryRange) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitBinaryRange(e)
}

// BinaryArithOpEvalRange compares the result of column-constant arithmetic
// against a constant: (x ArithOp RightOperand) Op Value.
type BinaryArithOpEvalRange struct {
	Field        types.FieldID
	Type         types.ElementType
	ArithOp      types.ArithOp
	RightOperand types.Value
	Op           types.OpType
	Value        types.Value
}

// Accept implements Expr.
func (e *BinaryArithOpEvalRange) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitBinaryArithOpEvalRange(e)
}

// Term tests column membership in a constant set. Terms are sorted and
// deduplicated; use NewTerm to construct one from raw scalars.
type Term struct {
	Field types.FieldID
	Type  types.ElementType
	Terms []types.Value
}

// NewTerm builds a Term over the given scalars, sorting and deduplicating
// them.
func NewTerm[T types.Element](field types.FieldID, vals []T) *Term {
	terms := make([]types.Value, 0, len(vals))
	for _, v := range vals {
		terms = append(terms, types.ValueOf(v))
	}
	slices.SortFunc(terms, types.Value.Compare)
	terms = slices.CompactFunc(terms, func(a, b types.Value) bool {
		return a.Compare(b) == 0
	})
	return &Term{
		Field: field,
		Type:  types.ElementTypeOf[T](),
		Terms: terms,
	}
}

// Accept implements Expr.
func (e *Term) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitTerm(e)
}

// Compare tests two columns of the same segment row against each other.
type Compare struct {
	LeftField  types.FieldID
	LeftType   types.ElementType
	RightField types.FieldID
	RightType  types.ElementType
	Op         types.OpType
}

// Accept implements Expr.
func (e *Compare) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitCompare(e)
}

// UdfArg is one argument of a UDF call: either a column reference or a
// literal, with the WASM-facing declared type.
type UdfArg struct {
	IsField bool
	Field   types.FieldID
	Literal types.Value
	Type    types.ElementType
}

// FieldArg returns a UdfArg referencing a column.
func FieldArg(field types.FieldID, t types.ElementType) UdfArg {
	return UdfArg{IsField: true, Field: field, Type: t}
}

// LiteralArg returns a UdfArg carrying a literal.
func LiteralArg(v types.Value) UdfArg {
	return UdfArg{Literal: v, Type: v.Kind()}
}

// Udf invokes a registered WebAssembly function once per row. WasmBody, if
// non-empty, is a base64-encoded WAT module registered under FuncName on
// first use.
type Udf struct {
	FuncName string
	WasmBody string
	Args     []UdfArg
}

// Accept implements Expr.
func (e *Udf) Accept(v Visitor) (*bitset.BitSet, error) {
	return v.VisitUdf(e)
}
