// Package types defines the scalar data model shared by the expression
// tree, the segment accessor and the evaluator: element types, operator
// codes, field and timestamp identifiers, and the tagged Value union.
package types
