package segment

import (
	"fmt"

	"github.com/hupe1980/scalargo/types"
)

// Field describes one scalar column of a segment.
type Field struct {
	ID      types.FieldID
	Name    string
	Type    types.ElementType
	Primary bool
}

// Schema is an ordered field table with at most one primary field.
type Schema struct {
	fields  []Field
	byID    map[types.FieldID]int
	primary int
}

// NewSchema builds a Schema from the given fields, preserving order.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		byID:    make(map[types.FieldID]int, len(fields)),
		primary: -1,
	}
	for i, f := range fields {
		if !f.Type.Valid() {
			return nil, fmt.Errorf("schema: field %q has invalid type", f.Name)
		}
		if _, ok := s.byID[f.ID]; ok {
			return nil, fmt.Errorf("schema: duplicate field id %d", f.ID)
		}
		if f.Primary {
			if s.primary >= 0 {
				return nil, fmt.Errorf("schema: multiple primary fields")
			}
			if !f.Type.PrimaryKeyEligible() {
				return nil, fmt.Errorf("schema: field %q of type %s cannot be primary", f.Name, f.Type)
			}
			s.primary = i
		}
		s.byID[f.ID] = i
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error, for tests and fixtures.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// FieldByID returns the field with the given id.
func (s *Schema) FieldByID(id types.FieldID) (Field, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// PrimaryField returns the primary field, if one is declared.
func (s *Schema) PrimaryField() (Field, bool) {
	if s.primary < 0 {
		return Field{}, false
	}
	return s.fields[s.primary], true
}
