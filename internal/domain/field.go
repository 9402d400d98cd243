package domain

import "fmt"

// FieldType is the payload index type of a field. Its string value is sent
// verbatim as the field_schema in index requests.
type FieldType string

// Field type constants.
const (
	// FieldText is a full-text indexed field.
	FieldText FieldType = "text"
	// FieldKeyword is an exact-match field.
	FieldKeyword FieldType = "keyword"
	// FieldInteger is a numeric field.
	FieldInteger FieldType = "integer"
	// FieldJSON is an opaque JSON blob field.
	FieldJSON FieldType = "json"
	// FieldKeywordArray is an exact-match array field.
	FieldKeywordArray FieldType = "keyword[]"
)

// IsValid checks if the field type is supported.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldText, FieldKeyword, FieldInteger, FieldJSON, FieldKeywordArray:
		return true
	}
	return false
}

// Field is an immutable value object describing an indexed payload field.
type Field struct {
	name      string
	fieldType FieldType
}

// NewField validates and creates a Field.
// Name must be non-empty, max 64 chars. Type must be a supported FieldType.
func NewField(name string, ft FieldType) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("%w: field name is required", ErrInvalidSpec)
	}
	if len(name) > 64 {
		return Field{}, fmt.Errorf("%w: field name %q too long (max 64)", ErrInvalidSpec, name)
	}
	if !ft.IsValid() {
		return Field{}, fmt.Errorf("%w: invalid field type %q for %q", ErrInvalidSpec, ft, name)
	}
	return Field{name: name, fieldType: ft}, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldType returns the field's payload index type.
func (f Field) FieldType() FieldType { return f.fieldType }
