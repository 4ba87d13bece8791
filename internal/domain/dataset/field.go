package dataset

import "fmt"

// FieldType is the content type of a record field.
type FieldType string

const (
	// FieldText holds plain or markdown text.
	FieldText FieldType = "text"
	// FieldImage holds an image URL or data URI.
	FieldImage FieldType = "image"
	// FieldChat holds a list of chat turns.
	FieldChat FieldType = "chat"
)

// IsValid checks if the field type is supported.
func (t FieldType) IsValid() bool {
	return t == FieldText || t == FieldImage || t == FieldChat
}

// Searchable reports whether the field carries full-text searchable content.
// Only text fields are indexed for text queries.
func (t FieldType) Searchable() bool { return t == FieldText }

// Field is a named record field declared on a dataset.
type Field struct {
	name      string
	fieldType FieldType
}

// NewField validates and creates a Field.
func NewField(name string, fieldType FieldType) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if !fieldType.IsValid() {
		return Field{}, fmt.Errorf("invalid field type: %q", fieldType)
	}
	return Field{name: name, fieldType: fieldType}, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Type returns the field content type.
func (f Field) Type() FieldType { return f.fieldType }
