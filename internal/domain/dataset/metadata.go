package dataset

import "fmt"

// MetadataType is the value type of a metadata property.
type MetadataType string

const (
	// MetadataTerms holds discrete string values.
	MetadataTerms MetadataType = "terms"
	// MetadataInteger holds integer values.
	MetadataInteger MetadataType = "integer"
	// MetadataFloat holds float values.
	MetadataFloat MetadataType = "float"
)

// IsValid checks if the metadata type is supported.
func (t MetadataType) IsValid() bool {
	return t == MetadataTerms || t == MetadataInteger || t == MetadataFloat
}

// Numeric reports whether values of this type are filterable by range.
func (t MetadataType) Numeric() bool {
	return t == MetadataInteger || t == MetadataFloat
}

// MetadataProperty is a typed metadata slot declared on a dataset.
// Terms properties may restrict allowed values; numeric properties may
// carry min/max bounds.
type MetadataProperty struct {
	name         string
	metadataType MetadataType
	values       []string
	min, max     *float64
}

// NewMetadataProperty validates and creates a MetadataProperty.
func NewMetadataProperty(name string, metadataType MetadataType, values []string, min, max *float64) (MetadataProperty, error) {
	if name == "" {
		return MetadataProperty{}, fmt.Errorf("metadata property name is required")
	}
	if !metadataType.IsValid() {
		return MetadataProperty{}, fmt.Errorf("invalid metadata type: %q", metadataType)
	}
	if metadataType == MetadataTerms && (min != nil || max != nil) {
		return MetadataProperty{}, fmt.Errorf("terms property %q cannot have numeric bounds", name)
	}
	if metadataType != MetadataTerms && len(values) > 0 {
		return MetadataProperty{}, fmt.Errorf("numeric property %q cannot have allowed values", name)
	}
	if min != nil && max != nil && *min > *max {
		return MetadataProperty{}, fmt.Errorf("property %q min exceeds max", name)
	}
	return MetadataProperty{name: name, metadataType: metadataType, values: values, min: min, max: max}, nil
}

// Name returns the property name.
func (p MetadataProperty) Name() string { return p.name }

// Type returns the value type.
func (p MetadataProperty) Type() MetadataType { return p.metadataType }

// Values returns the allowed values (terms properties only).
func (p MetadataProperty) Values() []string { return p.values }

// Min returns the lower bound, if any.
func (p MetadataProperty) Min() *float64 { return p.min }

// Max returns the upper bound, if any.
func (p MetadataProperty) Max() *float64 { return p.max }
