package dataset

import "fmt"

// VectorSettings is a named, fixed-dimensionality embedding slot declared
// on a dataset. Records associate vector values with it by name.
type VectorSettings struct {
	name       string
	dimensions int
}

// NewVectorSettings validates and creates VectorSettings.
func NewVectorSettings(name string, dimensions int) (VectorSettings, error) {
	if name == "" {
		return VectorSettings{}, fmt.Errorf("vector settings name is required")
	}
	if dimensions <= 0 {
		return VectorSettings{}, fmt.Errorf("vector settings %q dimensions must be positive", name)
	}
	return VectorSettings{name: name, dimensions: dimensions}, nil
}

// Name returns the vector settings name.
func (v VectorSettings) Name() string { return v.name }

// Dimensions returns the vector dimensionality.
func (v VectorSettings) Dimensions() int { return v.dimensions }
