// Package dataset holds the immutable dataset schema snapshot the search
// subsystem validates and compiles queries against. The schema is owned by
// the relational layer; during a single query's lifetime it never changes.
package dataset

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Dataset is the schema snapshot aggregate: fields, questions, metadata
// properties, and vector settings, each with unique names per collection.
type Dataset struct {
	id             uuid.UUID
	name           string
	fields         []Field
	questions      []Question
	metadataProps  []MetadataProperty
	vectorSettings []VectorSettings
}

// New validates and creates a Dataset snapshot.
// Names must be unique within each collection.
func New(
	id uuid.UUID, name string,
	fields []Field, questions []Question,
	metadataProps []MetadataProperty, vectorSettings []VectorSettings,
) (Dataset, error) {
	if id == uuid.Nil {
		return Dataset{}, fmt.Errorf("dataset id is required")
	}
	if name == "" {
		return Dataset{}, fmt.Errorf("dataset name is required")
	}
	if !nameRegex.MatchString(name) {
		return Dataset{}, fmt.Errorf("dataset name must be alphanumeric with underscores and hyphens")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return Dataset{}, fmt.Errorf("duplicate field name: %s", f.Name())
		}
		seen[f.Name()] = true
	}
	seen = make(map[string]bool, len(questions))
	for _, q := range questions {
		if seen[q.Name()] {
			return Dataset{}, fmt.Errorf("duplicate question name: %s", q.Name())
		}
		seen[q.Name()] = true
	}
	seen = make(map[string]bool, len(metadataProps))
	for _, p := range metadataProps {
		if seen[p.Name()] {
			return Dataset{}, fmt.Errorf("duplicate metadata property name: %s", p.Name())
		}
		seen[p.Name()] = true
	}
	seen = make(map[string]bool, len(vectorSettings))
	for _, v := range vectorSettings {
		if seen[v.Name()] {
			return Dataset{}, fmt.Errorf("duplicate vector settings name: %s", v.Name())
		}
		seen[v.Name()] = true
	}

	return Dataset{
		id: id, name: name,
		fields: fields, questions: questions,
		metadataProps: metadataProps, vectorSettings: vectorSettings,
	}, nil
}

// ID returns the dataset identifier.
func (d Dataset) ID() uuid.UUID { return d.id }

// Name returns the dataset name.
func (d Dataset) Name() string { return d.name }

// Fields returns the declared record fields in order.
func (d Dataset) Fields() []Field { return d.fields }

// Questions returns the declared questions in order.
func (d Dataset) Questions() []Question { return d.questions }

// MetadataProperties returns the declared metadata properties in order.
func (d Dataset) MetadataProperties() []MetadataProperty { return d.metadataProps }

// VectorSettings returns the declared vector settings in order.
func (d Dataset) VectorSettings() []VectorSettings { return d.vectorSettings }

// FieldByName looks up a field by name.
func (d Dataset) FieldByName(name string) (Field, bool) {
	for _, f := range d.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return Field{}, false
}

// QuestionByName looks up a question by name.
func (d Dataset) QuestionByName(name string) (Question, bool) {
	for _, q := range d.questions {
		if q.Name() == name {
			return q, true
		}
	}
	return Question{}, false
}

// MetadataPropertyByName looks up a metadata property by name.
func (d Dataset) MetadataPropertyByName(name string) (MetadataProperty, bool) {
	for _, p := range d.metadataProps {
		if p.Name() == name {
			return p, true
		}
	}
	return MetadataProperty{}, false
}

// VectorSettingsByName looks up vector settings by name.
func (d Dataset) VectorSettingsByName(name string) (VectorSettings, bool) {
	for _, v := range d.vectorSettings {
		if v.Name() == name {
			return v, true
		}
	}
	return VectorSettings{}, false
}
