// Package scope defines the tagged union of filter/sort targets. Every
// dispatch over Scope must be exhaustive over the four kinds and treat an
// unknown kind as a programming error, never a silent no-op.
package scope

import "fmt"

// Kind discriminates the scope variants.
type Kind string

const (
	// KindRecord targets intrinsic record attributes.
	KindRecord Kind = "record"
	// KindMetadata targets a metadata property.
	KindMetadata Kind = "metadata"
	// KindResponse targets response data, optionally per question.
	KindResponse Kind = "response"
	// KindSuggestion targets a question's suggestion.
	KindSuggestion Kind = "suggestion"
)

// Scope is the sealed union of filter/sort targets. Implemented only by
// the four variants in this package.
type Scope interface {
	Kind() Kind
	sealed()
}

// Record properties.
const (
	RecordPropertyID         = "id"
	RecordPropertyStatus     = "status"
	RecordPropertyInsertedAt = "inserted_at"
	RecordPropertyUpdatedAt  = "updated_at"
)

// Record targets an intrinsic record attribute. No schema existence check
// is needed beyond the property name itself.
type Record struct {
	property string
}

// NewRecord validates and creates a record scope.
func NewRecord(property string) (Record, error) {
	switch property {
	case RecordPropertyID, RecordPropertyStatus, RecordPropertyInsertedAt, RecordPropertyUpdatedAt:
		return Record{property: property}, nil
	}
	return Record{}, fmt.Errorf("unknown record property: %q", property)
}

// Property returns the record attribute name.
func (s Record) Property() string { return s.property }

// Kind returns KindRecord.
func (s Record) Kind() Kind { return KindRecord }

func (s Record) sealed() {}

// Metadata targets a metadata property by name. The name must resolve
// against the dataset schema.
type Metadata struct {
	property string
}

// NewMetadata validates and creates a metadata scope.
func NewMetadata(property string) (Metadata, error) {
	if property == "" {
		return Metadata{}, fmt.Errorf("metadata property is required")
	}
	return Metadata{property: property}, nil
}

// Property returns the metadata property name.
func (s Metadata) Property() string { return s.property }

// Kind returns KindMetadata.
func (s Metadata) Kind() Kind { return KindMetadata }

func (s Metadata) sealed() {}

// ResponsePropertyStatus is the only response property besides answer values.
const ResponsePropertyStatus = "status"

// Response targets response data. Question is optional: when empty the
// scope refers to the response as a whole (its status); when set, the
// question name must resolve against the dataset schema.
type Response struct {
	question string
	property string
}

// NewResponse validates and creates a response scope.
func NewResponse(question, property string) (Response, error) {
	if question == "" && property == "" {
		return Response{}, fmt.Errorf("response scope requires a question or a property")
	}
	if property != "" && property != ResponsePropertyStatus {
		return Response{}, fmt.Errorf("unknown response property: %q", property)
	}
	return Response{question: question, property: property}, nil
}

// Question returns the question name, empty when the scope targets the
// response itself.
func (s Response) Question() string { return s.question }

// Property returns the response property, empty when targeting answer values.
func (s Response) Property() string { return s.property }

// Kind returns KindResponse.
func (s Response) Kind() Kind { return KindResponse }

func (s Response) sealed() {}

// Suggestion properties.
const (
	SuggestionPropertyValue = "value"
	SuggestionPropertyScore = "score"
	SuggestionPropertyAgent = "agent"
	SuggestionPropertyType  = "type"
)

// Suggestion targets a question's suggestion. Unlike Response, the question
// name is mandatory and must resolve against the dataset schema.
type Suggestion struct {
	question string
	property string
}

// NewSuggestion validates and creates a suggestion scope.
// An empty property defaults to "value".
func NewSuggestion(question, property string) (Suggestion, error) {
	if question == "" {
		return Suggestion{}, fmt.Errorf("suggestion scope requires a question")
	}
	if property == "" {
		property = SuggestionPropertyValue
	}
	switch property {
	case SuggestionPropertyValue, SuggestionPropertyScore, SuggestionPropertyAgent, SuggestionPropertyType:
		return Suggestion{question: question, property: property}, nil
	}
	return Suggestion{}, fmt.Errorf("unknown suggestion property: %q", property)
}

// Question returns the question name.
func (s Suggestion) Question() string { return s.question }

// Property returns the suggestion property.
func (s Suggestion) Property() string { return s.property }

// Kind returns KindSuggestion.
func (s Suggestion) Kind() Kind { return KindSuggestion }

func (s Suggestion) sealed() {}
