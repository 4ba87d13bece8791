package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Index naming. One index per dataset; the mapping is strict, so schema
// changes require a full reindex rather than an in-place rebuild.
const indexPrefix = "annosearch-records-"

// IndexName returns the index name for a dataset.
func IndexName(datasetID uuid.UUID) string {
	return indexPrefix + datasetID.String()
}

// Field path construction. Filters only match documents when these rules
// are identical at query time and at indexing time, so both the compiler
// and the document encoder go through them.

// FieldPath returns the document path of a record field value.
func FieldPath(name string) string {
	return "fields." + name
}

// MetadataPath returns the document path of a metadata property value.
func MetadataPath(property string) string {
	return "metadata." + property
}

// ResponseValuePath returns the document path of one user's answer to a
// question. Responses are keyed by username in the document.
func ResponseValuePath(username, question string) string {
	return fmt.Sprintf("responses.%s.values.%s", username, question)
}

// ResponseStatusPath returns the document path of one user's response status.
func ResponseStatusPath(username string) string {
	return fmt.Sprintf("responses.%s.status", username)
}

// SuggestionPath returns the document path of a suggestion property for a
// question.
func SuggestionPath(question, property string) string {
	return fmt.Sprintf("suggestions.%s.%s", question, property)
}

// VectorPath returns the document path of a vector value.
func VectorPath(name string) string {
	return "vectors." + name
}
