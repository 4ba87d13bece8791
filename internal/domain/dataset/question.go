package dataset

import (
	"fmt"

	"github.com/google/uuid"
)

// QuestionType is the annotation input type of a question.
type QuestionType string

const (
	// QuestionText collects free-form text answers.
	QuestionText QuestionType = "text"
	// QuestionRating collects an integer rating from a fixed set.
	QuestionRating QuestionType = "rating"
	// QuestionLabel collects a single label from a fixed set.
	QuestionLabel QuestionType = "label_selection"
	// QuestionMultiLabel collects multiple labels from a fixed set.
	QuestionMultiLabel QuestionType = "multi_label_selection"
	// QuestionRanking collects an ordering over a fixed set.
	QuestionRanking QuestionType = "ranking"
	// QuestionSpan collects labeled spans over a field's text.
	QuestionSpan QuestionType = "span"
)

// IsValid checks if the question type is supported.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionText, QuestionRating, QuestionLabel, QuestionMultiLabel, QuestionRanking, QuestionSpan:
		return true
	}
	return false
}

// Numeric reports whether answers to this question type are numeric
// (indexed as numbers, filterable by range).
func (t QuestionType) Numeric() bool { return t == QuestionRating }

// QuestionSettings holds type-specific configuration.
type QuestionSettings struct {
	// Options are the allowed labels (label, multi-label, ranking) or
	// rating values rendered as strings.
	Options []string
	// Field names the span question's target field (span only).
	Field string
}

// Question is an annotation question declared on a dataset.
type Question struct {
	id           uuid.UUID
	name         string
	questionType QuestionType
	settings     QuestionSettings
}

// NewQuestion validates and creates a Question.
func NewQuestion(id uuid.UUID, name string, questionType QuestionType, settings QuestionSettings) (Question, error) {
	if id == uuid.Nil {
		return Question{}, fmt.Errorf("question id is required")
	}
	if name == "" {
		return Question{}, fmt.Errorf("question name is required")
	}
	if !questionType.IsValid() {
		return Question{}, fmt.Errorf("invalid question type: %q", questionType)
	}
	if questionType == QuestionSpan && settings.Field == "" {
		return Question{}, fmt.Errorf("span question %q requires a target field", name)
	}
	return Question{id: id, name: name, questionType: questionType, settings: settings}, nil
}

// ID returns the question identifier.
func (q Question) ID() uuid.UUID { return q.id }

// Name returns the question name.
func (q Question) Name() string { return q.name }

// Type returns the annotation input type.
func (q Question) Type() QuestionType { return q.questionType }

// Settings returns the type-specific configuration.
func (q Question) Settings() QuestionSettings { return q.settings }
