package search

import (
	"fmt"

	"github.com/annolab/annosearch/internal/domain"
	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/query"
	"github.com/annolab/annosearch/internal/domain/search/scope"
	"github.com/annolab/annosearch/internal/engine"
)

// validateQuery checks every schema reference in the query against the
// dataset snapshot before anything reaches the engine. Filters first,
// then sorts, then the text query, then the vector query, failing on the
// first unresolved reference.
func validateQuery(ds *dataset.Dataset, q query.Query) error {
	for _, f := range q.Filters() {
		if err := validateFilter(ds, f); err != nil {
			return err
		}
	}
	for _, s := range q.Sort() {
		if err := validateScope(ds, s.Scope()); err != nil {
			return err
		}
	}
	if text := q.Text(); text != nil && text.Field() != "" {
		f, ok := ds.FieldByName(text.Field())
		if !ok {
			return domain.NewNotFound("field", text.Field(), ds.ID())
		}
		if !f.Type().Searchable() {
			return fmt.Errorf("field %q is not searchable", text.Field())
		}
	}
	if vec := q.Vector(); vec != nil {
		settings, ok := ds.VectorSettingsByName(vec.Name())
		if !ok {
			return domain.NewNotFound("vector settings", vec.Name(), ds.ID())
		}
		if value := vec.Value(); len(value) > 0 && len(value) != settings.Dimensions() {
			return fmt.Errorf("vector query %q has %d dimensions, settings expect %d",
				vec.Name(), len(value), settings.Dimensions())
		}
	}
	return nil
}

func validateFilter(ds *dataset.Dataset, f query.Filter) error {
	if err := validateScope(ds, f.Scope()); err != nil {
		return err
	}
	switch filter := f.(type) {
	case query.Terms:
		if rs, ok := f.Scope().(scope.Response); ok && rs.Property() == scope.ResponsePropertyStatus {
			return validateResponseStatusValues(filter.Values())
		}
		return nil
	case query.Range:
		return validateRangeScope(ds, f.Scope())
	default:
		return fmt.Errorf("unsupported filter type %T", f)
	}
}

// validateScope resolves a scope's schema references. Record scopes carry
// no references; the other kinds each name something the dataset must
// declare.
func validateScope(ds *dataset.Dataset, s scope.Scope) error {
	switch sc := s.(type) {
	case scope.Record:
		return nil
	case scope.Metadata:
		if _, ok := ds.MetadataPropertyByName(sc.Property()); !ok {
			return domain.NewNotFound("metadata property", sc.Property(), ds.ID())
		}
		return nil
	case scope.Response:
		if sc.Question() != "" {
			if _, ok := ds.QuestionByName(sc.Question()); !ok {
				return domain.NewNotFound("question", sc.Question(), ds.ID())
			}
		}
		return nil
	case scope.Suggestion:
		if _, ok := ds.QuestionByName(sc.Question()); !ok {
			return domain.NewNotFound("question", sc.Question(), ds.ID())
		}
		return nil
	default:
		return fmt.Errorf("unsupported scope type %T", s)
	}
}

// validateRangeScope rejects range filters over scopes that cannot hold
// ordered numeric values.
func validateRangeScope(ds *dataset.Dataset, s scope.Scope) error {
	switch sc := s.(type) {
	case scope.Record:
		if sc.Property() == scope.RecordPropertyInsertedAt || sc.Property() == scope.RecordPropertyUpdatedAt {
			return nil
		}
		return fmt.Errorf("range filter on non-numeric record property %q", sc.Property())
	case scope.Metadata:
		prop, _ := ds.MetadataPropertyByName(sc.Property())
		if !prop.Type().Numeric() {
			return fmt.Errorf("range filter on non-numeric metadata property %q", sc.Property())
		}
		return nil
	case scope.Response:
		if sc.Property() == scope.ResponsePropertyStatus {
			return fmt.Errorf("range filter on response status")
		}
		q, _ := ds.QuestionByName(sc.Question())
		if !q.Type().Numeric() {
			return fmt.Errorf("range filter on non-numeric question %q", sc.Question())
		}
		return nil
	case scope.Suggestion:
		if sc.Property() == scope.SuggestionPropertyScore {
			return nil
		}
		q, _ := ds.QuestionByName(sc.Question())
		if sc.Property() == scope.SuggestionPropertyValue && q.Type().Numeric() {
			return nil
		}
		return fmt.Errorf("range filter on non-numeric suggestion property %q", sc.Property())
	default:
		return fmt.Errorf("unsupported scope type %T", s)
	}
}

// validateResponseStatusValues admits the response status enum plus the
// virtual "missing" status.
func validateResponseStatusValues(values []string) error {
	for _, v := range values {
		if v == engine.ResponseStatusMissing {
			continue
		}
		if !dataset.ResponseStatus(v).IsValid() {
			return fmt.Errorf("unknown response status: %q", v)
		}
	}
	return nil
}
