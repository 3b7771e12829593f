// internal/template/resolver.go
package template

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatchingTemplate   = errors.New("NO_MATCHING_TEMPLATE")
	ErrMissingRequiredField = errors.New("MISSING_REQUIRED_FIELD")
)

// Resolve returns the first template in configuration order whose condition
// set is fully satisfied by the record. Conditions are exact string matches
// with no coercion. When several templates match, the earlier one wins;
// repeated calls with the same inputs always return the same template.
func (c *Catalog) Resolve(record Record) (*Template, error) {
	for i := range c.templates {
		if matches(record, c.templates[i].Conditions) {
			return &c.templates[i], nil
		}
	}
	return nil, ErrNoMatchingTemplate
}

func matches(record Record, conditions map[string]string) bool {
	for key, want := range conditions {
		got, ok := record[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// ValidateRequiredFields fails on the first required field that is absent
// from the record. A field present with an empty string counts as absent:
// the Notion parser emits "" for cleared properties, and an empty value is
// as unusable on the form as a missing one.
func ValidateRequiredFields(record Record, tpl *Template) error {
	for _, field := range tpl.RequiredFields {
		if value, ok := record[field]; !ok || value == "" {
			return fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
		}
	}
	return nil
}

// BuildFieldValues maps the record onto the template's PDF form fields,
// one output pair per mapping entry in mapping order. Sources absent from
// the record produce an empty string; values pass through untransformed.
func BuildFieldValues(record Record, tpl *Template) []FieldValue {
	values := make([]FieldValue, 0, len(tpl.FieldMappings))
	for _, m := range tpl.FieldMappings {
		values = append(values, FieldValue{Name: m.Dest, Value: record[m.Source]})
	}
	return values
}

// MissingField extracts the field name from a ErrMissingRequiredField error.
func MissingField(err error) string {
	if !errors.Is(err, ErrMissingRequiredField) {
		return ""
	}
	msg := err.Error()
	prefix := ErrMissingRequiredField.Error() + ": "
	if len(msg) > len(prefix) {
		return msg[len(prefix):]
	}
	return ""
}
