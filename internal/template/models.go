// internal/template/models.go
package template

// Record is a flat view of a source page: field name to scalar value,
// as produced by the Notion property parser.
type Record map[string]string

// FieldMapping pairs a source record field with a destination PDF form field.
type FieldMapping struct {
	Source string
	Dest   string
}

// FieldValue is one (PDF form field, value) pair ready for the form filler.
type FieldValue struct {
	Name  string
	Value string
}

// Template describes one PDF layout: which file it lives in, how record
// fields map onto its form fields, and when it is selected.
type Template struct {
	ID             string
	FileName       string
	FilePath       string
	FieldMappings  []FieldMapping // catalog document order
	RequiredFields []string       // catalog document order
	Conditions     map[string]string
}
