// internal/template/catalog.go
package template

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog holds the template set in configuration order. It is loaded once
// at startup and never mutated afterwards, so it is safe to share across
// request handlers without locking.
type Catalog struct {
	templates []Template
}

// catalogFile matches the top-level YAML structure. Template entries and
// their field_mappings are decoded through yaml.Node because document order
// is load-bearing: the resolver's tie-break is first-in-configuration-order,
// and field values are emitted in mapping order.
type catalogFile struct {
	Templates yaml.Node `yaml:"templates"`
}

type templateEntry struct {
	FileName       string            `yaml:"file_name"`
	FieldMappings  yaml.Node         `yaml:"field_mappings"`
	RequiredFields []string          `yaml:"required_notion_fields"`
	Conditions     map[string]string `yaml:"conditions"`
}

// LoadCatalog reads the template catalog from catalogPath and resolves
// template file names against templatesDir. It fails on the first
// structural problem: malformed YAML, duplicate ids, missing template
// files, or required fields that are not mapped.
func LoadCatalog(catalogPath, templatesDir string) (*Catalog, error) {
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if file.Templates.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse catalog: top-level 'templates' mapping missing")
	}

	seen := make(map[string]bool)
	var templates []Template

	// Mapping nodes store pairs as [key, value, key, value, ...].
	for i := 0; i+1 < len(file.Templates.Content); i += 2 {
		idNode := file.Templates.Content[i]
		valueNode := file.Templates.Content[i+1]

		id := idNode.Value
		if seen[id] {
			return nil, fmt.Errorf("duplicate template id %q", id)
		}
		seen[id] = true

		var entry templateEntry
		if err := valueNode.Decode(&entry); err != nil {
			return nil, fmt.Errorf("template %q: %w", id, err)
		}

		tpl, err := buildTemplate(id, entry, templatesDir)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("catalog defines no templates")
	}

	return &Catalog{templates: templates}, nil
}

func buildTemplate(id string, entry templateEntry, templatesDir string) (Template, error) {
	if entry.FileName == "" {
		return Template{}, fmt.Errorf("template %q: file_name is required", id)
	}

	filePath := filepath.Join(templatesDir, entry.FileName)
	if _, err := os.Stat(filePath); err != nil {
		return Template{}, fmt.Errorf("template %q: file not found: %s", id, filePath)
	}

	var mappings []FieldMapping
	mapped := make(map[string]bool)
	if entry.FieldMappings.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(entry.FieldMappings.Content); i += 2 {
			source := entry.FieldMappings.Content[i].Value
			dest := entry.FieldMappings.Content[i+1].Value
			if mapped[source] {
				return Template{}, fmt.Errorf("template %q: duplicate field mapping for %q", id, source)
			}
			mapped[source] = true
			mappings = append(mappings, FieldMapping{Source: source, Dest: dest})
		}
	}
	if len(mappings) == 0 {
		return Template{}, fmt.Errorf("template %q: field_mappings is required", id)
	}

	for _, required := range entry.RequiredFields {
		if !mapped[required] {
			return Template{}, fmt.Errorf("template %q: required field %q is not in field_mappings", id, required)
		}
	}

	if entry.Conditions == nil {
		entry.Conditions = map[string]string{}
	}

	return Template{
		ID:             id,
		FileName:       entry.FileName,
		FilePath:       filePath,
		FieldMappings:  mappings,
		RequiredFields: entry.RequiredFields,
		Conditions:     entry.Conditions,
	}, nil
}

// Templates returns the template set in configuration order.
func (c *Catalog) Templates() []Template {
	return c.templates
}

// Len returns the number of configured templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
