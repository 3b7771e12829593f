// internal/template/catalog_test.go
package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCatalog writes a catalog YAML plus empty template files for every
// name in files, and returns the catalog path and templates dir.
func writeCatalog(t *testing.T, yamlBody string, files ...string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	templatesDir := filepath.Join(dir, "templates")
	require.NoError(t, os.Mkdir(templatesDir, 0o755))

	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(templatesDir, name), []byte("%PDF-1.7\n"), 0o644))
	}

	catalogPath := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(yamlBody), 0o644))

	return catalogPath, templatesDir
}

func TestLoadCatalog_PreservesDocumentOrder(t *testing.T) {
	catalogPath, templatesDir := writeCatalog(t, `
templates:
  zebra:
    file_name: zebra.pdf
    field_mappings:
      id: f1
  alpha:
    file_name: alpha.pdf
    field_mappings:
      id: f1
  mid:
    file_name: mid.pdf
    field_mappings:
      id: f1
`, "zebra.pdf", "alpha.pdf", "mid.pdf")

	catalog, err := LoadCatalog(catalogPath, templatesDir)
	require.NoError(t, err)
	require.Equal(t, 3, catalog.Len())

	ids := []string{}
	for _, tpl := range catalog.Templates() {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []string{"zebra", "alpha", "mid"}, ids)
}

func TestLoadCatalog_PreservesMappingOrder(t *testing.T) {
	catalogPath, templatesDir := writeCatalog(t, `
templates:
  migdal:
    file_name: migdal.pdf
    field_mappings:
      id: text_1efdg
      name_hebrew: text_2xgca
      name_english: text_3zmip
`, "migdal.pdf")

	catalog, err := LoadCatalog(catalogPath, templatesDir)
	require.NoError(t, err)

	tpl := catalog.Templates()[0]
	require.Len(t, tpl.FieldMappings, 3)
	assert.Equal(t, FieldMapping{Source: "id", Dest: "text_1efdg"}, tpl.FieldMappings[0])
	assert.Equal(t, FieldMapping{Source: "name_hebrew", Dest: "text_2xgca"}, tpl.FieldMappings[1])
	assert.Equal(t, FieldMapping{Source: "name_english", Dest: "text_3zmip"}, tpl.FieldMappings[2])
}

func TestLoadCatalog_Failures(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		files   []string
		wantErr string
	}{
		{
			name:    "empty catalog",
			yaml:    "templates: {}\n",
			wantErr: "no templates",
		},
		{
			name: "missing file_name",
			yaml: `
templates:
  a:
    field_mappings:
      id: f1
`,
			wantErr: "file_name is required",
		},
		{
			name: "template file not found",
			yaml: `
templates:
  a:
    file_name: missing.pdf
    field_mappings:
      id: f1
`,
			wantErr: "file not found",
		},
		{
			name: "no field mappings",
			yaml: `
templates:
  a:
    file_name: a.pdf
`,
			files:   []string{"a.pdf"},
			wantErr: "field_mappings is required",
		},
		{
			name: "required field not mapped",
			yaml: `
templates:
  a:
    file_name: a.pdf
    field_mappings:
      id: f1
    required_notion_fields:
      - address
`,
			files:   []string{"a.pdf"},
			wantErr: `required field "address" is not in field_mappings`,
		},
		{
			name: "duplicate mapping source",
			yaml: `
templates:
  a:
    file_name: a.pdf
    field_mappings:
      id: f1
      id: f2
`,
			files:   []string{"a.pdf"},
			wantErr: "duplicate field mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogPath, templatesDir := writeCatalog(t, tt.yaml, tt.files...)
			_, err := LoadCatalog(catalogPath, templatesDir)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadCatalog_DuplicateTemplateID(t *testing.T) {
	catalogPath, templatesDir := writeCatalog(t, `
templates:
  a:
    file_name: a.pdf
    field_mappings:
      id: f1
  a:
    file_name: a.pdf
    field_mappings:
      id: f2
`, "a.pdf")

	_, err := LoadCatalog(catalogPath, templatesDir)
	require.Error(t, err)
}

func TestLoadCatalog_MissingCatalogFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}
