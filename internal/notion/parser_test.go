// internal/notion/parser_test.go
package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pageWithProperties(t *testing.T, props map[string]string) *Page {
	t.Helper()
	page := &Page{Properties: map[string]json.RawMessage{}}
	for name, raw := range props {
		page.Properties[name] = json.RawMessage(raw)
	}
	return page
}

func TestParseRecord(t *testing.T) {
	page := pageWithProperties(t, map[string]string{
		"ID":           `{"type":"title","title":[{"text":{"content":"12345"}}]}`,
		"Name_Hebrew":  `{"type":"rich_text","rich_text":[{"text":{"content":"משה"}}]}`,
		"Provider":     `{"type":"select","select":{"name":"migdal"}}`,
		"Amount":       `{"type":"number","number":1250.5}`,
		"Signed":       `{"type":"checkbox","checkbox":true}`,
		"Date":         `{"type":"date","date":{"start":"2024-03-01"}}`,
		"Attachment":   `{"type":"files","files":[]}`,
		"Relation":     `{"type":"relation","relation":[]}`,
	})

	record := ParseRecord(page)

	assert.Equal(t, "12345", record["id"])
	assert.Equal(t, "משה", record["name_hebrew"])
	assert.Equal(t, "migdal", record["provider"])
	assert.Equal(t, "1250.5", record["amount"])
	assert.Equal(t, "true", record["signed"])
	assert.Equal(t, "2024-03-01", record["date"])

	// unsupported property types are skipped, not emitted as ""
	_, ok := record["attachment"]
	assert.False(t, ok)
	_, ok = record["relation"]
	assert.False(t, ok)
}

func TestParseRecord_ClearedProperties(t *testing.T) {
	page := pageWithProperties(t, map[string]string{
		"Title":    `{"type":"title","title":[]}`,
		"Notes":    `{"type":"rich_text","rich_text":[]}`,
		"Provider": `{"type":"select","select":null}`,
		"Amount":   `{"type":"number","number":null}`,
		"Date":     `{"type":"date","date":null}`,
	})

	record := ParseRecord(page)

	for _, key := range []string{"title", "notes", "provider", "amount", "date"} {
		value, ok := record[key]
		assert.True(t, ok, key)
		assert.Equal(t, "", value, key)
	}
}

func TestParseRecord_NumberFormatting(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"type":"number","number":42}`, "42"},
		{`{"type":"number","number":42.0}`, "42"},
		{`{"type":"number","number":0.5}`, "0.5"},
		{`{"type":"number","number":-3.25}`, "-3.25"},
	}

	for _, tt := range tests {
		page := pageWithProperties(t, map[string]string{"N": tt.raw})
		record := ParseRecord(page)
		assert.Equal(t, tt.want, record["n"], tt.raw)
	}
}

func TestParseRecord_MalformedPropertySkipped(t *testing.T) {
	page := pageWithProperties(t, map[string]string{
		"Good": `{"type":"title","title":[{"text":{"content":"ok"}}]}`,
		"Bad":  `not json`,
	})

	record := ParseRecord(page)
	assert.Equal(t, "ok", record["good"])
	_, ok := record["bad"]
	assert.False(t, ok)
}
