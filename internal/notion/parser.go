// internal/notion/parser.go
package notion

import (
	"encoding/json"
	"strconv"
	"strings"
)

// propertyValue covers the property types the parser understands. Notion
// tags every property with its type, so unknown types can be skipped
// without failing the whole record.
type propertyValue struct {
	Type     string        `json:"type"`
	Title    []richText    `json:"title"`
	RichText []richText    `json:"rich_text"`
	Select   *selectOption `json:"select"`
	Number   *float64      `json:"number"`
	Date     *dateValue    `json:"date"`
	Checkbox *bool         `json:"checkbox"`
}

type richText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// ParseRecord flattens a page's properties into field-name → scalar-string
// pairs. Keys are lowercased so catalog field names are case-insensitive
// against Notion column names. Cleared properties become "".
func ParseRecord(page *Page) map[string]string {
	record := make(map[string]string, len(page.Properties))

	for name, raw := range page.Properties {
		var prop propertyValue
		if err := json.Unmarshal(raw, &prop); err != nil {
			continue
		}

		value, ok := parseValue(prop)
		if !ok {
			continue
		}
		record[strings.ToLower(name)] = value
	}

	return record
}

func parseValue(prop propertyValue) (string, bool) {
	switch prop.Type {
	case "title":
		return firstText(prop.Title), true
	case "rich_text":
		return firstText(prop.RichText), true
	case "select":
		if prop.Select == nil {
			return "", true
		}
		return prop.Select.Name, true
	case "number":
		if prop.Number == nil {
			return "", true
		}
		return strconv.FormatFloat(*prop.Number, 'f', -1, 64), true
	case "date":
		if prop.Date == nil {
			return "", true
		}
		return prop.Date.Start, true
	case "checkbox":
		if prop.Checkbox == nil {
			return "", true
		}
		return strconv.FormatBool(*prop.Checkbox), true
	default:
		return "", false
	}
}

func firstText(fragments []richText) string {
	if len(fragments) == 0 {
		return ""
	}
	return fragments[0].Text.Content
}
