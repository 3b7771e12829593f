// internal/notion/properties.go
package notion

// PropertiesBuilder constructs property values in the shape the Notion
// pages API expects for updates.
type PropertiesBuilder struct{}

func (PropertiesBuilder) Title(content string) map[string]interface{} {
	return map[string]interface{}{
		"title": []map[string]interface{}{
			{"text": map[string]interface{}{"content": content}},
		},
	}
}

func (PropertiesBuilder) RichText(content string) map[string]interface{} {
	return map[string]interface{}{
		"rich_text": []map[string]interface{}{
			{"text": map[string]interface{}{"content": content}},
		},
	}
}

func (PropertiesBuilder) Number(number float64) map[string]interface{} {
	return map[string]interface{}{"number": number}
}

func (PropertiesBuilder) Select(optionName string) map[string]interface{} {
	return map[string]interface{}{
		"select": map[string]interface{}{"name": optionName},
	}
}

func (PropertiesBuilder) Checkbox(checked bool) map[string]interface{} {
	return map[string]interface{}{"checkbox": checked}
}

// ExternalFile builds a files property pointing at an externally hosted
// file, such as a Drive share link.
func (PropertiesBuilder) ExternalFile(fileName, fileURL string) map[string]interface{} {
	return map[string]interface{}{
		"files": []map[string]interface{}{
			{
				"name": fileName,
				"type": "external",
				"external": map[string]interface{}{
					"url": fileURL,
				},
			},
		},
	}
}
