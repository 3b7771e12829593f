// internal/server/models.go
package server

// WebhookRequest is the body of POST /webhook. Notion automations also
// deliver form-encoded payloads, so the handler accepts both encodings.
type WebhookRequest struct {
	URL string `json:"url"`
}

// WebhookResponse is the success body when the document was uploaded.
type WebhookResponse struct {
	Status   string `json:"status"`
	PageID   string `json:"page_id"`
	FileLink string `json:"file_link,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// webhookSchema validates the decoded request payload before the pipeline
// runs, so malformed bodies fail with a clear INVALID_REQUEST message.
var webhookSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"url": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required": []string{"url"},
}
