// internal/notion/client.go
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notion-pdf-service/internal/common/config"
	"notion-pdf-service/internal/common/httpclient"
)

// Client is a minimal Notion REST API client covering page retrieval and
// property updates.
type Client struct {
	token      string
	baseURL    string
	apiVersion string
	httpClient *httpclient.Client
}

// Page is a Notion page record. Properties are kept raw; the parser turns
// them into a flat record.
type Page struct {
	ID         string                     `json:"id"`
	URL        string                     `json:"url,omitempty"`
	Properties map[string]json.RawMessage `json:"properties"`
}

func NewClient(cfg config.NotionConfig) *Client {
	return &Client{
		token:      cfg.Token,
		baseURL:    cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		httpClient: httpclient.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
	}
}

// GetPage retrieves a page record by its hyphenated page ID.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get page (status %d): %s", resp.StatusCode, string(body))
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}

	return &page, nil
}

// UpdatePageProperties patches page properties. Use the Properties builder
// to construct values in the shape the API expects.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, properties map[string]interface{}) error {
	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)

	payload := map[string]interface{}{
		"properties": properties,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to update page (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
}
