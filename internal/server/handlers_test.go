// internal/server/handlers_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"notion-pdf-service/internal/common/logger"
	"notion-pdf-service/internal/common/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...ServiceOption) *Handler {
	t.Helper()
	svc := NewService(loadTestCatalog(t), &fakeNotion{page: testPage()},
		&fakeFiller{out: []byte("%PDF-filled")}, logger.NewTestLogger(t), opts...)
	return NewHandler(svc, "notion-pdf-service", logger.NewTestLogger(t), nil)
}

func postJSON(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhook_UploadedLink(t *testing.T) {
	h := newTestHandler(t, WithUploader(&fakeUploader{link: "https://drive.example/f/1"}))

	rec := postJSON(t, h, `{"url":"`+testPageURL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, testPageID, resp.PageID)
	assert.Equal(t, "https://drive.example/f/1", resp.FileLink)
}

func TestHandleWebhook_InlinePDF(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, `{"url":"`+testPageURL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-filled", rec.Body.String())
}

func TestHandleWebhook_FormEncoded(t *testing.T) {
	h := newTestHandler(t, WithUploader(&fakeUploader{link: "https://drive.example/f/1"}))

	form := url.Values{"url": {testPageURL}}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleWebhook_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing url",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "empty url",
			body:       `{"url":""}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "url not a string",
			body:       `{"url":42}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "invalid page url",
			body:       `{"url":"https://www.notion.so/short"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_PAGE_URL",
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleWebhook_NoMatchingTemplateMapsTo422(t *testing.T) {
	page := testPage()
	page.Properties["Provider"] = json.RawMessage(`{"type":"select","select":{"name":"other"}}`)

	svc := NewService(loadTestCatalog(t), &fakeNotion{page: page},
		&fakeFiller{}, logger.NewTestLogger(t))
	h := NewHandler(svc, "notion-pdf-service", logger.NewTestLogger(t), nil)

	rec := postJSON(t, h, `{"url":"`+testPageURL+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleWebhook_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandleWebhook_CacheHitSkipsPipelineHistogram(t *testing.T) {
	h := newTestHandler(t, WithLinkCache(&fakeCache{
		entries: map[string]string{testPageID: "https://drive.example/cached"},
	}))

	before := testutil.CollectAndCount(metrics.PipelineDuration)

	rec := postJSON(t, h, `{"url":"`+testPageURL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.Equal(t, "https://drive.example/cached", resp.FileLink)

	// no pipeline ran, so no duration series may appear for the request
	assert.Equal(t, before, testutil.CollectAndCount(metrics.PipelineDuration))
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "notion-pdf-service", resp.Service)
}
