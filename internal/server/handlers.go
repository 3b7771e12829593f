// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	apperrors "notion-pdf-service/internal/common/errors"
	"notion-pdf-service/internal/common/logger"
	"notion-pdf-service/internal/common/metrics"
	"notion-pdf-service/internal/common/observability"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20 // webhook payloads are tiny, cap at 1 MiB

// Handler wires HTTP requests into the pipeline service.
type Handler struct {
	service     *Service
	serviceName string
	logger      logger.Logger
	errHandler  *apperrors.HTTPHandler
	obs         *observability.Observability
}

func NewHandler(service *Service, serviceName string, log logger.Logger, obs *observability.Observability) *Handler {
	return &Handler{
		service:     service,
		serviceName: serviceName,
		logger:      log.WithFields(map[string]interface{}{"component": "http-handler"}),
		errHandler:  apperrors.NewHTTPHandler(log),
		obs:         obs,
	}
}

// HandleWebhook is POST /webhook: parse, validate, run the pipeline and
// answer with either the share link or the PDF bytes.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		metrics.WebhookRequestsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusMethodNotAllowed, apperrors.ErrorResponse{
			Error: "method not allowed",
			Code:  string(apperrors.ErrCodeInvalidRequest),
		})
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		h.writeFailure(ctx, w, requestID, err, start)
		return
	}

	h.logger.Info("webhook received", map[string]interface{}{
		"requestId": requestID,
		"url":       req.URL,
	})

	result, err := h.service.Generate(ctx, req.URL)
	if err != nil {
		h.writeFailure(ctx, w, requestID, err, start)
		return
	}

	duration := time.Since(start)
	metrics.WebhookRequestsTotal.WithLabelValues("success").Inc()
	// cache hits never ran the pipeline and carry no template id
	if !result.FromCache {
		metrics.PipelineDuration.WithLabelValues(result.TemplateID).Observe(duration.Seconds())
	}
	if h.obs != nil {
		h.obs.RecordRequestProcessed(ctx, "success")
		h.obs.RecordRequestDuration(ctx, duration, "success")
	}

	if result.FileLink == "" {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", result.TemplateID+".pdf"))
		w.WriteHeader(http.StatusOK)
		w.Write(result.PDF)
		return
	}

	writeJSON(w, http.StatusOK, WebhookResponse{
		Status:   "success",
		PageID:   result.PageID,
		FileLink: result.FileLink,
		Cached:   result.FromCache,
	})
}

// HandleHealth is GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
	})
}

// parseRequest decodes JSON or form-encoded bodies into a WebhookRequest
// and validates the result against the webhook schema.
func (h *Handler) parseRequest(r *http.Request) (*WebhookRequest, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = parsed
		}
	}

	payload := map[string]interface{}{}
	switch {
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"),
		strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseForm(); err != nil {
			return nil, apperrors.NewInvalidRequestError("malformed form body")
		}
		if v := r.PostFormValue("url"); v != "" {
			payload["url"] = v
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, apperrors.NewInvalidRequestError("malformed JSON body")
		}
	}

	schemaLoader := gojsonschema.NewGoLoader(webhookSchema)
	documentLoader := gojsonschema.NewGoLoader(payload)
	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}
	if !validation.Valid() {
		details := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			details = append(details, desc.String())
		}
		return nil, apperrors.NewInvalidRequestError(strings.Join(details, "; "))
	}

	url, _ := payload["url"].(string)
	return &WebhookRequest{URL: url}, nil
}

func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, requestID string, err error, start time.Time) {
	stdErr := apperrors.AsStandardError(err)
	metrics.WebhookRequestsTotal.WithLabelValues("error").Inc()
	metrics.WebhookRequestsFailed.WithLabelValues(string(stdErr.Code)).Inc()
	if h.obs != nil {
		h.obs.RecordRequestProcessed(ctx, "error")
		h.obs.RecordRequestDuration(ctx, time.Since(start), "error")
	}
	h.errHandler.WriteError(w, requestID, stdErr)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
