// internal/server/service.go
package server

import (
	"context"
	"errors"
	"fmt"

	apperrors "notion-pdf-service/internal/common/errors"
	"notion-pdf-service/internal/common/logger"
	"notion-pdf-service/internal/common/metrics"
	"notion-pdf-service/internal/history"
	"notion-pdf-service/internal/notion"
	"notion-pdf-service/internal/template"

	"notion-pdf-service/internal/cache"
)

// Collaborator interfaces. The concrete implementations live in their own
// packages; the service only needs these slices of them, which keeps the
// pipeline testable with fakes.

type NotionAPI interface {
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	UpdatePageProperties(ctx context.Context, pageID string, properties map[string]interface{}) error
}

type FormFiller interface {
	Fill(templatePath string, fields []template.FieldValue) ([]byte, error)
}

type Uploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type LinkCache interface {
	Get(ctx context.Context, pageID string) (string, error)
	Set(ctx context.Context, pageID, link string) error
}

type HistoryStore interface {
	Record(ctx context.Context, entry history.Entry) error
}

type Notifier interface {
	PDFReady(ctx context.Context, templateID, fileLink string) error
}

// Service runs the resolve-and-fill pipeline for one webhook request.
// The catalog is immutable and shared; everything else is request-scoped.
type Service struct {
	catalog  *template.Catalog
	notion   NotionAPI
	filler   FormFiller
	uploader Uploader     // nil: return PDF bytes inline, skip write-back
	cache    LinkCache    // nil: no caching
	history  HistoryStore // nil: no audit rows
	notifier Notifier     // nil: no emails
	logger   logger.Logger
}

type ServiceOption func(*Service)

func WithUploader(u Uploader) ServiceOption    { return func(s *Service) { s.uploader = u } }
func WithLinkCache(c LinkCache) ServiceOption  { return func(s *Service) { s.cache = c } }
func WithHistory(h HistoryStore) ServiceOption { return func(s *Service) { s.history = h } }
func WithNotifier(n Notifier) ServiceOption    { return func(s *Service) { s.notifier = n } }

func NewService(catalog *template.Catalog, notionAPI NotionAPI, filler FormFiller, log logger.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		catalog: catalog,
		notion:  notionAPI,
		filler:  filler,
		logger:  log.WithFields(map[string]interface{}{"component": "pdf-service"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one pipeline run. FileLink is set when the
// document was uploaded; otherwise PDF carries the filled bytes.
type Result struct {
	PageID     string
	TemplateID string
	FileLink   string
	PDF        []byte
	FromCache  bool
}

// Generate runs the full pipeline for a Notion page URL: fetch and parse
// the page, resolve the template, validate, fill, and (when configured)
// upload, write back, cache, audit, and notify. Failures are deterministic
// per request, so nothing is retried here.
func (s *Service) Generate(ctx context.Context, pageURL string) (*Result, error) {
	pageID, err := notion.ExtractPageID(pageURL)
	if err != nil {
		return nil, apperrors.NewInvalidPageURLError(err.Error())
	}

	log := s.logger.WithFields(map[string]interface{}{"pageId": pageID})

	if s.cache != nil {
		if link, err := s.cache.Get(ctx, pageID); err == nil {
			metrics.CacheHits.Inc()
			log.Info("serving cached link", nil)
			return &Result{PageID: pageID, FileLink: link, FromCache: true}, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn("link cache unavailable", map[string]interface{}{"error": err.Error()})
		}
	}

	page, err := s.notion.GetPage(ctx, pageID)
	if err != nil {
		return nil, s.fail(ctx, pageID, "", apperrors.NewNotionFetchFailedError(pageID, err))
	}
	record := template.Record(notion.ParseRecord(page))

	tpl, err := s.catalog.Resolve(record)
	if err != nil {
		return nil, s.fail(ctx, pageID, "", apperrors.NewNoMatchingTemplateError(fmt.Sprintf("pageId: %s", pageID)))
	}
	metrics.TemplatesResolved.WithLabelValues(tpl.ID).Inc()
	log = log.WithFields(map[string]interface{}{"templateId": tpl.ID})
	log.Info("template resolved", nil)

	if err := template.ValidateRequiredFields(record, tpl); err != nil {
		return nil, s.fail(ctx, pageID, tpl.ID, apperrors.NewMissingRequiredFieldError(template.MissingField(err)))
	}

	values := template.BuildFieldValues(record, tpl)

	pdfBytes, err := s.filler.Fill(tpl.FilePath, values)
	if err != nil {
		return nil, s.fail(ctx, pageID, tpl.ID, apperrors.NewFormFillError(tpl.ID, err))
	}

	result := &Result{PageID: pageID, TemplateID: tpl.ID, PDF: pdfBytes}

	if s.uploader == nil {
		s.record(ctx, pageID, tpl.ID, "", "")
		return result, nil
	}

	fileName := fmt.Sprintf("%s-%s.pdf", tpl.ID, pageID)
	link, err := s.uploader.Upload(ctx, fileName, pdfBytes)
	if err != nil {
		return nil, s.fail(ctx, pageID, tpl.ID, apperrors.NewDriveUploadFailedError(err))
	}
	result.FileLink = link
	result.PDF = nil

	if err := s.writeBack(ctx, pageID, link); err != nil {
		return nil, s.fail(ctx, pageID, tpl.ID, apperrors.NewNotionUpdateFailedError(pageID, err))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, pageID, link); err != nil {
			log.Warn("failed to cache link", map[string]interface{}{"error": err.Error()})
		}
	}

	s.record(ctx, pageID, tpl.ID, link, "")

	if s.notifier != nil {
		if err := s.notifier.PDFReady(ctx, tpl.ID, link); err != nil {
			log.Warn("notification failed", map[string]interface{}{"error": err.Error()})
		}
	}

	log.Info("pdf generated", map[string]interface{}{"fileLink": link})
	return result, nil
}

// writeBack marks the page processed and attaches the share link, matching
// the Status / pdf columns the workspace expects.
func (s *Service) writeBack(ctx context.Context, pageID, link string) error {
	var builder notion.PropertiesBuilder
	properties := map[string]interface{}{
		"Status": builder.RichText("Success"),
		"pdf":    builder.ExternalFile("report.pdf", link),
	}
	return s.notion.UpdatePageProperties(ctx, pageID, properties)
}

// fail records the failed attempt in history and passes the error through.
func (s *Service) fail(ctx context.Context, pageID, templateID string, stdErr *apperrors.StandardError) error {
	s.record(ctx, pageID, templateID, "", string(stdErr.Code))
	return stdErr
}

func (s *Service) record(ctx context.Context, pageID, templateID, link, errorCode string) {
	if s.history == nil {
		return
	}
	status := history.StatusSuccess
	if errorCode != "" {
		status = history.StatusFailed
	}
	entry := history.Entry{
		PageID:     pageID,
		TemplateID: templateID,
		FileLink:   link,
		Status:     status,
		ErrorCode:  errorCode,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record history entry", map[string]interface{}{
			"pageId": pageID,
			"error":  err.Error(),
		})
	}
}
