// Package errors provides standardized error handling for the PDF pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Request / data errors (client side)
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrCodeInvalidPageURL       ErrorCode = "INVALID_PAGE_URL"
	ErrCodeNoMatchingTemplate   ErrorCode = "NO_MATCHING_TEMPLATE"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"

	// Configuration errors
	ErrCodeConfigLoad ErrorCode = "CONFIG_LOAD_ERROR"

	// Upstream / library errors (server side)
	ErrCodeNotionFetchFailed  ErrorCode = "NOTION_FETCH_FAILED"
	ErrCodeNotionUpdateFailed ErrorCode = "NOTION_UPDATE_FAILED"
	ErrCodeFormFill           ErrorCode = "FORM_FILL_ERROR"
	ErrCodeDriveUploadFailed  ErrorCode = "DRIVE_UPLOAD_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable request parsing error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPageURLError creates a non-retryable page URL error.
func NewInvalidPageURLError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPageURL,
		Message:   "Notion page URL does not contain a valid page ID",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoMatchingTemplateError creates a non-retryable template resolution error.
func NewNoMatchingTemplateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoMatchingTemplate,
		Message:   "No template conditions match the record",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError creates a non-retryable field validation error.
func NewMissingRequiredFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   "Record is missing a required field",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigLoadError creates a non-retryable configuration error.
func NewConfigLoadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigLoad,
		Message:   "Template configuration could not be loaded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotionFetchFailedError creates a retryable Notion API error.
func NewNotionFetchFailedError(pageID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotionFetchFailed,
		Message:   "Failed to fetch page from Notion",
		Details:   fmt.Sprintf("pageId: %s, error: %s", pageID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotionUpdateFailedError creates a retryable Notion API error.
func NewNotionUpdateFailedError(pageID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotionUpdateFailed,
		Message:   "Failed to update page in Notion",
		Details:   fmt.Sprintf("pageId: %s, error: %s", pageID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFormFillError wraps a PDF library failure.
func NewFormFillError(templateID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFormFill,
		Message:   "PDF form filling failed",
		Details:   fmt.Sprintf("templateId: %s, error: %s", templateID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDriveUploadFailedError creates a retryable upload error.
func NewDriveUploadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDriveUploadFailed,
		Message:   "Upload to Google Drive failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError extracts a StandardError from an error chain, or wraps the
// error as INTERNAL_ERROR when none is present.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether the error chain carries a StandardError with code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
