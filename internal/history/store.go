// internal/history/store.go
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"notion-pdf-service/internal/common/logger"

	"github.com/google/uuid"
)

// Entry is one generation attempt, successful or not.
type Entry struct {
	ID         string
	PageID     string
	TemplateID string
	FileLink   string
	Status     string
	ErrorCode  string
	CreatedAt  time.Time
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Store persists generation history rows in Postgres. One row per webhook
// request; failures record the error code instead of a link.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "history-store"}),
	}
}

// Record inserts the entry, generating id and timestamp when unset.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO pdf_generations (id, page_id, template_id, file_link, status, error_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.PageID, entry.TemplateID, entry.FileLink,
		entry.Status, entry.ErrorCode, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	s.logger.Debug("history entry recorded", map[string]interface{}{
		"pageId":     entry.PageID,
		"templateId": entry.TemplateID,
		"status":     entry.Status,
	})
	return nil
}
