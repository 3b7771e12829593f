// internal/history/store_test.go
package history

import (
	"context"
	"testing"
	"time"

	"notion-pdf-service/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO pdf_generations").
		WithArgs("entry-1", "page-1", "migdal", "https://drive.example/f/1", StatusSuccess, "", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewStore(db, logger.NewTestLogger(t))
	err = store.Record(context.Background(), Entry{
		ID:         "entry-1",
		PageID:     "page-1",
		TemplateID: "migdal",
		FileLink:   "https://drive.example/f/1",
		Status:     StatusSuccess,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_GeneratesIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO pdf_generations").
		WithArgs(sqlmock.AnyArg(), "page-1", "", "", StatusFailed, "NOTION_FETCH_FAILED", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewStore(db, logger.NewTestLogger(t))
	err = store.Record(context.Background(), Entry{
		PageID:    "page-1",
		Status:    StatusFailed,
		ErrorCode: "NOTION_FETCH_FAILED",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO pdf_generations").
		WillReturnError(assert.AnError)

	store := NewStore(db, logger.NewTestLogger(t))
	err = store.Record(context.Background(), Entry{PageID: "page-1", Status: StatusSuccess})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert history entry")
}
