// internal/drive/uploader.go
package drive

import (
	"bytes"
	"context"
	"fmt"

	"notion-pdf-service/internal/common/config"
	"notion-pdf-service/internal/common/logger"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Uploader puts generated PDFs into a Drive folder and returns a link
// anyone can open.
type Uploader struct {
	service  *drive.Service
	folderID string
	logger   logger.Logger
}

func NewUploader(ctx context.Context, cfg config.DriveConfig, log logger.Logger) (*Uploader, error) {
	service, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Uploader{
		service:  service,
		folderID: cfg.FolderID,
		logger:   log.WithFields(map[string]interface{}{"component": "drive-uploader"}),
	}, nil
}

// Upload stores the PDF under fileName and returns its webViewLink after
// granting anyone-with-link read access.
func (u *Uploader) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	meta := &drive.File{Name: fileName}
	if u.folderID != "" {
		meta.Parents = []string{u.folderID}
	}

	file, err := u.service.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	u.logger.Info("file uploaded", map[string]interface{}{
		"fileId":   file.Id,
		"fileName": fileName,
	})

	_, err = u.service.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to set sharing permission: %w", err)
	}

	if file.WebViewLink != "" {
		return file.WebViewLink, nil
	}

	got, err := u.service.Files.Get(file.Id).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get file link: %w", err)
	}
	return got.WebViewLink, nil
}
