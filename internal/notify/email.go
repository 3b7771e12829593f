// internal/notify/email.go
package notify

import (
	"context"
	"fmt"

	appconfig "notion-pdf-service/internal/common/config"
	"notion-pdf-service/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailNotifier sends a "PDF ready" email through SES once a document has
// been generated and uploaded.
type EmailNotifier struct {
	client *ses.Client
	from   string
	to     string
	logger logger.Logger
}

func NewEmailNotifier(ctx context.Context, cfg appconfig.NotificationConfig, log logger.Logger) (*EmailNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &EmailNotifier{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.Email.FromEmail,
		to:     cfg.Email.ToEmail,
		logger: log.WithFields(map[string]interface{}{"component": "email-notifier"}),
	}, nil
}

// PDFReady emails the share link. Failures are reported but callers treat
// notification as best-effort; the document is already generated.
func (n *EmailNotifier) PDFReady(ctx context.Context, templateID, fileLink string) error {
	subject := fmt.Sprintf("PDF generated (%s)", templateID)
	body := fmt.Sprintf("A new PDF was generated from template %q.\n\nLink: %s\n", templateID, fileLink)

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{n.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("notification sent", map[string]interface{}{
		"templateId": templateID,
	})
	return nil
}
