package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"facturo/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendSupplierPendingEmail(ctx context.Context, toEmail, toName, supplierName, supplierCode string) error {
	reviewURL := fmt.Sprintf("%s/suppliers?status=pending", s.frontendURL)

	subject := fmt.Sprintf("New supplier awaiting validation: %s", supplierName)
	htmlBody := buildSupplierPendingHTML(toName, supplierName, supplierCode, reviewURL)
	textBody := fmt.Sprintf("Hi %s,\n\nA new supplier was created from an extracted invoice and needs validation:\n\n  %s (code %s)\n\nReview pending suppliers here:\n%s\n\nFacturo Team", toName, supplierName, supplierCode, reviewURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSupplierPendingHTML(name, supplierName, supplierCode, reviewURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">New supplier awaiting validation</h2>
  <p>Hi %s,</p>
  <p>A new supplier was created automatically from an extracted invoice and needs your validation before it can be used in exports:</p>
  <p style="text-align: center; margin: 30px 0; font-size: 16px;"><strong>%s</strong> (code %s)</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Pending Suppliers</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Facturo - Invoice Processing Platform</p>
</body>
</html>`, name, supplierName, supplierCode, reviewURL)
}
