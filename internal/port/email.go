package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendSupplierPendingEmail notifies an organization admin that a new
	// supplier was auto-created and awaits validation.
	SendSupplierPendingEmail(ctx context.Context, toEmail, toName, supplierName, supplierCode string) error
}
