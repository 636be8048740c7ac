package noop

import (
	"context"
	"log"

	"facturo/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendSupplierPendingEmail(_ context.Context, toEmail, toName, supplierName, supplierCode string) error {
	log.Printf("[NOOP EMAIL] Supplier pending notification for %s (%s): %s (%s) awaiting validation at %s/suppliers?status=pending",
		toName, toEmail, supplierName, supplierCode, s.frontendURL)
	return nil
}
