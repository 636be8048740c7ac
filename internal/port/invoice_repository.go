package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"facturo/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetByFileID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.Invoice, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListExtracted(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	UpdateExtractedData(ctx context.Context, inv *domain.Invoice) error
	UpdateExtractionStatus(ctx context.Context, inv *domain.Invoice) error
	SetSupplier(ctx context.Context, orgID, invoiceID uuid.UUID, supplierID uuid.UUID) error
	Requeue(ctx context.Context, orgID, invoiceID uuid.UUID) error
	// ClaimQueued atomically marks up to limit queued invoices as processing
	// and returns them. Safe to call from concurrent workers.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Invoice, error)
	Delete(ctx context.Context, orgID, invoiceID uuid.UUID) error
}

// AllocationRepository defines the contract for allocation persistence.
type AllocationRepository interface {
	Create(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, orgID, allocationID uuid.UUID) (*domain.Allocation, error)
	// ListByInvoice returns allocations ordered by creation time; the
	// reconciler depends on this ordering.
	ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error)
	ListByPeriod(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.Allocation, error)
	Update(ctx context.Context, a *domain.Allocation) error
	// UpdateItemIndices rewrites item_indices for all listed allocations in a
	// single transaction; either all rows change or none do.
	UpdateItemIndices(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, indices []domain.IndexList) error
	Delete(ctx context.Context, orgID, allocationID uuid.UUID) error
}
