package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (
		id, organization_id, file_id, supplier_id, extracted_data,
		extraction_status, extraction_error, extract_attempts, extracted_at,
		created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.OrganizationID, inv.FileID, inv.SupplierID, inv.ExtractedData,
		inv.ExtractionStatus, inv.ExtractionError, inv.ExtractAttempts, inv.ExtractedAt,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND organization_id = $2", invoiceID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByFileID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE file_id = $1 AND organization_id = $2", fileID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByFileID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE organization_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOrganization count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE organization_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOrganization: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListExtracted(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE organization_id = $1 AND extraction_status = $2",
		orgID, domain.ExtractionStatusCompleted)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListExtracted count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE organization_id = $1 AND extraction_status = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		orgID, domain.ExtractionStatusCompleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListExtracted: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateExtractedData(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			extracted_data = $1, extraction_status = $2, extraction_error = $3,
			extract_attempts = $4, extracted_at = $5, updated_at = $6
		 WHERE id = $7 AND organization_id = $8`,
		inv.ExtractedData, inv.ExtractionStatus, inv.ExtractionError,
		inv.ExtractAttempts, inv.ExtractedAt, inv.UpdatedAt,
		inv.ID, inv.OrganizationID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateExtractedData: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateExtractionStatus(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			extraction_status = $1, extraction_error = $2, extract_attempts = $3, updated_at = $4
		 WHERE id = $5 AND organization_id = $6`,
		inv.ExtractionStatus, inv.ExtractionError, inv.ExtractAttempts, inv.UpdatedAt,
		inv.ID, inv.OrganizationID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateExtractionStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) SetSupplier(ctx context.Context, orgID, invoiceID uuid.UUID, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET supplier_id = $1, updated_at = $2
		 WHERE id = $3 AND organization_id = $4`,
		supplierID, time.Now().UTC(), invoiceID, orgID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SetSupplier: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Requeue(ctx context.Context, orgID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET extraction_status = $1, extraction_error = '', updated_at = $2
		 WHERE id = $3 AND organization_id = $4`,
		domain.ExtractionStatusQueued, time.Now().UTC(), invoiceID, orgID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// ClaimQueued flips up to limit queued invoices to processing and returns
// them. SKIP LOCKED keeps concurrent workers from claiming the same row.
func (r *invoiceRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		`UPDATE invoices SET extraction_status = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM invoices
			WHERE extraction_status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ExtractionStatusProcessing, time.Now().UTC(),
		domain.ExtractionStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ClaimQueued: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, orgID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND organization_id = $2", invoiceID, orgID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
