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

type allocationRepo struct {
	db *sqlx.DB
}

// NewAllocationRepo creates a new PostgreSQL-backed AllocationRepository.
func NewAllocationRepo(db *sqlx.DB) port.AllocationRepository {
	return &allocationRepo{db: db}
}

func (r *allocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `INSERT INTO allocations (
		id, invoice_id, organization_id, user_id, account_code, label,
		amount, item_indices, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.InvoiceID, a.OrganizationID, a.UserID, a.AccountCode, a.Label,
		a.Amount, a.ItemIndices, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("allocationRepo.Create: %w", err)
	}
	return nil
}

func (r *allocationRepo) GetByID(ctx context.Context, orgID, allocationID uuid.UUID) (*domain.Allocation, error) {
	var a domain.Allocation
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM allocations WHERE id = $1 AND organization_id = $2", allocationID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("allocationRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *allocationRepo) ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	err := r.db.SelectContext(ctx, &allocations,
		`SELECT * FROM allocations WHERE invoice_id = $1 AND organization_id = $2
		 ORDER BY created_at, id`, invoiceID, orgID)
	if err != nil {
		return nil, fmt.Errorf("allocationRepo.ListByInvoice: %w", err)
	}
	return allocations, nil
}

func (r *allocationRepo) ListByPeriod(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	err := r.db.SelectContext(ctx, &allocations,
		`SELECT * FROM allocations
		 WHERE organization_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at, id`, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("allocationRepo.ListByPeriod: %w", err)
	}
	return allocations, nil
}

func (r *allocationRepo) Update(ctx context.Context, a *domain.Allocation) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE allocations SET
			account_code = $1, label = $2, amount = $3, item_indices = $4, updated_at = $5
		 WHERE id = $6 AND organization_id = $7`,
		a.AccountCode, a.Label, a.Amount, a.ItemIndices, a.UpdatedAt,
		a.ID, a.OrganizationID)
	if err != nil {
		return fmt.Errorf("allocationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

func (r *allocationRepo) UpdateItemIndices(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, indices []domain.IndexList) error {
	if len(ids) != len(indices) {
		return fmt.Errorf("allocationRepo.UpdateItemIndices: %d ids for %d index lists", len(ids), len(indices))
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("allocationRepo.UpdateItemIndices begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i, id := range ids {
		result, err := tx.ExecContext(ctx,
			`UPDATE allocations SET item_indices = $1, updated_at = $2
			 WHERE id = $3 AND organization_id = $4`,
			indices[i], now, id, orgID)
		if err != nil {
			return fmt.Errorf("allocationRepo.UpdateItemIndices: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrAllocationNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("allocationRepo.UpdateItemIndices commit: %w", err)
	}
	return nil
}

func (r *allocationRepo) Delete(ctx context.Context, orgID, allocationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM allocations WHERE id = $1 AND organization_id = $2", allocationID, orgID)
	if err != nil {
		return fmt.Errorf("allocationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}
