package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

// CreateOrGet relies on the unique index on (organization_id, normalized_key).
// The insert is attempted unconditionally; if another request already created
// the row, ON CONFLICT DO NOTHING makes the insert a no-op and the existing
// row is re-read. The duplicate-code error is surfaced separately so the
// caller can retry with a fresh code.
func (r *supplierRepo) CreateOrGet(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, bool, error) {
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers (
		id, organization_id, code, display_name, normalized_key,
		validation_status, is_active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (organization_id, normalized_key) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.OrganizationID, supplier.Code, supplier.DisplayName,
		supplier.NormalizedKey, supplier.ValidationStatus, supplier.IsActive,
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return nil, false, domain.ErrDuplicateSupplierCode
		}
		return nil, false, fmt.Errorf("supplierRepo.CreateOrGet: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		return supplier, true, nil
	}

	existing, err := r.GetByNormalizedKey(ctx, supplier.OrganizationID, supplier.NormalizedKey)
	if err != nil {
		return nil, false, fmt.Errorf("supplierRepo.CreateOrGet re-read: %w", err)
	}
	return existing, false, nil
}

func (r *supplierRepo) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM suppliers WHERE id = $1 AND organization_id = $2", supplierID, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *supplierRepo) GetByNormalizedKey(ctx context.Context, orgID uuid.UUID, key string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM suppliers WHERE organization_id = $1 AND normalized_key = $2", orgID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByNormalizedKey: %w", err)
	}
	return &s, nil
}

func (r *supplierRepo) CodeExists(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM suppliers WHERE organization_id = $1 AND code = $2)", orgID, code)
	if err != nil {
		return false, fmt.Errorf("supplierRepo.CodeExists: %w", err)
	}
	return exists, nil
}

func (r *supplierRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Supplier, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM suppliers WHERE organization_id = $1", orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.ListByOrganization count: %w", err)
	}

	var suppliers []domain.Supplier
	err = r.db.SelectContext(ctx, &suppliers,
		`SELECT * FROM suppliers WHERE organization_id = $1
		 ORDER BY display_name LIMIT $2 OFFSET $3`, orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.ListByOrganization: %w", err)
	}
	return suppliers, total, nil
}

func (r *supplierRepo) ListValidated(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.db.SelectContext(ctx, &suppliers,
		`SELECT * FROM suppliers
		 WHERE organization_id = $1 AND validation_status = $2 AND is_active = true
		 ORDER BY display_name`, orgID, domain.SupplierValidated)
	if err != nil {
		return nil, fmt.Errorf("supplierRepo.ListValidated: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	supplier.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE suppliers SET
			code = $1, display_name = $2, normalized_key = $3,
			validation_status = $4, is_active = $5, updated_at = $6
		 WHERE id = $7 AND organization_id = $8`,
		supplier.Code, supplier.DisplayName, supplier.NormalizedKey,
		supplier.ValidationStatus, supplier.IsActive, supplier.UpdatedAt,
		supplier.ID, supplier.OrganizationID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return domain.ErrDuplicateSupplierCode
		}
		return fmt.Errorf("supplierRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

type supplierAliasRepo struct {
	db *sqlx.DB
}

// NewSupplierAliasRepo creates a new PostgreSQL-backed SupplierAliasRepository.
func NewSupplierAliasRepo(db *sqlx.DB) port.SupplierAliasRepository {
	return &supplierAliasRepo{db: db}
}

func (r *supplierAliasRepo) Upsert(ctx context.Context, alias *domain.SupplierAlias) error {
	alias.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO supplier_aliases (supplier_id, alias_key, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (supplier_id, alias_key) DO NOTHING`,
		alias.SupplierID, alias.AliasKey, alias.CreatedAt)
	if err != nil {
		return fmt.Errorf("supplierAliasRepo.Upsert: %w", err)
	}
	return nil
}

func (r *supplierAliasRepo) GetByAliasKey(ctx context.Context, orgID uuid.UUID, aliasKey string) (*domain.SupplierAlias, error) {
	var a domain.SupplierAlias
	err := r.db.GetContext(ctx, &a,
		`SELECT sa.supplier_id, sa.alias_key, sa.created_at
		 FROM supplier_aliases sa
		 JOIN suppliers s ON s.id = sa.supplier_id
		 WHERE s.organization_id = $1 AND sa.alias_key = $2`, orgID, aliasKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierAliasRepo.GetByAliasKey: %w", err)
	}
	return &a, nil
}

func (r *supplierAliasRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]domain.SupplierAlias, error) {
	var aliases []domain.SupplierAlias
	err := r.db.SelectContext(ctx, &aliases,
		`SELECT * FROM supplier_aliases WHERE supplier_id = $1 ORDER BY created_at`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("supplierAliasRepo.ListBySupplier: %w", err)
	}
	return aliases, nil
}
