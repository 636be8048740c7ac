package port

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
)

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	// CreateOrGet inserts the supplier, or on a normalized-key conflict
	// re-reads and returns the existing row. Never check-then-insert: this is
	// the only safe pattern under concurrent ingestion of invoices from the
	// same supplier. The returned bool reports whether a new row was created.
	CreateOrGet(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, bool, error)
	GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	GetByNormalizedKey(ctx context.Context, orgID uuid.UUID, key string) (*domain.Supplier, error)
	CodeExists(ctx context.Context, orgID uuid.UUID, code string) (bool, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Supplier, int, error)
	// ListValidated returns validated suppliers only, the candidate set for
	// fuzzy matching.
	ListValidated(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
}

// SupplierAliasRepository defines the contract for supplier alias persistence.
type SupplierAliasRepository interface {
	// Upsert inserts the alias, ignoring a duplicate-key conflict.
	Upsert(ctx context.Context, alias *domain.SupplierAlias) error
	GetByAliasKey(ctx context.Context, orgID uuid.UUID, aliasKey string) (*domain.SupplierAlias, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]domain.SupplierAlias, error)
}
