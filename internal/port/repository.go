package port

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
)

// OrganizationRepository defines the contract for organization persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	List(ctx context.Context, offset, limit int) ([]domain.Organization, int, error)
	Update(ctx context.Context, org *domain.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
// All query methods include orgID to enforce organization isolation at the
// data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, orgID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*domain.User, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	ListAdmins(ctx context.Context, orgID uuid.UUID) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, orgID, userID uuid.UUID) error
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, orgID, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, orgID, fileID uuid.UUID) error
}

// LedgerAccountRepository defines the contract for the seeded chart of
// accounts used to label export rows.
type LedgerAccountRepository interface {
	Upsert(ctx context.Context, account *domain.LedgerAccount) error
	GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*domain.LedgerAccount, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.LedgerAccount, error)
}
