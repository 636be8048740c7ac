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

type ledgerAccountRepo struct {
	db *sqlx.DB
}

// NewLedgerAccountRepo creates a new PostgreSQL-backed LedgerAccountRepository.
func NewLedgerAccountRepo(db *sqlx.DB) port.LedgerAccountRepository {
	return &ledgerAccountRepo{db: db}
}

func (r *ledgerAccountRepo) Upsert(ctx context.Context, account *domain.LedgerAccount) error {
	account.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_accounts (id, organization_id, code, label, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (organization_id, code) DO UPDATE SET label = EXCLUDED.label`,
		account.ID, account.OrganizationID, account.Code, account.Label, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("ledgerAccountRepo.Upsert: %w", err)
	}
	return nil
}

func (r *ledgerAccountRepo) GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*domain.LedgerAccount, error) {
	var account domain.LedgerAccount
	err := r.db.GetContext(ctx, &account,
		"SELECT * FROM ledger_accounts WHERE organization_id = $1 AND code = $2", orgID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ledgerAccountRepo.GetByCode: %w", err)
	}
	return &account, nil
}

func (r *ledgerAccountRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.LedgerAccount, error) {
	var accounts []domain.LedgerAccount
	err := r.db.SelectContext(ctx, &accounts,
		"SELECT * FROM ledger_accounts WHERE organization_id = $1 ORDER BY code", orgID)
	if err != nil {
		return nil, fmt.Errorf("ledgerAccountRepo.ListByOrganization: %w", err)
	}
	return accounts, nil
}
