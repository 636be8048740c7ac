package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockLedgerAccountRepo is a mock implementation of port.LedgerAccountRepository.
type MockLedgerAccountRepo struct {
	mock.Mock
}

func (m *MockLedgerAccountRepo) Upsert(ctx context.Context, account *domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepo) GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}
