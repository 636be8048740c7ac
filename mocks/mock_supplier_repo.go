package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockSupplierRepo is a mock implementation of port.SupplierRepository.
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) CreateOrGet(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, bool, error) {
	args := m.Called(ctx, supplier)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Supplier), args.Bool(1), args.Error(2)
}

func (m *MockSupplierRepo) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	args := m.Called(ctx, orgID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) GetByNormalizedKey(ctx context.Context, orgID uuid.UUID, key string) (*domain.Supplier, error) {
	args := m.Called(ctx, orgID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) CodeExists(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, orgID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Supplier, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Supplier), args.Int(1), args.Error(2)
}

func (m *MockSupplierRepo) ListValidated(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

// MockSupplierAliasRepo is a mock implementation of port.SupplierAliasRepository.
type MockSupplierAliasRepo struct {
	mock.Mock
}

func (m *MockSupplierAliasRepo) Upsert(ctx context.Context, alias *domain.SupplierAlias) error {
	args := m.Called(ctx, alias)
	return args.Error(0)
}

func (m *MockSupplierAliasRepo) GetByAliasKey(ctx context.Context, orgID uuid.UUID, aliasKey string) (*domain.SupplierAlias, error) {
	args := m.Called(ctx, orgID, aliasKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierAlias), args.Error(1)
}

func (m *MockSupplierAliasRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]domain.SupplierAlias, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierAlias), args.Error(1)
}
