package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockAllocationRepo is a mock implementation of port.AllocationRepository.
type MockAllocationRepo struct {
	mock.Mock
}

func (m *MockAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepo) GetByID(ctx context.Context, orgID, allocationID uuid.UUID) (*domain.Allocation, error) {
	args := m.Called(ctx, orgID, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepo) ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepo) ListByPeriod(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]domain.Allocation, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepo) Update(ctx context.Context, a *domain.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepo) UpdateItemIndices(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, indices []domain.IndexList) error {
	args := m.Called(ctx, orgID, ids, indices)
	return args.Error(0)
}

func (m *MockAllocationRepo) Delete(ctx context.Context, orgID, allocationID uuid.UUID) error {
	args := m.Called(ctx, orgID, allocationID)
	return args.Error(0)
}
