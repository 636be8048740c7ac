package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func pendingSupplier(orgID uuid.UUID) *domain.Supplier {
	return &domain.Supplier{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		Code:             "METROF-001",
		DisplayName:      "Metro France",
		NormalizedKey:    "metro france",
		ValidationStatus: domain.SupplierPending,
		IsActive:         false,
	}
}

func TestSupplierValidate_ActivatesAndMarksValidated(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	svc := service.NewSupplierService(repo, aliases)

	orgID := uuid.New()
	sup := pendingSupplier(orgID)

	repo.On("GetByID", mock.Anything, orgID, sup.ID).Return(sup, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return s.ValidationStatus == domain.SupplierValidated && s.IsActive
	})).Return(nil)

	result, err := svc.Validate(context.Background(), orgID, sup.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.SupplierValidated, result.ValidationStatus)
	assert.True(t, result.IsActive)
	repo.AssertExpectations(t)
}

func TestSupplierDeactivate_KeepsValidationStatus(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	svc := service.NewSupplierService(repo, aliases)

	orgID := uuid.New()
	sup := pendingSupplier(orgID)
	sup.ValidationStatus = domain.SupplierValidated
	sup.IsActive = true

	repo.On("GetByID", mock.Anything, orgID, sup.ID).Return(sup, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return !s.IsActive && s.ValidationStatus == domain.SupplierValidated
	})).Return(nil)

	result, err := svc.Deactivate(context.Background(), orgID, sup.ID)

	require.NoError(t, err)
	assert.False(t, result.IsActive)
}

func TestSupplierAddAlias_NormalizesName(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	svc := service.NewSupplierService(repo, aliases)

	orgID := uuid.New()
	sup := pendingSupplier(orgID)

	repo.On("GetByID", mock.Anything, orgID, sup.ID).Return(sup, nil)
	aliases.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.SupplierAlias) bool {
		return a.SupplierID == sup.ID && a.AliasKey == "metro cash carry"
	})).Return(nil)

	alias, err := svc.AddAlias(context.Background(), orgID, sup.ID, "SARL Métro Cash & Carry")

	require.NoError(t, err)
	assert.Equal(t, "metro cash carry", alias.AliasKey)
	aliases.AssertExpectations(t)
}

func TestSupplierAddAlias_RejectsStopwordOnlyName(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	svc := service.NewSupplierService(repo, aliases)

	orgID := uuid.New()
	sup := pendingSupplier(orgID)
	repo.On("GetByID", mock.Anything, orgID, sup.ID).Return(sup, nil)

	_, err := svc.AddAlias(context.Background(), orgID, sup.ID, "SARL SAS")

	assert.ErrorIs(t, err, domain.ErrInvalidSupplierName)
	aliases.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSupplierListAliases_ChecksOwnership(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	svc := service.NewSupplierService(repo, aliases)

	orgID := uuid.New()
	supplierID := uuid.New()
	repo.On("GetByID", mock.Anything, orgID, supplierID).
		Return(nil, domain.ErrSupplierNotFound)

	_, err := svc.ListAliases(context.Background(), orgID, supplierID)

	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
	aliases.AssertNotCalled(t, "ListBySupplier", mock.Anything, mock.Anything)
}
