package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func extractedInvoiceJSON(t *testing.T, items []domain.LineItem) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(&domain.ExtractedInvoice{Items: items})
	require.NoError(t, err)
	return data
}

func completedInvoice(t *testing.T, orgID uuid.UUID) *domain.Invoice {
	t.Helper()
	return &domain.Invoice{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ExtractedData: extractedInvoiceJSON(t, []domain.LineItem{
			{Description: "Papier A4", Quantity: dec("5"), UnitPrice: dec("4.20")},
			{Description: "Classeurs", Quantity: dec("2"), UnitPrice: dec("3.10")},
			{Description: "Agrafeuses", Quantity: dec("1"), UnitPrice: dec("8.00")},
		}),
		ExtractionStatus: domain.ExtractionStatusCompleted,
	}
}

func TestAllocationCreate_ReconcilesInvoice(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)

	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)

	allocRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Allocation) bool {
		return a.InvoiceID == inv.ID && a.AccountCode == "606400" && a.ID != uuid.Nil
	})).Return(nil)

	stored := &domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		AccountCode:    "606400",
		Amount:         decimal.RequireFromString("29.00"),
	}
	allocRepo.On("ListByInvoice", mock.Anything, orgID, inv.ID).
		Return([]domain.Allocation{*stored}, nil)
	allocRepo.On("UpdateItemIndices", mock.Anything, orgID, mock.Anything,
		mock.MatchedBy(func(lists []domain.IndexList) bool {
			// A single allocation takes every item.
			return len(lists) == 1 && len(lists[0]) == 3
		})).Return(nil)
	allocRepo.On("GetByID", mock.Anything, orgID, mock.AnythingOfType("uuid.UUID")).
		Return(stored, nil)

	result, err := svc.Create(context.Background(), service.CreateAllocationInput{
		OrganizationID: orgID,
		InvoiceID:      inv.ID,
		UserID:         uuid.New(),
		AccountCode:    "606400",
		Amount:         decimal.RequireFromString("29.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "606400", result.AccountCode)
	allocRepo.AssertExpectations(t)
}

func TestAllocationCreate_RejectsNegativeAmount(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	_, err := svc.Create(context.Background(), service.CreateAllocationInput{
		OrganizationID: uuid.New(),
		InvoiceID:      uuid.New(),
		AccountCode:    "606400",
		Amount:         decimal.RequireFromString("-1"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAllocationAmount)
	allocRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAllocationCreate_RequiresExtractedInvoice(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)
	inv.ExtractionStatus = domain.ExtractionStatusProcessing
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)

	_, err := svc.Create(context.Background(), service.CreateAllocationInput{
		OrganizationID: orgID,
		InvoiceID:      inv.ID,
		AccountCode:    "606400",
		Amount:         decimal.RequireFromString("10"),
	})

	assert.ErrorIs(t, err, domain.ErrInvoiceNotExtracted)
}

func TestAllocationUpdate_AmountChangeTriggersReconcile(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)
	a := &domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		AccountCode:    "606400",
		Amount:         decimal.RequireFromString("10.00"),
	}

	allocRepo.On("GetByID", mock.Anything, orgID, a.ID).Return(a, nil)
	allocRepo.On("Update", mock.Anything, a).Return(nil)
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)
	allocRepo.On("ListByInvoice", mock.Anything, orgID, inv.ID).
		Return([]domain.Allocation{*a}, nil)
	allocRepo.On("UpdateItemIndices", mock.Anything, orgID, []uuid.UUID{a.ID}, mock.Anything).
		Return(nil)

	newAmount := decimal.RequireFromString("25.00")
	_, err := svc.Update(context.Background(), orgID, a.ID, service.UpdateAllocationInput{
		Amount: &newAmount,
	})

	require.NoError(t, err)
	allocRepo.AssertCalled(t, "UpdateItemIndices", mock.Anything, orgID, []uuid.UUID{a.ID}, mock.Anything)
}

func TestAllocationUpdate_LabelOnlySkipsReconcile(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	a := &domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      uuid.New(),
		OrganizationID: orgID,
		Amount:         decimal.RequireFromString("10.00"),
	}

	allocRepo.On("GetByID", mock.Anything, orgID, a.ID).Return(a, nil)
	allocRepo.On("Update", mock.Anything, a).Return(nil)

	label := "Fournitures"
	result, err := svc.Update(context.Background(), orgID, a.ID, service.UpdateAllocationInput{
		Label: &label,
	})

	require.NoError(t, err)
	assert.Equal(t, "Fournitures", result.Label)
	allocRepo.AssertNotCalled(t, "UpdateItemIndices", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAllocationDelete_SurvivorsAbsorbItems(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)
	doomed := &domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		Amount:         decimal.RequireFromString("10.00"),
	}
	survivor := domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		Amount:         decimal.RequireFromString("19.00"),
	}

	allocRepo.On("GetByID", mock.Anything, orgID, doomed.ID).Return(doomed, nil)
	allocRepo.On("Delete", mock.Anything, orgID, doomed.ID).Return(nil)
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)
	allocRepo.On("ListByInvoice", mock.Anything, orgID, inv.ID).
		Return([]domain.Allocation{survivor}, nil)
	allocRepo.On("UpdateItemIndices", mock.Anything, orgID, []uuid.UUID{survivor.ID},
		mock.MatchedBy(func(lists []domain.IndexList) bool {
			return len(lists) == 1 && len(lists[0]) == 3
		})).Return(nil)

	err := svc.Delete(context.Background(), orgID, doomed.ID)

	require.NoError(t, err)
	allocRepo.AssertExpectations(t)
}

func TestReconcile_SplitsItemsByAmountShare(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)

	first := domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		Amount:         decimal.RequireFromString("21.00"),
	}
	second := domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		OrganizationID: orgID,
		Amount:         decimal.RequireFromString("14.20"),
	}

	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)
	allocRepo.On("ListByInvoice", mock.Anything, orgID, inv.ID).
		Return([]domain.Allocation{first, second}, nil)
	allocRepo.On("UpdateItemIndices", mock.Anything, orgID,
		[]uuid.UUID{first.ID, second.ID},
		mock.MatchedBy(func(lists []domain.IndexList) bool {
			if len(lists) != 2 {
				return false
			}
			// Every item lands in exactly one list.
			seen := map[int]int{}
			for _, l := range lists {
				for _, idx := range l {
					seen[idx]++
				}
			}
			return len(seen) == 3 && seen[0] == 1 && seen[1] == 1 && seen[2] == 1
		})).Return(nil)

	result, err := svc.Reconcile(context.Background(), orgID, inv.ID)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.NotNil(t, result[0].ItemIndices)
	assert.NotNil(t, result[1].ItemIndices)
	allocRepo.AssertExpectations(t)
}

func TestReconcile_RequiresExtractedInvoice(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewAllocationService(allocRepo, invRepo)

	orgID := uuid.New()
	inv := completedInvoice(t, orgID)
	inv.ExtractionStatus = domain.ExtractionStatusFailed
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)

	_, err := svc.Reconcile(context.Background(), orgID, inv.ID)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotExtracted)
}
