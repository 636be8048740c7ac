package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func TestJournalXLSX_RendersAllocationsAsRows(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	supplierRepo := new(mocks.MockSupplierRepo)
	accountRepo := new(mocks.MockLedgerAccountRepo)
	svc := service.NewExportService(allocRepo, invRepo, supplierRepo, accountRepo)

	orgID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	supplierID := uuid.New()
	inv := completedInvoice(t, orgID)
	inv.SupplierID = &supplierID

	alloc := domain.Allocation{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		AccountCode: "606400",
		Label:       "Fournitures",
		Amount:      decimal.RequireFromString("120.50"),
	}

	allocRepo.On("ListByPeriod", mock.Anything, orgID, from, to).
		Return([]domain.Allocation{alloc}, nil)
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)
	supplierRepo.On("GetByID", mock.Anything, orgID, supplierID).
		Return(&domain.Supplier{ID: supplierID, Code: "METROF-001", DisplayName: "Metro France"}, nil)
	accountRepo.On("GetByCode", mock.Anything, orgID, "606400").
		Return(&domain.LedgerAccount{Code: "606400", Label: "Fournitures administratives"}, nil)

	data, filename, err := svc.JournalXLSX(context.Background(), orgID, from, to)

	require.NoError(t, err)
	assert.Equal(t, "journal_2025-01-01_2025-02-01.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Journal")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + 1 data row

	assert.Equal(t, "Supplier Code", rows[0][2])
	assert.Equal(t, "METROF-001", rows[1][2])
	assert.Equal(t, "Metro France", rows[1][3])
	assert.Equal(t, "606400", rows[1][4])
	assert.Equal(t, "Fournitures administratives", rows[1][5])
	assert.Equal(t, "120.5", rows[1][7])
}

func TestJournalXLSX_UnknownAccountCodeExportsWithoutLabel(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	supplierRepo := new(mocks.MockSupplierRepo)
	accountRepo := new(mocks.MockLedgerAccountRepo)
	svc := service.NewExportService(allocRepo, invRepo, supplierRepo, accountRepo)

	orgID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	inv := completedInvoice(t, orgID)
	alloc := domain.Allocation{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		AccountCode: "CUSTOM-99",
		Amount:      decimal.RequireFromString("10.00"),
	}

	allocRepo.On("ListByPeriod", mock.Anything, orgID, from, to).
		Return([]domain.Allocation{alloc}, nil)
	invRepo.On("GetByID", mock.Anything, orgID, inv.ID).Return(inv, nil)
	accountRepo.On("GetByCode", mock.Anything, orgID, "CUSTOM-99").
		Return(nil, domain.ErrNotFound)

	data, _, err := svc.JournalXLSX(context.Background(), orgID, from, to)

	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Journal")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CUSTOM-99", rows[1][4])
	// excelize returns an empty cell as a short row; label column stays blank.
	if len(rows[1]) > 5 {
		assert.Empty(t, rows[1][5])
	}
}

func TestJournalXLSX_EmptyPeriodYieldsHeaderOnly(t *testing.T) {
	allocRepo := new(mocks.MockAllocationRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	supplierRepo := new(mocks.MockSupplierRepo)
	accountRepo := new(mocks.MockLedgerAccountRepo)
	svc := service.NewExportService(allocRepo, invRepo, supplierRepo, accountRepo)

	orgID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	allocRepo.On("ListByPeriod", mock.Anything, orgID, from, to).
		Return([]domain.Allocation{}, nil)

	data, _, err := svc.JournalXLSX(context.Background(), orgID, from, to)

	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Journal")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	invRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
