package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/export"
	"facturo/internal/port"
)

// ExportService builds accounting exports from reconciled allocations.
type ExportService interface {
	// JournalXLSX renders all allocations created in [from, to) as an Excel
	// accounting journal and returns the file bytes with a suggested filename.
	JournalXLSX(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]byte, string, error)
}

type exportService struct {
	allocRepo    port.AllocationRepository
	invRepo      port.InvoiceRepository
	supplierRepo port.SupplierRepository
	accountRepo  port.LedgerAccountRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	allocRepo port.AllocationRepository,
	invRepo port.InvoiceRepository,
	supplierRepo port.SupplierRepository,
	accountRepo port.LedgerAccountRepository,
) ExportService {
	return &exportService{
		allocRepo:    allocRepo,
		invRepo:      invRepo,
		supplierRepo: supplierRepo,
		accountRepo:  accountRepo,
	}
}

func (s *exportService) JournalXLSX(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]byte, string, error) {
	allocations, err := s.allocRepo.ListByPeriod(ctx, orgID, from, to)
	if err != nil {
		return nil, "", err
	}

	invoices := make(map[uuid.UUID]*domain.Invoice)
	extracted := make(map[uuid.UUID]*domain.ExtractedInvoice)
	suppliers := make(map[uuid.UUID]*domain.Supplier)
	labels := make(map[string]string)

	rows := make([]export.JournalRow, 0, len(allocations))
	for i := range allocations {
		a := &allocations[i]

		inv, ok := invoices[a.InvoiceID]
		if !ok {
			inv, err = s.invRepo.GetByID(ctx, orgID, a.InvoiceID)
			if err != nil {
				return nil, "", err
			}
			invoices[a.InvoiceID] = inv

			var ext domain.ExtractedInvoice
			if inv.ExtractionStatus == domain.ExtractionStatusCompleted {
				if jerr := json.Unmarshal(inv.ExtractedData, &ext); jerr == nil {
					extracted[a.InvoiceID] = &ext
				}
			}
		}

		row := export.JournalRow{
			AccountCode:     a.AccountCode,
			AllocationLabel: a.Label,
			Amount:          a.Amount,
		}

		if ext := extracted[a.InvoiceID]; ext != nil {
			row.Date = ext.InvoiceDate
			row.Piece = ext.InvoiceNumber
			row.Currency = ext.Currency
		}

		if inv.SupplierID != nil {
			sup, ok := suppliers[*inv.SupplierID]
			if !ok {
				sup, err = s.supplierRepo.GetByID(ctx, orgID, *inv.SupplierID)
				if err != nil && !errors.Is(err, domain.ErrSupplierNotFound) {
					return nil, "", err
				}
				suppliers[*inv.SupplierID] = sup
			}
			if sup != nil {
				row.SupplierCode = sup.Code
				row.SupplierName = sup.DisplayName
			}
		}

		label, ok := labels[a.AccountCode]
		if !ok {
			account, aerr := s.accountRepo.GetByCode(ctx, orgID, a.AccountCode)
			switch {
			case aerr == nil:
				label = account.Label
			case errors.Is(aerr, domain.ErrNotFound):
				// Free-text account codes are allowed; they just export
				// without a label.
				label = ""
			default:
				return nil, "", aerr
			}
			labels[a.AccountCode] = label
		}
		row.AccountLabel = label

		rows = append(rows, row)
	}

	wb, err := export.NewJournalWorkbook(rows)
	if err != nil {
		return nil, "", fmt.Errorf("exportService.JournalXLSX: %w", err)
	}
	defer wb.Close()

	data, err := wb.Bytes()
	if err != nil {
		return nil, "", fmt.Errorf("exportService.JournalXLSX: %w", err)
	}

	filename := fmt.Sprintf("journal_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return data, filename, nil
}
