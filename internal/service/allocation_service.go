package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"facturo/internal/domain"
	"facturo/internal/port"
	"facturo/internal/recon"
)

// CreateAllocationInput is the DTO for creating an allocation.
type CreateAllocationInput struct {
	OrganizationID uuid.UUID
	InvoiceID      uuid.UUID
	UserID         uuid.UUID
	AccountCode    string          `json:"account_code" binding:"required"`
	Label          string          `json:"label"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateAllocationInput is the DTO for updating an allocation.
type UpdateAllocationInput struct {
	AccountCode *string          `json:"account_code"`
	Label       *string          `json:"label"`
	Amount      *decimal.Decimal `json:"amount"`
}

// AllocationService defines the allocation management contract.
type AllocationService interface {
	Create(ctx context.Context, input CreateAllocationInput) (*domain.Allocation, error)
	GetByID(ctx context.Context, orgID, allocationID uuid.UUID) (*domain.Allocation, error)
	ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error)
	Update(ctx context.Context, orgID, allocationID uuid.UUID, input UpdateAllocationInput) (*domain.Allocation, error)
	Delete(ctx context.Context, orgID, allocationID uuid.UUID) error
	// Reconcile recomputes the item index lists for every allocation on the
	// invoice against its current line items.
	Reconcile(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error)
}

type allocationService struct {
	allocRepo port.AllocationRepository
	invRepo   port.InvoiceRepository
}

// NewAllocationService creates a new AllocationService implementation.
func NewAllocationService(allocRepo port.AllocationRepository, invRepo port.InvoiceRepository) AllocationService {
	return &allocationService{allocRepo: allocRepo, invRepo: invRepo}
}

func (s *allocationService) Create(ctx context.Context, input CreateAllocationInput) (*domain.Allocation, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAllocationAmount
	}

	inv, err := s.invRepo.GetByID(ctx, input.OrganizationID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.ExtractionStatus != domain.ExtractionStatusCompleted {
		return nil, domain.ErrInvoiceNotExtracted
	}

	a := &domain.Allocation{
		ID:             uuid.New(),
		InvoiceID:      input.InvoiceID,
		OrganizationID: input.OrganizationID,
		UserID:         input.UserID,
		AccountCode:    input.AccountCode,
		Label:          input.Label,
		Amount:         input.Amount,
		ItemIndices:    domain.IndexList{},
	}
	if err := s.allocRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	// A new allocation shifts every other allocation's share of the items.
	if _, err := s.Reconcile(ctx, input.OrganizationID, input.InvoiceID); err != nil {
		return nil, err
	}
	refreshed, err := s.allocRepo.GetByID(ctx, input.OrganizationID, a.ID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

func (s *allocationService) GetByID(ctx context.Context, orgID, allocationID uuid.UUID) (*domain.Allocation, error) {
	return s.allocRepo.GetByID(ctx, orgID, allocationID)
}

func (s *allocationService) ListByInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error) {
	return s.allocRepo.ListByInvoice(ctx, orgID, invoiceID)
}

func (s *allocationService) Update(ctx context.Context, orgID, allocationID uuid.UUID, input UpdateAllocationInput) (*domain.Allocation, error) {
	a, err := s.allocRepo.GetByID(ctx, orgID, allocationID)
	if err != nil {
		return nil, err
	}

	if input.AccountCode != nil {
		a.AccountCode = *input.AccountCode
	}
	if input.Label != nil {
		a.Label = *input.Label
	}
	amountChanged := false
	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, domain.ErrInvalidAllocationAmount
		}
		amountChanged = !a.Amount.Equal(*input.Amount)
		a.Amount = *input.Amount
	}

	if err := s.allocRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if amountChanged {
		if _, err := s.Reconcile(ctx, orgID, a.InvoiceID); err != nil {
			return nil, err
		}
		return s.allocRepo.GetByID(ctx, orgID, allocationID)
	}
	return a, nil
}

func (s *allocationService) Delete(ctx context.Context, orgID, allocationID uuid.UUID) error {
	a, err := s.allocRepo.GetByID(ctx, orgID, allocationID)
	if err != nil {
		return err
	}
	if err := s.allocRepo.Delete(ctx, orgID, allocationID); err != nil {
		return err
	}
	// The survivors absorb the deleted allocation's items.
	_, err = s.Reconcile(ctx, orgID, a.InvoiceID)
	return err
}

func (s *allocationService) Reconcile(ctx context.Context, orgID, invoiceID uuid.UUID) ([]domain.Allocation, error) {
	inv, err := s.invRepo.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.ExtractionStatus != domain.ExtractionStatusCompleted {
		return nil, domain.ErrInvoiceNotExtracted
	}

	var extracted domain.ExtractedInvoice
	if err := json.Unmarshal(inv.ExtractedData, &extracted); err != nil {
		return nil, domain.ErrInvalidExtractedData
	}

	allocations, err := s.allocRepo.ListByInvoice(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return allocations, nil
	}

	lists, err := recon.Reallocate(extracted.Items, allocations)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(allocations))
	for i := range allocations {
		ids[i] = allocations[i].ID
	}
	if err := s.allocRepo.UpdateItemIndices(ctx, orgID, ids, lists); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range allocations {
		allocations[i].ItemIndices = lists[i]
		allocations[i].UpdatedAt = now
	}
	return allocations, nil
}
