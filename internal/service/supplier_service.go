package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
	"facturo/internal/supplier"
)

// UpdateSupplierInput is the DTO for updating a supplier.
type UpdateSupplierInput struct {
	Code        *string `json:"code"`
	DisplayName *string `json:"display_name"`
	IsActive    *bool   `json:"is_active"`
}

// SupplierService defines the supplier management contract.
type SupplierService interface {
	GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, orgID, supplierID uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error)
	// Validate marks a pending supplier as reviewed and activates it, making
	// it eligible as a fuzzy-match candidate for future resolutions.
	Validate(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	Deactivate(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	ListAliases(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.SupplierAlias, error)
	AddAlias(ctx context.Context, orgID, supplierID uuid.UUID, rawName string) (*domain.SupplierAlias, error)
}

type supplierService struct {
	repo    port.SupplierRepository
	aliases port.SupplierAliasRepository
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(repo port.SupplierRepository, aliases port.SupplierAliasRepository) SupplierService {
	return &supplierService{repo: repo, aliases: aliases}
}

func (s *supplierService) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, orgID, supplierID)
}

func (s *supplierService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Supplier, int, error) {
	return s.repo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *supplierService) Update(ctx context.Context, orgID, supplierID uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error) {
	sup, err := s.repo.GetByID(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		sup.Code = *input.Code
	}
	if input.DisplayName != nil {
		sup.DisplayName = *input.DisplayName
	}
	if input.IsActive != nil {
		sup.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Validate(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	sup, err := s.repo.GetByID(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}

	sup.ValidationStatus = domain.SupplierValidated
	sup.IsActive = true
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}

	log.Printf("supplierService.Validate: supplier %s (%s) validated", sup.ID, sup.Code)
	return sup, nil
}

func (s *supplierService) Deactivate(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	sup, err := s.repo.GetByID(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}

	sup.IsActive = false
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) ListAliases(ctx context.Context, orgID, supplierID uuid.UUID) ([]domain.SupplierAlias, error) {
	if _, err := s.repo.GetByID(ctx, orgID, supplierID); err != nil {
		return nil, err
	}
	return s.aliases.ListBySupplier(ctx, supplierID)
}

func (s *supplierService) AddAlias(ctx context.Context, orgID, supplierID uuid.UUID, rawName string) (*domain.SupplierAlias, error) {
	if _, err := s.repo.GetByID(ctx, orgID, supplierID); err != nil {
		return nil, err
	}

	key := supplier.Normalize(rawName)
	if key == "" {
		return nil, domain.ErrInvalidSupplierName
	}

	alias := &domain.SupplierAlias{SupplierID: supplierID, AliasKey: key}
	if err := s.aliases.Upsert(ctx, alias); err != nil {
		return nil, err
	}
	return alias, nil
}
