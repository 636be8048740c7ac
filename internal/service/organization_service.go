package service

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// CreateOrganizationInput is the DTO for creating an organization.
type CreateOrganizationInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateOrganizationInput is the DTO for updating an organization.
type UpdateOrganizationInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	IsActive *bool   `json:"is_active"`
}

// OrganizationService defines the organization management contract.
type OrganizationService interface {
	Create(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context, offset, limit int) ([]domain.Organization, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*domain.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type organizationService struct {
	repo port.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService implementation.
func NewOrganizationService(repo port.OrganizationRepository) OrganizationService {
	return &organizationService{repo: repo}
}

func (s *organizationService) Create(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	org := &domain.Organization{
		Name:     input.Name,
		Slug:     input.Slug,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *organizationService) List(ctx context.Context, offset, limit int) ([]domain.Organization, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *organizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*domain.Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Slug != nil {
		org.Slug = *input.Slug
	}
	if input.IsActive != nil {
		org.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
