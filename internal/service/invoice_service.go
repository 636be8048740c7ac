package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/extract"
	"facturo/internal/port"
	"facturo/internal/recon"
	"facturo/internal/supplier"
)

// CreateInvoiceInput is the DTO for registering an uploaded file as an invoice.
type CreateInvoiceInput struct {
	OrganizationID uuid.UUID
	FileID         uuid.UUID
	CreatedBy      uuid.UUID
}

// EditExtractedDataInput is the DTO for manually editing an invoice's extracted data.
type EditExtractedDataInput struct {
	OrganizationID uuid.UUID
	InvoiceID      uuid.UUID
	UserID         uuid.UUID
	Data           json.RawMessage
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	CreateFromFile(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetByFileID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListExtracted(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	EditExtractedData(ctx context.Context, input EditExtractedDataInput) (*domain.Invoice, error)
	RetryExtraction(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error)
	Delete(ctx context.Context, orgID, invoiceID uuid.UUID) error
	// ExtractInvoice runs the full extraction pipeline for one claimed invoice.
	// Called from the queue worker; failures are recorded on the invoice, not
	// returned.
	ExtractInvoice(ctx context.Context, inv *domain.Invoice, maxAttempts int)
}

type invoiceService struct {
	invRepo   port.InvoiceRepository
	fileRepo  port.FileMetaRepository
	allocRepo port.AllocationRepository
	userRepo  port.UserRepository
	storage   port.ObjectStorage
	extractor port.InvoiceExtractor
	resolver  *supplier.Resolver
	email     port.EmailSender
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invRepo port.InvoiceRepository,
	fileRepo port.FileMetaRepository,
	allocRepo port.AllocationRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	extractor port.InvoiceExtractor,
	resolver *supplier.Resolver,
	email port.EmailSender,
) InvoiceService {
	return &invoiceService{
		invRepo:   invRepo,
		fileRepo:  fileRepo,
		allocRepo: allocRepo,
		userRepo:  userRepo,
		storage:   storage,
		extractor: extractor,
		resolver:  resolver,
		email:     email,
	}
}

func (s *invoiceService) CreateFromFile(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	file, err := s.fileRepo.GetByID(ctx, input.OrganizationID, input.FileID)
	if err != nil {
		return nil, err
	}
	if file.Status != domain.FileStatusUploaded {
		return nil, domain.ErrUploadFailed
	}

	inv := &domain.Invoice{
		ID:               uuid.New(),
		OrganizationID:   input.OrganizationID,
		FileID:           input.FileID,
		ExtractedData:    json.RawMessage("{}"),
		ExtractionStatus: domain.ExtractionStatusQueued,
		CreatedBy:        input.CreatedBy,
	}
	if err := s.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	log.Printf("invoiceService.CreateFromFile: invoice %s queued for file %s (org %s)",
		inv.ID, input.FileID, input.OrganizationID)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invRepo.GetByID(ctx, orgID, invoiceID)
}

func (s *invoiceService) GetByFileID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.Invoice, error) {
	return s.invRepo.GetByFileID(ctx, orgID, fileID)
}

func (s *invoiceService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invRepo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *invoiceService) ListExtracted(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invRepo.ListExtracted(ctx, orgID, offset, limit)
}

// EditExtractedData replaces an invoice's extracted data with a manual edit.
// The edited line items are deduplicated the same way extraction output is,
// and every allocation on the invoice is re-mapped to the new item array.
func (s *invoiceService) EditExtractedData(ctx context.Context, input EditExtractedDataInput) (*domain.Invoice, error) {
	inv, err := s.invRepo.GetByID(ctx, input.OrganizationID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.ExtractionStatus != domain.ExtractionStatusCompleted {
		return nil, domain.ErrInvoiceNotExtracted
	}

	var extracted domain.ExtractedInvoice
	if err := json.Unmarshal(input.Data, &extracted); err != nil {
		return nil, domain.ErrInvalidExtractedData
	}

	extracted.Items = recon.Deduplicate(extracted.Items).Unique

	data, err := json.Marshal(&extracted)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.EditExtractedData: %w", err)
	}
	inv.ExtractedData = data

	if err := s.invRepo.UpdateExtractedData(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.reconcileAllocations(ctx, inv, extracted.Items); err != nil {
		return nil, err
	}

	log.Printf("invoiceService.EditExtractedData: invoice %s edited by user %s (%d items after dedupe)",
		inv.ID, input.UserID, len(extracted.Items))
	return inv, nil
}

func (s *invoiceService) RetryExtraction(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invRepo.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.invRepo.Requeue(ctx, orgID, invoiceID); err != nil {
		return nil, err
	}
	inv.ExtractionStatus = domain.ExtractionStatusQueued
	inv.ExtractionError = ""
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, orgID, invoiceID uuid.UUID) error {
	return s.invRepo.Delete(ctx, orgID, invoiceID)
}

func (s *invoiceService) ExtractInvoice(ctx context.Context, inv *domain.Invoice, maxAttempts int) {
	file, err := s.fileRepo.GetByID(ctx, inv.OrganizationID, inv.FileID)
	if err != nil {
		s.failExtraction(ctx, inv, fmt.Sprintf("loading file metadata: %v", err))
		return
	}

	fileBytes, err := s.storage.Download(ctx, file.S3Bucket, file.S3Key)
	if err != nil {
		s.failExtraction(ctx, inv, fmt.Sprintf("downloading file: %v", err))
		return
	}

	output, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: file.ContentType,
	})
	if err != nil {
		s.handleExtractError(ctx, inv, err, maxAttempts)
		return
	}

	extracted := output.Invoice
	extracted.Items = recon.Deduplicate(extracted.Items).Unique

	s.resolveSupplier(ctx, inv, extracted.SupplierName)

	data, err := json.Marshal(extracted)
	if err != nil {
		s.failExtraction(ctx, inv, fmt.Sprintf("encoding extracted data: %v", err))
		return
	}

	now := time.Now().UTC()
	inv.ExtractedData = data
	inv.ExtractionStatus = domain.ExtractionStatusCompleted
	inv.ExtractionError = ""
	inv.ExtractedAt = &now

	if err := s.invRepo.UpdateExtractedData(ctx, inv); err != nil {
		log.Printf("invoiceService.ExtractInvoice: failed to save results for %s: %v", inv.ID, err)
		return
	}

	log.Printf("invoiceService.ExtractInvoice: invoice %s extracted (%d items, model %s)",
		inv.ID, len(extracted.Items), output.ModelUsed)
}

// resolveSupplier links the invoice to a canonical supplier. Resolution
// failures never fail the extraction; the invoice just stays unlinked.
func (s *invoiceService) resolveSupplier(ctx context.Context, inv *domain.Invoice, rawName string) {
	if rawName == "" {
		return
	}
	res, err := s.resolver.Resolve(ctx, inv.OrganizationID, rawName)
	if err != nil {
		log.Printf("invoiceService.resolveSupplier: could not resolve %q for invoice %s: %v", rawName, inv.ID, err)
		return
	}

	inv.SupplierID = &res.Supplier.ID
	if err := s.invRepo.SetSupplier(ctx, inv.OrganizationID, inv.ID, res.Supplier.ID); err != nil {
		log.Printf("invoiceService.resolveSupplier: could not link supplier %s to invoice %s: %v",
			res.Supplier.ID, inv.ID, err)
	}

	if res.Created {
		s.notifyPendingSupplier(ctx, inv.OrganizationID, res.Supplier)
	}
}

// notifyPendingSupplier emails organization admins when the resolver creates a
// new pending supplier. Delivery failures are logged but never block extraction.
func (s *invoiceService) notifyPendingSupplier(ctx context.Context, orgID uuid.UUID, sup *domain.Supplier) {
	admins, err := s.userRepo.ListAdmins(ctx, orgID)
	if err != nil {
		log.Printf("invoiceService.notifyPendingSupplier: listing admins for org %s: %v", orgID, err)
		return
	}
	for i := range admins {
		if err := s.email.SendSupplierPendingEmail(ctx, admins[i].Email, admins[i].FullName, sup.DisplayName, sup.Code); err != nil {
			log.Printf("invoiceService.notifyPendingSupplier: sending to %s: %v", admins[i].Email, err)
		}
	}
}

// handleExtractError requeues the invoice when the provider rate limited us
// and attempts remain; anything else is a permanent failure.
func (s *invoiceService) handleExtractError(ctx context.Context, inv *domain.Invoice, extractErr error, maxAttempts int) {
	var rlErr *extract.RateLimitError
	if errors.As(extractErr, &rlErr) && inv.ExtractAttempts < maxAttempts {
		inv.ExtractionStatus = domain.ExtractionStatusQueued
		inv.ExtractionError = fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		if err := s.invRepo.UpdateExtractionStatus(ctx, inv); err != nil {
			log.Printf("invoiceService.handleExtractError: failed to requeue invoice %s: %v", inv.ID, err)
		} else {
			log.Printf("invoiceService.handleExtractError: invoice %s requeued (attempt %d)", inv.ID, inv.ExtractAttempts)
		}
		return
	}
	s.failExtraction(ctx, inv, fmt.Sprintf("extracting invoice: %v", extractErr))
}

func (s *invoiceService) failExtraction(ctx context.Context, inv *domain.Invoice, errMsg string) {
	log.Printf("invoiceService.failExtraction: invoice %s failed: %s", inv.ID, errMsg)
	inv.ExtractionStatus = domain.ExtractionStatusFailed
	inv.ExtractionError = errMsg
	if err := s.invRepo.UpdateExtractionStatus(ctx, inv); err != nil {
		log.Printf("invoiceService.failExtraction: failed to update status for %s: %v", inv.ID, err)
	}
}

// reconcileAllocations re-maps every allocation on the invoice to the current
// line-item array and persists the new index lists atomically.
func (s *invoiceService) reconcileAllocations(ctx context.Context, inv *domain.Invoice, items []domain.LineItem) error {
	allocations, err := s.allocRepo.ListByInvoice(ctx, inv.OrganizationID, inv.ID)
	if err != nil {
		return err
	}
	if len(allocations) == 0 {
		return nil
	}

	lists, err := recon.Reallocate(items, allocations)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(allocations))
	for i := range allocations {
		ids[i] = allocations[i].ID
	}
	return s.allocRepo.UpdateItemIndices(ctx, inv.OrganizationID, ids, lists)
}
