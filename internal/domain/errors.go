package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrOrganizationInactive    = errors.New("organization is inactive")
	ErrUserInactive            = errors.New("user is inactive")
	ErrInsufficientRole        = errors.New("insufficient role for this action")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed            = errors.New("file upload to storage failed")
	ErrDuplicateEmail          = errors.New("email already exists for this organization")
	ErrDuplicateOrgSlug        = errors.New("organization slug already exists")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvoiceNotExtracted     = errors.New("invoice has not been extracted yet")
	ErrInvalidExtractedData    = errors.New("extracted data does not match expected format")
	ErrAllocationNotFound      = errors.New("allocation not found")
	ErrInvalidAllocationAmount = errors.New("allocation amount must be non-negative")
	ErrSupplierNotFound        = errors.New("supplier not found")
	ErrInvalidSupplierName     = errors.New("supplier name normalizes to an empty key")
	ErrDuplicateSupplierCode   = errors.New("supplier code already exists for this organization")
	ErrMissingOrganization     = errors.New("operation requires an organization scope")
	ErrCodeGenerationExhausted = errors.New("no remaining supplier codes for this base")
)
