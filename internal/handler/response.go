package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrOrganizationInactive):
		return http.StatusForbidden, "ORGANIZATION_INACTIVE", "organization is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "insufficient role for this action"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this organization"
	case errors.Is(err, domain.ErrDuplicateOrgSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "organization slug already exists"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrInvoiceNotExtracted):
		return http.StatusBadRequest, "INVOICE_NOT_EXTRACTED", "invoice has not been extracted yet"
	case errors.Is(err, domain.ErrInvalidExtractedData):
		return http.StatusBadRequest, "INVALID_EXTRACTED_DATA", "extracted data does not match expected format"
	case errors.Is(err, domain.ErrAllocationNotFound):
		return http.StatusNotFound, "ALLOCATION_NOT_FOUND", "allocation not found"
	case errors.Is(err, domain.ErrInvalidAllocationAmount):
		return http.StatusBadRequest, "INVALID_ALLOCATION_AMOUNT", "allocation amount must be non-negative"
	case errors.Is(err, domain.ErrSupplierNotFound):
		return http.StatusNotFound, "SUPPLIER_NOT_FOUND", "supplier not found"
	case errors.Is(err, domain.ErrInvalidSupplierName):
		return http.StatusBadRequest, "INVALID_SUPPLIER_NAME", "supplier name normalizes to an empty key"
	case errors.Is(err, domain.ErrDuplicateSupplierCode):
		return http.StatusConflict, "DUPLICATE_SUPPLIER_CODE", "supplier code already exists for this organization"
	case errors.Is(err, domain.ErrMissingOrganization):
		return http.StatusBadRequest, "MISSING_ORGANIZATION", "operation requires an organization scope"
	case errors.Is(err, domain.ErrCodeGenerationExhausted):
		return http.StatusConflict, "CODE_GENERATION_EXHAUSTED", "no remaining supplier codes for this base"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts organization ID, user ID, and role from the
// request context. Returns false if auth context is missing (error response
// already written).
func extractAuthContext(c *gin.Context) (orgID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	orgID, err = middleware.GetOrganizationID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing organization context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return orgID, userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
