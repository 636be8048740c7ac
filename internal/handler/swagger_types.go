package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	OrganizationSlug string `json:"organization_slug" binding:"required" example:"dupont-compta"`
	Email            string `json:"email" binding:"required" example:"admin@dupont-compta.fr"`
	Password         string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateInvoiceRequest represents the invoice creation request body.
type CreateInvoiceRequest struct {
	FileID uuid.UUID `json:"file_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// EditExtractedDataRequest represents the extracted data edit request body.
type EditExtractedDataRequest struct {
	Data ExtractedInvoice `json:"data" binding:"required"`
}

// CreateAllocationRequest represents the allocation creation request body.
type CreateAllocationRequest struct {
	AccountCode string          `json:"account_code" binding:"required" example:"606400"`
	Label       string          `json:"label" example:"Fournitures administratives"`
	Amount      decimal.Decimal `json:"amount" binding:"required" example:"120.50"`
}

// UpdateAllocationRequest represents the allocation update request body.
type UpdateAllocationRequest struct {
	AccountCode *string          `json:"account_code" example:"606300"`
	Label       *string          `json:"label" example:"Petit equipement"`
	Amount      *decimal.Decimal `json:"amount" example:"95.00"`
}

// UpdateSupplierRequest represents the supplier update request body.
type UpdateSupplierRequest struct {
	Code        *string `json:"code" example:"METRO-001"`
	DisplayName *string `json:"display_name" example:"Metro France"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

// AddAliasRequest represents the supplier alias creation request body.
type AddAliasRequest struct {
	Name string `json:"name" binding:"required" example:"METRO Cash & Carry"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required" example:"jeanne.martin@dupont-compta.fr"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" example:"Jeanne Martin"`
	Role     string `json:"role" binding:"required" example:"accountant"`
}

// CreateOrganizationRequest represents the create organization request body.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required" example:"Cabinet Dupont"`
	Slug string `json:"slug" binding:"required" example:"dupont-compta"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// FileWithDownloadURL represents a file with its presigned download URL.
type FileWithDownloadURL struct {
	DownloadURL string `json:"download_url" example:"https://s3.amazonaws.com/facturo-uploads/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// --- Extracted Invoice Schema (for documentation) ---

// ExtractedInvoice represents the structured data extracted from an invoice.
type ExtractedInvoice struct {
	SupplierName  string              `json:"supplier_name" example:"Metro France"`
	InvoiceNumber string              `json:"invoice_number" example:"FAC-2025-0042"`
	InvoiceDate   string              `json:"invoice_date" example:"2025-01-15"`
	Currency      string              `json:"currency" example:"EUR"`
	Items         []ExtractedLineItem `json:"items"`
	Subtotal      *decimal.Decimal    `json:"subtotal,omitempty" example:"100.00"`
	TaxAmount     *decimal.Decimal    `json:"tax_amount,omitempty" example:"20.00"`
	TotalAmount   *decimal.Decimal    `json:"total_amount,omitempty" example:"120.00"`
}

// ExtractedLineItem represents one extracted invoice line.
type ExtractedLineItem struct {
	Description    string           `json:"description" example:"Papier A4 80g"`
	Reference      string           `json:"reference" example:"REF-1092"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty" example:"5"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty" example:"4.20"`
	TotalPrice     *decimal.Decimal `json:"total_price,omitempty" example:"21.00"`
	TaxRate        *decimal.Decimal `json:"tax_rate,omitempty" example:"20"`
	IsTaxExclusive *bool            `json:"is_tax_exclusive,omitempty" example:"true"`
}
