package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Organization represents an isolated customer organization.
type Organization struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to an organization.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           UserRole  `db:"role" json:"role"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded invoice file.
type FileMeta struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	UploadedBy     uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName       string     `db:"file_name" json:"file_name"`
	OriginalName   string     `db:"original_name" json:"original_name"`
	FileType       FileType   `db:"file_type" json:"file_type"`
	FileSize       int64      `db:"file_size" json:"file_size"`
	S3Bucket       string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key          string     `db:"s3_key" json:"s3_key"`
	ContentType    string     `db:"content_type" json:"content_type"`
	Status         FileStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Invoice represents an uploaded invoice and its extracted data.
type Invoice struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	OrganizationID   uuid.UUID        `db:"organization_id" json:"organization_id"`
	FileID           uuid.UUID        `db:"file_id" json:"file_id"`
	SupplierID       *uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	ExtractedData    json.RawMessage  `db:"extracted_data" json:"extracted_data"`
	ExtractionStatus ExtractionStatus `db:"extraction_status" json:"extraction_status"`
	ExtractionError  string           `db:"extraction_error" json:"extraction_error"`
	ExtractAttempts  int              `db:"extract_attempts" json:"extract_attempts"`
	ExtractedAt      *time.Time       `db:"extracted_at" json:"extracted_at"`
	CreatedBy        uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// IndexList is an ordered set of line-item indices, stored as JSONB.
type IndexList []int

// Value implements driver.Valuer.
func (l IndexList) Value() (driver.Value, error) {
	if l == nil {
		l = IndexList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *IndexList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = IndexList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("IndexList.Scan: unsupported type %T", src)
	}
}

// Allocation represents a user-entered share of an invoice's tax-exclusive
// subtotal mapped to a ledger account. ItemIndices is derived and recomputed
// whenever the underlying line-item array changes.
type Allocation struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	InvoiceID      uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	UserID         uuid.UUID       `db:"user_id" json:"user_id"`
	AccountCode    string          `db:"account_code" json:"account_code"`
	Label          string          `db:"label" json:"label"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	ItemIndices    IndexList       `db:"item_indices" json:"item_indices"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Supplier represents a canonical supplier entity within an organization.
// New suppliers created by the resolver start as pending and inactive until a
// human validates them.
type Supplier struct {
	ID               uuid.UUID                `db:"id" json:"id"`
	OrganizationID   uuid.UUID                `db:"organization_id" json:"organization_id"`
	Code             string                   `db:"code" json:"code"`
	DisplayName      string                   `db:"display_name" json:"display_name"`
	NormalizedKey    string                   `db:"normalized_key" json:"normalized_key"`
	ValidationStatus SupplierValidationStatus `db:"validation_status" json:"validation_status"`
	IsActive         bool                     `db:"is_active" json:"is_active"`
	CreatedAt        time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time                `db:"updated_at" json:"updated_at"`
}

// SupplierAlias maps a normalized name variant to a supplier. Aliases are
// written by the resolver on fuzzy-match accept so later lookups hit exactly.
type SupplierAlias struct {
	SupplierID uuid.UUID `db:"supplier_id" json:"supplier_id"`
	AliasKey   string    `db:"alias_key" json:"alias_key"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LedgerAccount is a seeded chart-of-accounts entry used to label account
// codes in exports. Allocation account codes are free text and are not
// validated against this table.
type LedgerAccount struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Code           string    `db:"code" json:"code"`
	Label          string    `db:"label" json:"label"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
