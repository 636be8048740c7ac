package domain

// FileType represents the allowed file types for invoice upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the role hierarchy within an organization.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleMember     UserRole = "member"
)

// ValidUserRoles is the set of roles accepted on user creation and update.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleAccountant: true,
	RoleMember:     true,
}

// RoleLevels orders roles for privilege checks; higher values grant more access.
var RoleLevels = map[UserRole]int{
	RoleMember:     1,
	RoleAccountant: 2,
	RoleAdmin:      3,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// ExtractionStatus represents the lifecycle of invoice data extraction.
type ExtractionStatus string

const (
	ExtractionStatusQueued     ExtractionStatus = "queued"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// SupplierValidationStatus represents whether a supplier has been reviewed by a human.
type SupplierValidationStatus string

const (
	SupplierPending   SupplierValidationStatus = "pending"
	SupplierValidated SupplierValidationStatus = "validated"
)
