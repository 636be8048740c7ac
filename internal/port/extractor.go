package port

import (
	"context"

	"facturo/internal/domain"
)

// ExtractInput carries the data needed for invoice extraction.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
}

// ExtractOutput contains the structured result from the extraction provider.
type ExtractOutput struct {
	Invoice    *domain.ExtractedInvoice
	ModelUsed  string
	PromptUsed string
}

// InvoiceExtractor abstracts the OCR/LLM extraction pipeline. Implementations
// turn raw file bytes into a structured invoice; everything downstream treats
// the pipeline as a black box.
type InvoiceExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
