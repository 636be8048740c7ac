package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TaxMode states whether a line item's total price is known to be
// tax-exclusive, known to be tax-inclusive, or unknown. Extraction output
// carries it on the wire as a nullable boolean (is_tax_exclusive), where null
// or absent means unknown.
type TaxMode string

const (
	TaxExclusive TaxMode = "exclusive"
	TaxInclusive TaxMode = "inclusive"
	TaxUnknown   TaxMode = "unknown"
)

// TaxModeFromBool converts the wire representation to a TaxMode.
func TaxModeFromBool(b *bool) TaxMode {
	switch {
	case b == nil:
		return TaxUnknown
	case *b:
		return TaxExclusive
	default:
		return TaxInclusive
	}
}

// Bool converts a TaxMode back to the wire representation.
func (m TaxMode) Bool() *bool {
	switch m {
	case TaxExclusive:
		b := true
		return &b
	case TaxInclusive:
		b := false
		return &b
	default:
		return nil
	}
}

// LineItem is a single extracted invoice line. Quantity, UnitPrice and
// TotalPrice are optional because extraction may only recover a subset of
// them; missing numeric fields are treated as absent, never as errors.
type LineItem struct {
	Description string           `json:"description"`
	Reference   string           `json:"reference,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice  *decimal.Decimal `json:"total_price,omitempty"`
	TaxRate     decimal.Decimal  `json:"tax_rate"`
	TaxMode     TaxMode          `json:"-"`
}

type lineItemWire struct {
	Description    string           `json:"description"`
	Reference      string           `json:"reference,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice     *decimal.Decimal `json:"total_price,omitempty"`
	TaxRate        decimal.Decimal  `json:"tax_rate"`
	IsTaxExclusive *bool            `json:"is_tax_exclusive"`
}

// MarshalJSON writes the nullable-boolean wire form of TaxMode.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemWire{
		Description:    li.Description,
		Reference:      li.Reference,
		Quantity:       li.Quantity,
		UnitPrice:      li.UnitPrice,
		TotalPrice:     li.TotalPrice,
		TaxRate:        li.TaxRate,
		IsTaxExclusive: li.TaxMode.Bool(),
	})
}

// UnmarshalJSON reads the nullable-boolean wire form of TaxMode.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var w lineItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*li = LineItem{
		Description: w.Description,
		Reference:   w.Reference,
		Quantity:    w.Quantity,
		UnitPrice:   w.UnitPrice,
		TotalPrice:  w.TotalPrice,
		TaxRate:     w.TaxRate,
		TaxMode:     TaxModeFromBool(w.IsTaxExclusive),
	}
	return nil
}

// ExtractedInvoice is the structured result of invoice extraction, stored on
// the invoice record as JSONB.
type ExtractedInvoice struct {
	SupplierName  string          `json:"supplier_name"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	Currency      string          `json:"currency"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
