package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Journal"

// columns defines the journal header row.
var columns = []string{
	"Date",
	"Piece",
	"Supplier Code",
	"Supplier Name",
	"Account Code",
	"Account Label",
	"Allocation Label",
	"Amount HT",
	"Currency",
}

// JournalRow is one accounting journal line: an allocation of an invoice's
// tax-exclusive subtotal to a ledger account.
type JournalRow struct {
	Date            string
	Piece           string
	SupplierCode    string
	SupplierName    string
	AccountCode     string
	AccountLabel    string
	AllocationLabel string
	Amount          decimal.Decimal
	Currency        string
}

// JournalWorkbook builds an Excel workbook from journal rows.
type JournalWorkbook struct {
	file *excelize.File
}

// NewJournalWorkbook creates a workbook with a single Journal sheet holding
// the header and all rows.
func NewJournalWorkbook(rows []JournalRow) (*JournalWorkbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		// Amounts are written as floats so Excel treats the column as numeric.
		amount, _ := row.Amount.Round(2).Float64()
		values := []interface{}{
			row.Date,
			row.Piece,
			row.SupplierCode,
			row.SupplierName,
			row.AccountCode,
			row.AccountLabel,
			row.AllocationLabel,
			amount,
			row.Currency,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return &JournalWorkbook{file: f}, nil
}

// WriteTo streams the workbook as an xlsx file.
func (w *JournalWorkbook) WriteTo(dst io.Writer) (int64, error) {
	return w.file.WriteTo(dst)
}

// Bytes renders the workbook to a byte slice.
func (w *JournalWorkbook) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying excelize resources.
func (w *JournalWorkbook) Close() error {
	return w.file.Close()
}
