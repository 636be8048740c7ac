// Package recon implements invoice line-item deduplication and the
// proportional re-allocation of ledger allocations across line items. All of
// it is pure computation: callers load the invoice, run these functions, and
// persist the result.
package recon

import (
	"regexp"
	"strings"

	"facturo/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

func normalizeDescription(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Fingerprint derives the duplicate-detection key for a line item:
// normalized description plus the numeric fields at fixed precision.
// The supplier reference is deliberately excluded: references carry
// inconsistent prefixes and whitespace for what is otherwise the identical
// product line, so including them under-detects duplicates.
func Fingerprint(item *domain.LineItem) string {
	var unit, qty, total string
	if item.UnitPrice != nil {
		unit = item.UnitPrice.StringFixed(2)
	}
	if item.Quantity != nil {
		qty = item.Quantity.StringFixed(3)
	}
	if item.TotalPrice != nil {
		total = item.TotalPrice.StringFixed(2)
	}
	return strings.Join([]string{normalizeDescription(item.Description), unit, qty, total}, "|")
}
