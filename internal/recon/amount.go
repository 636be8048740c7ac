package recon

import (
	"github.com/shopspring/decimal"

	"facturo/internal/domain"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// ItemNetAmount computes a line item's tax-exclusive (HT) contribution. This
// is the single shared implementation for every place totals are computed;
// deduplication checks and allocation reconciliation must not diverge.
//
// Priority order:
//  1. tax-inclusive total present: deflate it by the tax rate.
//  2. otherwise unit price times quantity (quantity defaults to 1, unit
//     price to 0 when absent).
//
// Missing numeric fields are treated as zero rather than errors to tolerate
// extraction gaps. Results are rounded only at presentation and comparison
// boundaries, never here.
func ItemNetAmount(item *domain.LineItem) decimal.Decimal {
	if item.TaxMode == domain.TaxInclusive && item.TotalPrice != nil {
		divisor := one.Add(item.TaxRate.Div(hundred))
		if divisor.IsZero() {
			return *item.TotalPrice
		}
		return item.TotalPrice.Div(divisor)
	}

	qty := one
	if item.Quantity != nil {
		qty = *item.Quantity
	}
	unit := decimal.Zero
	if item.UnitPrice != nil {
		unit = *item.UnitPrice
	}
	return unit.Mul(qty)
}

// TotalNetAmount sums ItemNetAmount over all items.
func TotalNetAmount(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(ItemNetAmount(&items[i]))
	}
	return total
}
