package recon

import (
	"sort"

	"github.com/shopspring/decimal"

	"facturo/internal/domain"
)

// greedyTolerance lets an allocation stop at 95% of its target share to
// absorb rounding across many small items.
var greedyTolerance = decimal.RequireFromString("0.95")

// Reallocate assigns every item index to exactly one allocation so that each
// allocation's assigned tax-exclusive sum approximates its share of the
// total allocated amount. Allocations are processed in order; earlier
// allocations take precedence when items run short. The final allocation
// absorbs whatever remains so no item is ever dropped.
//
// The returned slice has one sorted index list per allocation, in the same
// order as the input. An empty allocation list is a no-op and returns nil.
// A negative amount fails fast with ErrInvalidAllocationAmount before any
// assignment is produced.
func Reallocate(items []domain.LineItem, allocations []domain.Allocation) ([]domain.IndexList, error) {
	if len(allocations) == 0 {
		return nil, nil
	}

	totalAllocated := decimal.Zero
	for i := range allocations {
		if allocations[i].Amount.IsNegative() {
			return nil, domain.ErrInvalidAllocationAmount
		}
		totalAllocated = totalAllocated.Add(allocations[i].Amount)
	}
	totalHT := TotalNetAmount(items)

	pool := make([]int, len(items))
	for i := range pool {
		pool[i] = i
	}

	out := make([]domain.IndexList, len(allocations))
	for i := range allocations {
		if i == len(allocations)-1 {
			// Last allocation takes the remainder, even past its target.
			out[i] = append(domain.IndexList{}, pool...)
			pool = pool[:0]
			break
		}

		share := decimal.Zero
		if !totalAllocated.IsZero() {
			share = allocations[i].Amount.Div(totalAllocated)
		}
		target := totalHT.Mul(share)
		threshold := target.Mul(greedyTolerance)
		entitled := share.IsPositive()

		indices := domain.IndexList{}
		current := decimal.Zero
		for len(pool) > 0 {
			if len(indices) == 0 && !entitled {
				break
			}
			if len(indices) > 0 && current.GreaterThanOrEqual(threshold) {
				break
			}
			idx := pool[0]
			pool = pool[1:]
			indices = append(indices, idx)
			current = current.Add(ItemNetAmount(&items[idx]))
		}
		out[i] = indices
	}

	for i := range out {
		sort.Ints(out[i])
	}
	return out, nil
}
