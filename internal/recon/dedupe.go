package recon

import (
	"strings"

	"facturo/internal/domain"
)

// Duplicate records one dropped line item: its index in the original array
// and the original index of the first occurrence it duplicates.
type Duplicate struct {
	Index       int             `json:"index"`
	DuplicateOf int             `json:"duplicate_of"`
	Item        domain.LineItem `json:"item"`
}

// DedupeResult holds the order-preserving unique items and the dropped
// duplicates. len(Unique) + len(Duplicates) always equals the input length.
type DedupeResult struct {
	Unique     []domain.LineItem `json:"unique"`
	Duplicates []Duplicate       `json:"duplicates"`
}

// Deduplicate removes line items the extraction step registered more than
// once, keeping the first occurrence of each fingerprint. Items with neither
// a description nor a reference carry no identity and are always kept:
// absence of identity must not cause false merges.
func Deduplicate(items []domain.LineItem) DedupeResult {
	result := DedupeResult{
		Unique:     make([]domain.LineItem, 0, len(items)),
		Duplicates: []Duplicate{},
	}
	seen := make(map[string]int, len(items))

	for i := range items {
		item := items[i]
		if normalizeDescription(item.Description) == "" && strings.TrimSpace(item.Reference) == "" {
			result.Unique = append(result.Unique, item)
			continue
		}

		fp := Fingerprint(&item)
		if first, ok := seen[fp]; ok {
			result.Duplicates = append(result.Duplicates, Duplicate{
				Index:       i,
				DuplicateOf: first,
				Item:        item,
			})
			continue
		}
		seen[fp] = i
		result.Unique = append(result.Unique, item)
	}

	return result
}
