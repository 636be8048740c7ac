package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"facturo/internal/domain"
	"facturo/internal/recon"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func item(desc string, qty, unit, total string) domain.LineItem {
	li := domain.LineItem{Description: desc, TaxMode: domain.TaxUnknown}
	if qty != "" {
		li.Quantity = dec(qty)
	}
	if unit != "" {
		li.UnitPrice = dec(unit)
	}
	if total != "" {
		li.TotalPrice = dec(total)
	}
	return li
}

func TestDeduplicate_CaseInsensitiveDescriptionMatch(t *testing.T) {
	items := []domain.LineItem{
		item("Tomates", "10", "2", "20"),
		item("tomates", "10", "2", "20"),
		item("Oignons", "5", "1", "5"),
	}

	result := recon.Deduplicate(items)

	assert.Len(t, result.Unique, 2)
	assert.Len(t, result.Duplicates, 1)
	assert.Equal(t, 1, result.Duplicates[0].Index)
	assert.Equal(t, 0, result.Duplicates[0].DuplicateOf)
	assert.Equal(t, "Tomates", result.Unique[0].Description)
	assert.Equal(t, "Oignons", result.Unique[1].Description)
}

func TestDeduplicate_WhitespaceCollapsedInDescription(t *testing.T) {
	items := []domain.LineItem{
		item("  Huile   d'olive  ", "1", "12.50", "12.50"),
		item("huile d'olive", "1", "12.50", "12.50"),
	}

	result := recon.Deduplicate(items)

	assert.Len(t, result.Unique, 1)
	assert.Len(t, result.Duplicates, 1)
}

func TestDeduplicate_ReferenceExcludedFromFingerprint(t *testing.T) {
	a := item("Farine T55", "2", "3", "6")
	a.Reference = "REF-001"
	b := item("Farine T55", "2", "3", "6")
	b.Reference = " ref001 "

	result := recon.Deduplicate([]domain.LineItem{a, b})

	// Same product line with noisy references is still a duplicate.
	assert.Len(t, result.Unique, 1)
	assert.Len(t, result.Duplicates, 1)
}

func TestDeduplicate_DifferentAmountsAreNotDuplicates(t *testing.T) {
	items := []domain.LineItem{
		item("Tomates", "10", "2", "20"),
		item("Tomates", "5", "2", "10"),
	}

	result := recon.Deduplicate(items)

	assert.Len(t, result.Unique, 2)
	assert.Empty(t, result.Duplicates)
}

func TestDeduplicate_EmptyIdentityItemsAreNeverMerged(t *testing.T) {
	items := []domain.LineItem{
		item("", "1", "5", "5"),
		item("", "1", "5", "5"),
		item("   ", "1", "5", "5"),
	}

	result := recon.Deduplicate(items)

	assert.Len(t, result.Unique, 3)
	assert.Empty(t, result.Duplicates)
}

func TestDeduplicate_EmptyDescriptionWithReferenceKeepsIdentity(t *testing.T) {
	a := item("", "1", "5", "5")
	a.Reference = "SKU-9"
	b := item("", "1", "5", "5")
	b.Reference = "SKU-9"

	result := recon.Deduplicate([]domain.LineItem{a, b})

	// A reference alone is identity enough for the numeric fingerprint to apply.
	assert.Len(t, result.Unique, 1)
	assert.Len(t, result.Duplicates, 1)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	items := []domain.LineItem{
		item("Tomates", "10", "2", "20"),
		item("tomates", "10", "2", "20"),
		item("Oignons", "5", "1", "5"),
		item("Oignons", "5", "1", "5"),
	}

	first := recon.Deduplicate(items)
	second := recon.Deduplicate(first.Unique)

	assert.Empty(t, second.Duplicates)
	assert.Equal(t, first.Unique, second.Unique)
}

func TestDeduplicate_Completeness(t *testing.T) {
	cases := [][]domain.LineItem{
		{},
		{item("A", "1", "1", "1")},
		{item("A", "1", "1", "1"), item("a", "1", "1", "1"), item("B", "2", "2", "4")},
		{item("A", "1", "1", "1"), item("A", "1", "1", "1"), item("A", "1", "1", "1")},
	}

	for _, items := range cases {
		result := recon.Deduplicate(items)
		assert.Equal(t, len(items), len(result.Unique)+len(result.Duplicates))
	}
}

func TestDeduplicate_MissingNumericFieldsDistinctFromZero(t *testing.T) {
	withZero := item("Tomates", "", "0.00", "")
	absent := item("Tomates", "", "", "")

	result := recon.Deduplicate([]domain.LineItem{withZero, absent})

	// An explicit zero and an absent field produce different fingerprints.
	assert.Len(t, result.Unique, 2)
}
