package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"facturo/internal/domain"
	"facturo/internal/recon"
)

func TestItemNetAmount_InclusiveTotalIsDeflated(t *testing.T) {
	li := domain.LineItem{
		Description: "Livraison",
		TotalPrice:  dec("120"),
		TaxRate:     *dec("20"),
		TaxMode:     domain.TaxInclusive,
	}

	ht := recon.ItemNetAmount(&li)

	assert.Equal(t, "100.00", ht.StringFixed(2))
}

func TestItemNetAmount_InclusiveReducedRate(t *testing.T) {
	li := domain.LineItem{
		TotalPrice: dec("10.55"),
		TaxRate:    *dec("5.5"),
		TaxMode:    domain.TaxInclusive,
	}

	assert.Equal(t, "10.00", recon.ItemNetAmount(&li).StringFixed(2))
}

func TestItemNetAmount_ExclusiveUsesUnitTimesQuantity(t *testing.T) {
	li := domain.LineItem{
		Quantity:   dec("3"),
		UnitPrice:  dec("2.50"),
		TotalPrice: dec("9.00"), // ignored when not tax-inclusive
		TaxRate:    *dec("20"),
		TaxMode:    domain.TaxExclusive,
	}

	assert.Equal(t, "7.50", recon.ItemNetAmount(&li).StringFixed(2))
}

func TestItemNetAmount_UnknownModeFallsBackToUnitTimesQuantity(t *testing.T) {
	li := domain.LineItem{
		Quantity:  dec("4"),
		UnitPrice: dec("1.25"),
		TaxMode:   domain.TaxUnknown,
	}

	assert.Equal(t, "5.00", recon.ItemNetAmount(&li).StringFixed(2))
}

func TestItemNetAmount_DefaultsForMissingFields(t *testing.T) {
	// Missing quantity defaults to 1.
	li := domain.LineItem{UnitPrice: dec("8.40"), TaxMode: domain.TaxUnknown}
	assert.Equal(t, "8.40", recon.ItemNetAmount(&li).StringFixed(2))

	// Missing unit price defaults to 0.
	li = domain.LineItem{Quantity: dec("7"), TaxMode: domain.TaxUnknown}
	assert.True(t, recon.ItemNetAmount(&li).IsZero())

	// All fields missing: zero, not an error.
	li = domain.LineItem{TaxMode: domain.TaxUnknown}
	assert.True(t, recon.ItemNetAmount(&li).IsZero())
}

func TestItemNetAmount_InclusiveWithoutTotalFallsBack(t *testing.T) {
	li := domain.LineItem{
		Quantity:  dec("2"),
		UnitPrice: dec("5"),
		TaxRate:   *dec("20"),
		TaxMode:   domain.TaxInclusive,
	}

	assert.Equal(t, "10.00", recon.ItemNetAmount(&li).StringFixed(2))
}

func TestTotalNetAmount_IntermediateValuesNotRounded(t *testing.T) {
	// Each item's exact HT is 1/1.2 = 0.8333...; rounding per item would
	// give 2.49 over three items instead of 2.50.
	li := domain.LineItem{TotalPrice: dec("1"), TaxRate: *dec("20"), TaxMode: domain.TaxInclusive}
	items := []domain.LineItem{li, li, li}

	total := recon.TotalNetAmount(items)

	assert.Equal(t, "2.50", total.StringFixed(2))
}
