package supplier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"facturo/internal/supplier"
)

func TestNormalize_StripsDiacriticsAndCase(t *testing.T) {
	assert.Equal(t, "generale boulangerie", supplier.Normalize("Générale Boulangerie"))
}

func TestNormalize_RemovesLegalEntityTokens(t *testing.T) {
	cases := map[string]string{
		"SARL Maison Dupont":            "dupont",
		"Dupont SAS":                    "dupont",
		"Ets. Martin & Fils":            "martin fils",
		"Société Générale":              "generale",
		"L'Épicerie des Halles":         "epicerie halles",
		"Etablissement Durand SASU":     "durand",
		"Transports   Leclerc   (EURL)": "transports leclerc",
	}
	for in, want := range cases {
		assert.Equal(t, want, supplier.Normalize(in), "input %q", in)
	}
}

func TestNormalize_CollapsesNonAlphanumericRuns(t *testing.T) {
	assert.Equal(t, "bio co 2000", supplier.Normalize("  Bio-Co / 2000 !!"))
}

func TestNormalize_EmptyAndStopwordOnlyNames(t *testing.T) {
	assert.Equal(t, "", supplier.Normalize(""))
	assert.Equal(t, "", supplier.Normalize("SARL SAS"))
	assert.Equal(t, "", supplier.Normalize("  ,;  "))
}
