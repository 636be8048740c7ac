package supplier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"facturo/internal/supplier"
)

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, supplier.Similarity("dupont negoce", "dupont negoce"))
}

func TestSimilarity_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, supplier.Similarity("dupont negoce", "martin transports"))
}

func TestSimilarity_ExactThresholdBoundary(t *testing.T) {
	// Five tokens each, four shared: 2*4/(5+5) = 0.80 exactly. The resolver
	// accepts at >= 0.80, so this pair must match.
	a := "dupont freres negoce vins paris"
	b := "dupont freres negoce vins lyon"
	assert.InDelta(t, 0.80, supplier.Similarity(a, b), 1e-9)

	// Four tokens each, three shared: 0.75, just under the threshold.
	c := "dupont freres negoce vins"
	d := "dupont freres negoce spiritueux"
	assert.InDelta(t, 0.75, supplier.Similarity(c, d), 1e-9)
}

func TestSimilarity_ShortTokensIgnored(t *testing.T) {
	// "ab" and "xy" are below the minimum token length and never count.
	assert.Equal(t, 1.0, supplier.Similarity("dupont ab", "dupont xy"))
}

func TestSimilarity_EmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, supplier.Similarity("", "dupont"))
	assert.Equal(t, 0.0, supplier.Similarity("ab", "cd"))
}

func TestCodeBase_DerivedFromNormalizedKey(t *testing.T) {
	cases := map[string]string{
		"dupont":             "DUPONT",
		"transports leclerc": "TRANSP",
		"bio":                "BIOX",
		"ab":                 "ABXX",
		"":                   "XXXX",
		"a1 b2 c3 d4":        "A1B2C3",
	}
	for in, want := range cases {
		assert.Equal(t, want, supplier.CodeBase(in), "input %q", in)
	}
}
