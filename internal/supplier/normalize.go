// Package supplier maps free-text supplier names to canonical supplier
// entities: normalization, token-set fuzzy matching, alias caching and
// code generation for newly discovered suppliers.
package supplier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD and drops combining marks, so that
// "Société Générale" and "Societe Generale" normalize identically.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopwords are legal-entity suffixes and French filler tokens that carry no
// identity: "SARL Maison Dupont" and "Dupont" should meet on "dupont".
var stopwords = map[string]struct{}{
	"sas": {}, "sasu": {}, "sarl": {}, "sa": {}, "eurl": {}, "spa": {},
	"ltd": {}, "inc": {}, "societe": {}, "maison": {}, "ste": {}, "ets": {},
	"etablissement": {}, "les": {}, "des": {}, "du": {}, "de": {}, "la": {},
	"le": {}, "l": {},
}

// Normalize reduces a raw supplier name to its canonical matching key:
// diacritics stripped, lowercased, non-alphanumeric runs collapsed to single
// spaces, stopwords removed.
func Normalize(name string) string {
	s, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, skip := stopwords[w]; !skip {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
