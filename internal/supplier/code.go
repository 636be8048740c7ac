package supplier

import "strings"

// maxCodeAttempts caps the sequence probe so a pathological organization
// cannot spin forever on code generation.
const maxCodeAttempts = 1000

// CodeBase derives the 4-6 character supplier code base from a normalized
// key: alphanumerics only, uppercased, truncated to 6, padded to 4 with 'X'.
// Full codes are then probed as BASE-001, BASE-002, and so on.
func CodeBase(normalizedKey string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(normalizedKey) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 6 {
				break
			}
		}
	}
	base := b.String()
	for len(base) < 4 {
		base += "X"
	}
	return base
}
