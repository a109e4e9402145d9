// internal/cache/fingerprint.go
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives the canonical cache key for a request. Premises are
// sorted so premise order never changes the key, and each statement is
// stripped of surrounding whitespace and the trailing LADR period, so "P."
// and "P" share a key the way they share an invocation; the conclusion,
// binary kind, and any result-relevant options are appended in a fixed order.
// The key is the hex sha256 of the canonical text.
func Fingerprint(premises []string, conclusion, binaryKind string, options ...string) string {
	sorted := make([]string, len(premises))
	for i, p := range premises {
		sorted[i] = canonical(p)
	}
	sort.Strings(sorted)

	var b strings.Builder
	for _, p := range sorted {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteString("|goal:")
	b.WriteString(canonical(conclusion))
	b.WriteString("|bin:")
	b.WriteString(binaryKind)
	for _, opt := range options {
		b.WriteString("|opt:")
		b.WriteString(opt)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func canonical(statement string) string {
	return strings.TrimRight(strings.TrimSpace(statement), ". \t")
}
