// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// CardName produces the canonical merge key for a card name.
// Owned-card additions are de-duplicated by this key: leading/trailing
// whitespace is stripped, internal runs of whitespace collapse to a single
// space, and the result is case-folded so "Kuriboh" and "KURIBOH" merge.
//
// Unicode case folding (not ToLower) is used because card names localized
// to German/French/Japanese may contain characters where simple lowering
// and folding disagree.
func CardName(name string) string {
	s := strings.Join(strings.Fields(name), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// EqualCardNames reports whether two card names normalize to the same merge key.
func EqualCardNames(a, b string) bool {
	return CardName(a) == CardName(b)
}
