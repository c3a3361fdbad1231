// Package clause holds the clause-identity logic shared across the grouped
// view, the sidebar navigation, and cross-reference resolution: canonical id
// normalization, parent/sub-clause grouping, and body-text tokenization.
package clause

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a clause number for identity comparisons and anchor
// generation: all whitespace and parenthesis characters are removed. It is
// total and idempotent; "4 .1( a )" and "4.1(a)" both normalize to "4.1a".
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Anchor returns the DOM anchor id a clause is addressable under.
func Anchor(raw string) string {
	return "clause-" + Normalize(raw)
}

// KnownSet builds a canonical-id membership set from raw clause numbers.
func KnownSet(numbers []string) map[string]bool {
	known := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		id := Normalize(n)
		if id != "" {
			known[id] = true
		}
	}
	return known
}
