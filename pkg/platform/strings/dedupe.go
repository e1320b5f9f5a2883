// Package strings provides string slice utilities.
package strings

import (
	"strings"
)

// DedupeFunc maps each value through canon, drops empty results and removes
// duplicates. Order of first occurrence is preserved.
//
// Example:
//
//	DedupeFunc([]string{" a ", "b", "A"}, func(s string) string {
//		return strings.ToUpper(strings.TrimSpace(s))
//	})
//	// Returns: []string{"A", "B"}
func DedupeFunc(values []string, canon func(string) string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		c := canon(v)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SplitList splits v on sep, trims each element and drops blanks and
// duplicates. An empty v yields nil.
func SplitList(v, sep string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return DedupeFunc(strings.Split(v, sep), strings.TrimSpace)
}
