// Package catalog holds the rules of the item description catalog: the set of
// every description ever billed, used for autocomplete.
package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinSuggestPrefix is the shortest prefix, in runes, that yields suggestions
const MinSuggestPrefix = 2

// Canonicalize returns the stored form of a description
func Canonicalize(description string) string {
	// a Caser is stateful, so each call gets its own
	return strings.TrimSpace(cases.Lower(language.Und).String(description))
}

// CanonicalSet canonicalizes descriptions, dropping empties and duplicates.
// First-seen order is kept.
func CanonicalSet(descriptions []string) []string {
	seen := make(map[string]struct{}, len(descriptions))
	out := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		c := Canonicalize(d)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Suggestible reports whether a canonical prefix is long enough to query
func Suggestible(prefix string) bool {
	return utf8.RuneCountInString(prefix) >= MinSuggestPrefix
}

// Store persists the catalog. Implementations must make AddAll a set union
// that is safe under concurrent callers.
type Store interface {
	// AddAll unions canonical entries into the catalog and returns how many
	// were new
	AddAll(ctx context.Context, entries []string) (int, error)

	// All returns every entry
	All(ctx context.Context) ([]string, error)

	// MatchPrefix returns every entry starting with the canonical prefix
	MatchPrefix(ctx context.Context, prefix string) ([]string, error)
}
