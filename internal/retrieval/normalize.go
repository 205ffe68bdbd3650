// Package retrieval implements the statutory retrieval-and-verdict engine:
// domain classification, candidate filtering against the statute registry,
// vector-similarity ranking, multi-factor citation scoring, base-case override
// rules, and coarse risk inference.  Every decision in this package is
// deterministic: identical queries against an unchanged corpus produce
// identical citation orderings.
package retrieval

import (
	"regexp"
	"strings"
)

var (
	apostropheRe = regexp.MustCompile(`'`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`\w+`)
)

// Normalize lower-cases text, strips apostrophes, replaces every remaining
// non-alphanumeric rune with a space, and collapses whitespace.  All keyword
// matching across the engine operates on this canonical form.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ToLower(text)
	t = apostropheRe.ReplaceAllString(t, "")
	t = nonAlnumRe.ReplaceAllString(t, " ")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Tokens returns the set of word tokens in the normalized form of text.
func Tokens(text string) map[string]struct{} {
	words := wordRe.FindAllString(Normalize(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// containsAny reports whether any of the needles occurs in haystack.
func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
