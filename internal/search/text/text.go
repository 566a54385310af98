// Package text provides the Unicode-folding and tokenization primitives
// shared by every ranker in the search core: the job hybrid ranker, the
// company composite scorer, and the location auto-suggest index.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlphaNumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize lowercases s, decomposes it to NFD, strips combining marks
// (diacritics), maps anything outside [a-z0-9\s] to a space, collapses
// whitespace runs, and trims the result.
func Normalize(s string) string {
	lower := strings.ToLower(s)
	decomposed := norm.NFD.String(lower)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark (U+0300..U+036F and friends)
		}
		b.WriteRune(r)
	}

	folded := nonAlphaNumSpace.ReplaceAllString(b.String(), " ")
	collapsed := whitespaceRun.ReplaceAllString(folded, " ")
	return strings.TrimSpace(collapsed)
}

// Tokenize returns the unique, non-empty tokens of Normalize(s), in
// first-occurrence order so callers that need in-order scoring (the
// company ranker, the location ranker) can rely on it.
func Tokenize(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}

	fields := strings.Fields(normalized)
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

var regexMetachars = map[rune]struct{}{
	'.': {}, '*': {}, '+': {}, '?': {}, '^': {}, '$': {},
	'{': {}, '}': {}, '(': {}, ')': {}, '|': {}, '[': {}, ']': {}, '\\': {},
}

// EscapeRegex escapes the regex metacharacters . * + ? ^ $ { } ( ) | [ ] \
// so user-supplied text can be embedded safely in a case-insensitive
// regex predicate (the hybrid ranker's phrase match, the suggester's
// prefix match).
func EscapeRegex(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if _, ok := regexMetachars[r]; ok {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeSearchTerm returns nil for empty or whitespace-only input,
// otherwise the normalized, collapsed lowercase form suitable as a
// ranker's q.
func NormalizeSearchTerm(q string) *string {
	normalized := Normalize(q)
	if normalized == "" {
		return nil
	}
	return &normalized
}
