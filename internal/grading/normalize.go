package grading

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes answer text before comparison: lowercase, trim,
// strip a single leading article, strip punctuation, collapse whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripArticle(s)
	s = stripPunctuation(s)
	return collapseWhitespace(s)
}

// stripArticle removes one leading "the", "a" or "an" word, if present.
func stripArticle(s string) string {
	for _, article := range []string{"the ", "an ", "a "} {
		if strings.HasPrefix(s, article) {
			return strings.TrimSpace(strings.TrimPrefix(s, article))
		}
	}
	return s
}

func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
