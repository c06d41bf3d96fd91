// Package slug turns display names into the URL-safe identifiers used in catalog paths.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make returns the lowercase, hyphenated, ASCII-only form of s.
//
// Accented letters are decomposed and reduced to their ASCII base, characters other than
// letters, digits, underscores, hyphens and whitespace are dropped, and every run of hyphens
// or whitespace becomes a single hyphen. Leading and trailing hyphens and underscores are
// trimmed. Make("Déjà Vu (Live)") == "deja-vu-live".
func Make(s string) string {
	folded, _, err := transform.String(asciiFold(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	separate := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '-' || unicode.IsSpace(r):
			separate = true
		case isWord(r):
			if separate && b.Len() > 0 {
				b.WriteByte('-')
			}
			separate = false
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_")
}

// asciiFold is rebuilt per call: transform.Chain keeps state and is not safe for concurrent use.
func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

func isWord(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}
