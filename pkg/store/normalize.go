package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// formatRunes strips Unicode format characters (category Cf), which covers
// the zero-width no-break space / BOM (U+FEFF) spammers use to defeat exact
// text matching.
var formatRunes = runes.Remove(runes.In(unicode.Cf))

// NormalizeText canonicalizes message text for storage and lookup: newlines
// become spaces, format characters are stripped, doubled spaces collapse.
// Applying it on both write and lookup keeps the match exact.
func NormalizeText(text string) string {
	cleaned, _, err := transform.String(formatRunes, text)
	if err != nil {
		cleaned = text
	}
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	return strings.ReplaceAll(cleaned, "  ", " ")
}
