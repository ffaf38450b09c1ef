// Package names canonicalizes player display names into join keys used to
// match the same real-world player across independent data providers.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// overrides maps stems that differ between providers to the canonical key.
// These are known discrepancies between the projections source and the
// league platform, maintained by hand as they surface.
var overrides = map[string]string{
	"ben-williamson": "benjamin-williamson",
	"zach-dezenzo":   "zachary-dezenzo",
	"cj-abrams":      "c.j.-abrams",
	"jt-realmuto":    "j.t.-realmuto",
	"aj-pollock":     "a.j.-pollock",
}

// asciiFold strips combining marks after NFD decomposition, folding
// accented Latin characters to their ASCII base.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Stem standardizes a player name for matching across data sources:
// lowercase, periods removed, spaces hyphenated, accents folded to ASCII,
// then the override table applied. Stem is deterministic and idempotent.
func Stem(name string) string {
	clean := strings.ToLower(name)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, " ", "-")

	if folded, _, err := transform.String(asciiFold, clean); err == nil {
		clean = folded
	}
	// Drop anything still outside ASCII after folding.
	clean = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, clean)

	if canonical, ok := overrides[clean]; ok {
		return canonical
	}
	return clean
}
