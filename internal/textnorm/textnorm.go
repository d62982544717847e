// Package textnorm normalizes free-text values into canonical join keys.
//
// Plant names are the join key between the primary source records and the
// auxiliary lookup tables (locations, commissioning years). Matching is exact
// on the normalized form: both the lookup-table keys and the record names go
// through Format, so a single normalization routine defines the join
// semantics for the whole pipeline.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes to NFD, removes combining marks, and recomposes.
// "EZEIZA - CENTRAL TÉRMICA" and "Ezeiza - Central Termica" fold to the same key.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Format normalizes s for use as a join key or canonical display value:
// whitespace runs collapse to a single space, leading/trailing whitespace is
// trimmed, diacritics are folded, and the result is upper-cased.
//
// An input of only whitespace yields "".
func Format(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		// Fold failure leaves s as-is; the remaining normalization still applies.
		folded = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}

// Key is Format for symmetry at call sites that build lookup tables; exact
// equality of Key(a) and Key(b) is the pipeline's match condition.
func Key(s string) string { return Format(s) }
