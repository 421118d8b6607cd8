package shares

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticsFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining diacritical marks via canonical
// decomposition, e.g. "obchodní podíl" -> "obchodni podil". Shared by the
// share parser's label detection and the external-document comparator's
// name normalization.
func FoldDiacritics(s string) string {
	out, _, err := transform.String(diacriticsFold, s)
	if err != nil {
		return s
	}
	return out
}
