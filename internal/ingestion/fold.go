package ingestion

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold applies NFKC compatibility normalization and strips diacritics, so
// "Résumé" and "resume" tokenize the same and full-width letters become ASCII.
// Byte length may change; callers that report offsets must use the folded text.
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
