package digest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var letterFolds = strings.NewReplacer(
	"æ", "ae", "Æ", "Ae",
	"ø", "o", "Ø", "O",
	"ß", "ss",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
)

// ASCII folds s to plain ASCII for log output: diacritics are dropped and
// Nordic letters without a decomposition are spelled out.
func ASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, letterFolds.Replace(s))
	if err != nil {
		return s
	}
	return folded
}
