package prompt

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops the combining
// marks, so "café" folds to "cafe".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a free-form label into a lowercase, hyphen-separated
// slug suitable for a directory name: accents are folded to ASCII,
// anything that is not a letter or digit becomes a separator, and runs
// of separators collapse into one hyphen.
func Slugify(label string) string {
	folded, _, err := transform.String(asciiFold, label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
