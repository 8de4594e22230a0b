package service

import (
	"strings"
	"unicode"
)

// Slugify turns a title into a URL-safe slug: lowercase ASCII letters and
// digits separated by single hyphens. Non-alphanumeric runs collapse into
// one hyphen; leading and trailing hyphens are trimmed.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	prevHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
