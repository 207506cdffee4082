package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases the name and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(name string) string {
	var builder strings.Builder
	builder.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			builder.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(builder.String(), "-")
}
