package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds nested entity decoding.
const maxSanitizePasses = 8

// Sanitize strips every HTML tag, including tags hidden behind HTML
// entities, and trims surrounding whitespace. The result is plain text and
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s)))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// NormalizeEmail lower-cases and sanitizes an email address.
func NormalizeEmail(email string) string {
	return Sanitize(strings.ToLower(email))
}
