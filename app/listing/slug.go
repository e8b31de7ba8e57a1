package listing

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern     = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparatorPattern = regexp.MustCompile(`[\s-]+`)
)

// Slug derives the URL-safe listing ID from an address: lowercased,
// punctuation stripped, whitespace collapsed to single hyphens.
// Idempotent: slugging a slug yields the same slug.
func Slug(address string) string {
	clean := slugStripPattern.ReplaceAllString(strings.ToLower(address), "")
	clean = slugSeparatorPattern.ReplaceAllString(clean, "-")
	return strings.Trim(clean, "-")
}
