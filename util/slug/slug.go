// Package slug derives URL-safe identifiers from free-text titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens. The
// result contains only [a-z0-9-], never a double hyphen, and is idempotent.
// A title with no alphanumeric characters yields "".
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
