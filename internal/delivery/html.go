package delivery

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML derives a plain-text body from HTML by removing tag runs.
// This is deliberately not an HTML parser: entities are left as-is and
// everything between '<' and '>' is discarded verbatim.
func stripHTML(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}
