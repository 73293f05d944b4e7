// Package htmlsanitize strips markup from user-supplied text.
//
// Prompt bodies, descriptions, and comments are plain text in this API:
// any HTML a client sends is treated as hostile and removed entirely
// before storage.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML tags from s and unescapes the remaining
// entities, returning plain text.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
