// Package htmlsanitize cleans user-supplied free text before it is stored.
// Gathering descriptions and additional details may carry basic formatting;
// titles are plain text only.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize strips unsafe markup (scripts, event handlers, javascript:
// URLs) while keeping user-generated-content formatting.
func Sanitize(s string) string {
	return ugcPolicy.Sanitize(s)
}

// StripTags removes all markup, leaving plain text. Used for titles and
// any field that must never render as HTML.
func StripTags(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
