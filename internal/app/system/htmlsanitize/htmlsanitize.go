// Package htmlsanitize strips markup from visitor-supplied free text.
//
// Messages, replies, and author display names are plain text in this
// system; anything that looks like HTML in them is hostile or accidental
// and is removed before the text is persisted.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every HTML element and attribute.
var strict = bluemonday.StrictPolicy()

// Sanitize returns s with all HTML elements removed and surrounding
// whitespace trimmed. The text content of removed elements is kept.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
