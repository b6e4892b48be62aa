// Package sanitize strips executable markup from visitor-supplied text before
// it is logged, stored, or echoed anywhere else.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy rejects every element and attribute; only text content survives.
// Script and style bodies are dropped entirely rather than escaped.
var policy = bluemonday.StrictPolicy()

// Clean returns s with all HTML elements, event-handler attributes and
// javascript: URIs removed, preserving the visible text. Clean is idempotent:
// applying it to its own output returns the same string.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	cleaned := policy.Sanitize(s)
	return strings.TrimSpace(cleaned)
}

// CleanFields applies Clean to every string in place.
func CleanFields(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = Clean(*f)
		}
	}
}
