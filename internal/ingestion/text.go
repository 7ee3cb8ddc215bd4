// Package ingestion turns résumé documents into normalized text.
package ingestion

import (
	"regexp"
	"strings"
)

var newlineRunRe = regexp.MustCompile(`\n+`)

// Normalize trims surrounding whitespace and collapses every run of newlines
// into a single newline. Case, punctuation and inner spacing are preserved.
func Normalize(raw string) string {
	return newlineRunRe.ReplaceAllString(strings.TrimSpace(raw), "\n")
}
