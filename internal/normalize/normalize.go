// Package normalize cleans model replies that must contain only source code.
package normalize

import (
	"regexp"
	"strings"
)

const fence = "```"

// fenceMarker matches a fence with an optional language tag and line break.
// Closing fences match too, with an empty tag.
var fenceMarker = regexp.MustCompile("```[\\w+#.-]*\\r?\\n?")

// Code strips every markdown fence marker from raw, wherever it occurs, and
// trims the surrounding whitespace. It does not try to pick one block out of
// several: all markers go, and text between blocks is kept.
func Code(raw string) string {
	s := fenceMarker.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, fence, "")
	return strings.TrimSpace(s)
}
