package inci

import (
	"regexp"
	"strings"
)

var delimiter = regexp.MustCompile(`[,;\r\n]+`)

// Split breaks text on runs of commas, semicolons and line breaks.
// Pieces are trimmed and empty pieces dropped; order is preserved.
func Split(text string) []string {
	parts := delimiter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
