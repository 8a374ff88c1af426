package inci

import (
	"regexp"
	"strings"
)

// prefixPatterns are tried in order; the first match wins.
var prefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ingredients?\s*:\s*`),
	regexp.MustCompile(`(?i)^active\s+ingredients?\s*:\s*`),
	regexp.MustCompile(`(?i)^inactive\s+ingredients?\s*:\s*`),
	regexp.MustCompile(`(?i)^other\s+ingredients?\s*:\s*`),
	regexp.MustCompile(`(?i)^may\s+contain\s*:\s*`),
	regexp.MustCompile(`(?i)^contains?\s*:\s*`),
}

// StripPrefix removes at most one leading label from text and trims the result.
// Stacked labels ("Ingredients: Contains: ...") lose only the first one.
func StripPrefix(text string) string {
	text = strings.TrimSpace(text)
	for _, re := range prefixPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}
