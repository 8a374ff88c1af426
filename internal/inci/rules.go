package inci

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rule is a single named string transformation.
type Rule struct {
	Name  string
	Apply func(string) string
}

// ReplaceRule returns a rule that replaces every match of pattern with a space.
func ReplaceRule(name, pattern string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: name,
		Apply: func(s string) string {
			return re.ReplaceAllString(s, " ")
		},
	}
}

// Noise rules strip label annotations that are not part of an ingredient name.
var (
	ParentheticalRule = ReplaceRule("parenthetical", `\([^)]*\)`)
	BracketRule       = ReplaceRule("bracket", `\[[^\]]*\]`)
	AsteriskRule      = ReplaceRule("asterisk", `\*+`)
	PercentRule       = ReplaceRule("percent", `\d+(?:[.,]\d+)?\s*%`)
	TrademarkRule     = ReplaceRule("trademark", `[®™©]`)
)

// FoldRule decomposes compatibility characters and drops combining marks,
// so "Café" and "Cafe" share a key.
var FoldRule = Rule{
	Name: "fold",
	Apply: func(s string) string {
		// transform chains carry state; build one per call.
		t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		out, _, err := transform.String(t, s)
		if err != nil {
			return s
		}
		return out
	},
}

// LowerRule lowercases the string.
var LowerRule = Rule{Name: "lower", Apply: strings.ToLower}

var disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)

// CharsetRule removes everything but lowercase ASCII letters, digits,
// whitespace and hyphens.
var CharsetRule = Rule{
	Name: "charset",
	Apply: func(s string) string {
		return disallowed.ReplaceAllString(s, "")
	},
}

var spaces = regexp.MustCompile(`\s+`)

// WhitespaceRule collapses whitespace runs to one space and trims.
var WhitespaceRule = Rule{
	Name: "whitespace",
	Apply: func(s string) string {
		return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	},
}

// DefaultRules returns the canonical key rules in application order.
// Trademark symbols go before folding, which turns "™" into "TM". Folding
// goes before the other noise rules so full-width "（", "［", "＊" and "％"
// are caught by them.
func DefaultRules() []Rule {
	return []Rule{
		TrademarkRule,
		FoldRule,
		ParentheticalRule,
		BracketRule,
		AsteriskRule,
		PercentRule,
		LowerRule,
		CharsetRule,
		WhitespaceRule,
	}
}
