package inci

import "github.com/skintelect/skintelect/internal/core/domain"

// Parser converts label text into ordered tokens.
type Parser struct {
	normalizer *Normalizer
	max        int
}

// NewParser creates a parser that keys tokens with n and keeps at most
// domain.MaxIngredients tokens. A nil n uses DefaultRules.
func NewParser(n *Normalizer) *Parser {
	if n == nil {
		n = defaultNormalizer
	}
	return &Parser{normalizer: n, max: domain.MaxIngredients}
}

// Parse strips a leading label, splits the text and normalises each piece.
// Pieces whose key is empty are dropped before positions are assigned, so
// positions run 1..n without gaps. Tokens past the limit are discarded.
func (p *Parser) Parse(text string) []domain.Token {
	pieces := Split(StripPrefix(text))
	tokens := make([]domain.Token, 0, min(len(pieces), p.max))
	for _, piece := range pieces {
		if len(tokens) == p.max {
			break
		}
		key := p.normalizer.Normalize(piece)
		if key == "" {
			continue
		}
		tokens = append(tokens, domain.Token{
			Original: piece,
			Key:      key,
			Position: len(tokens) + 1,
		})
	}
	return tokens
}

var defaultParser = NewParser(nil)

// Parse parses text with the default parser.
func Parse(text string) []domain.Token {
	return defaultParser.Parse(text)
}
