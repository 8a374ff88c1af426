package inci

// Normalizer chains Rules and applies them in order.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer creates a normalizer with the given rules.
// Rules are applied in the order provided.
func NewNormalizer(rules ...Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// Normalize runs s through every rule.
func (n *Normalizer) Normalize(s string) string {
	for _, r := range n.rules {
		s = r.Apply(s)
	}
	return s
}

// Add appends a rule to the chain.
func (n *Normalizer) Add(r Rule) {
	n.rules = append(n.rules, r)
}

// Len returns the number of rules in the chain.
func (n *Normalizer) Len() int {
	return len(n.rules)
}

// Names returns the rule names in application order.
func (n *Normalizer) Names() []string {
	names := make([]string, len(n.rules))
	for i, r := range n.rules {
		names[i] = r.Name
	}
	return names
}

var defaultNormalizer = NewNormalizer(DefaultRules()...)

// Normalize returns the canonical lookup key for s using DefaultRules.
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return defaultNormalizer.Normalize(s)
}

// Keys normalises each value and returns the distinct non-empty keys in
// first-seen order. Stores use it to derive alias keys from a record's
// name, INCI name and aliases.
func Keys(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	keys := make([]string, 0, len(values))
	for _, v := range values {
		k := Normalize(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
