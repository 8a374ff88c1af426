package domain

// Analysis input bounds.
const (
	// MaxInputLength is the maximum ingredient list length, in characters.
	MaxInputLength = 10000

	// MaxIngredients is the maximum number of tokens kept from one list.
	// Tokens beyond it are dropped, not rejected.
	MaxIngredients = 100
)

// Token is one entry of a parsed ingredient list.
type Token struct {
	// Original is the trimmed text as it appeared on the label.
	Original string

	// Key is the canonical lookup key derived from Original.
	Key string

	// Position is 1-based declaration order.
	Position int
}

// AnalyzedIngredient pairs a token with its catalog match, if any.
type AnalyzedIngredient struct {
	OriginalText string      `json:"originalText"`
	Position     int         `json:"position"`
	IsRecognized bool        `json:"isRecognized"`
	Ingredient   *Ingredient `json:"ingredient"`
}

// AnalysisSummary aggregates flags over an analyzed list.
// Name lists follow token order and keep duplicates.
type AnalysisSummary struct {
	Total        int `json:"total"`
	Recognized   int `json:"recognized"`
	Unrecognized int `json:"unrecognized"`

	IsFungalAcneSafe       bool     `json:"isFungalAcneSafe"`
	FungalAcneTriggers     []string `json:"fungalAcneTriggers"`
	PotentialAllergens     []string `json:"potentialAllergens"`
	PotentialIrritants     []string `json:"potentialIrritants"`
	ComedogenicIngredients []string `json:"comedogenicIngredients"`
	ReefUnsafe             []string `json:"reefUnsafe"`
}

// HasWarnings reports whether any warning list is non-empty.
func (s *AnalysisSummary) HasWarnings() bool {
	return len(s.FungalAcneTriggers) > 0 ||
		len(s.PotentialAllergens) > 0 ||
		len(s.PotentialIrritants) > 0 ||
		len(s.ComedogenicIngredients) > 0 ||
		len(s.ReefUnsafe) > 0
}

// AnalysisResult is the outcome of analyzing one ingredient list.
type AnalysisResult struct {
	Ingredients []AnalyzedIngredient `json:"ingredients"`
	Summary     AnalysisSummary      `json:"summary"`
}
