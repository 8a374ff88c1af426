package domain

// Thresholds at which a rating is flagged in an analysis summary.
const (
	IrritantThreshold    = 3
	ComedogenicThreshold = 3
)

// IngredientFunction is a role an ingredient plays in a formulation.
type IngredientFunction string

// Known ingredient functions.
const (
	FunctionMoisturizing IngredientFunction = "moisturizing"
	FunctionHumectant    IngredientFunction = "humectant"
	FunctionEmollient    IngredientFunction = "emollient"
	FunctionOcclusive    IngredientFunction = "occlusive"
	FunctionAntioxidant  IngredientFunction = "antioxidant"
	FunctionExfoliating  IngredientFunction = "exfoliating"
	FunctionSoothing     IngredientFunction = "soothing"
	FunctionBrightening  IngredientFunction = "brightening"
	FunctionAcneFighting IngredientFunction = "acne-fighting"
	FunctionAntiAging    IngredientFunction = "anti-aging"
	FunctionCleansing    IngredientFunction = "cleansing"
	FunctionPreservative IngredientFunction = "preservative"
	FunctionFragrance    IngredientFunction = "fragrance"
	FunctionEmulsifier   IngredientFunction = "emulsifier"
	FunctionSolvent      IngredientFunction = "solvent"
	FunctionOther        IngredientFunction = "other"
)

// IsValid returns true if the function is recognised.
func (f IngredientFunction) IsValid() bool {
	for _, known := range AllIngredientFunctions() {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (f IngredientFunction) String() string {
	return string(f)
}

// AllIngredientFunctions returns every known function in display order.
func AllIngredientFunctions() []IngredientFunction {
	return []IngredientFunction{
		FunctionMoisturizing,
		FunctionHumectant,
		FunctionEmollient,
		FunctionOcclusive,
		FunctionAntioxidant,
		FunctionExfoliating,
		FunctionSoothing,
		FunctionBrightening,
		FunctionAcneFighting,
		FunctionAntiAging,
		FunctionCleansing,
		FunctionPreservative,
		FunctionFragrance,
		FunctionEmulsifier,
		FunctionSolvent,
		FunctionOther,
	}
}

// Ingredient is a reference record in the ingredient catalog.
// Records are read-only from the analyzer's point of view.
type Ingredient struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// Slug is the URL-safe unique name (e.g. "hyaluronic-acid").
	Slug string `json:"slug"`

	// Name is the display name.
	Name string `json:"name"`

	// INCIName is the standardised label name, if different from Name.
	INCIName string `json:"inciName,omitempty"`

	// Aliases are alternative label spellings that resolve to this record.
	Aliases []string `json:"aliases,omitempty"`

	Description string               `json:"description,omitempty"`
	Functions   []IngredientFunction `json:"functions"`

	// ComedogenicRating is 0-5, nil when unknown.
	ComedogenicRating *int `json:"comedogenicRating,omitempty"`

	// IrritationLevel is 0-5, nil when unknown.
	IrritationLevel *int `json:"irritationLevel,omitempty"`

	IsFungalAcneTrigger bool `json:"isFungalAcneTrigger"`
	IsAllergen          bool `json:"isAllergen"`
	IsReefUnsafe        bool `json:"isReefUnsafe"`

	// IsActive marks headline actives (retinoids, acids, vitamins).
	IsActive bool `json:"isActive"`

	Benefits []string `json:"benefits,omitempty"`
	Concerns []string `json:"concerns,omitempty"`
	GoodFor  []string `json:"goodFor,omitempty"`
}

// IsIrritant reports whether the irritation level reaches IrritantThreshold.
func (i *Ingredient) IsIrritant() bool {
	return i.IrritationLevel != nil && *i.IrritationLevel >= IrritantThreshold
}

// IsComedogenic reports whether the comedogenic rating reaches ComedogenicThreshold.
func (i *Ingredient) IsComedogenic() bool {
	return i.ComedogenicRating != nil && *i.ComedogenicRating >= ComedogenicThreshold
}

// HasFunction reports whether the ingredient has fn among its functions.
func (i *Ingredient) HasFunction(fn IngredientFunction) bool {
	for _, f := range i.Functions {
		if f == fn {
			return true
		}
	}
	return false
}

// IngredientQuery filters an ingredient search.
type IngredientQuery struct {
	// Query matches name, INCI name or alias, case-insensitively.
	Query string

	// Functions matches ingredients having any of the listed functions.
	Functions []IngredientFunction

	// FungalAcneSafe excludes fungal-acne triggers.
	FungalAcneSafe bool

	// AllergenFree excludes allergens.
	AllergenFree bool

	// MaxComedogenic excludes ratings above the value. Unknown ratings pass.
	MaxComedogenic *int

	Limit  int
	Offset int
}

// IngredientPage is one page of ingredient search results.
type IngredientPage struct {
	Ingredients []Ingredient `json:"ingredients"`
	Total       int          `json:"total"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
}

// Matches reports whether ing satisfies every filter in q except the text query.
func (q IngredientQuery) Matches(ing *Ingredient) bool {
	if q.FungalAcneSafe && ing.IsFungalAcneTrigger {
		return false
	}
	if q.AllergenFree && ing.IsAllergen {
		return false
	}
	if q.MaxComedogenic != nil && ing.ComedogenicRating != nil && *ing.ComedogenicRating > *q.MaxComedogenic {
		return false
	}
	if len(q.Functions) > 0 {
		for _, fn := range q.Functions {
			if ing.HasFunction(fn) {
				return true
			}
		}
		return false
	}
	return true
}

// Suggestion is a lightweight search-as-you-type result.
type Suggestion struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Rating returns a pointer to v, for populating optional ratings.
func Rating(v int) *int {
	return &v
}
