package domain

import "time"

// ProductCategory classifies a product.
type ProductCategory string

// Known product categories.
const (
	CategoryCleanser    ProductCategory = "cleanser"
	CategoryToner       ProductCategory = "toner"
	CategorySerum       ProductCategory = "serum"
	CategoryMoisturizer ProductCategory = "moisturizer"
	CategorySunscreen   ProductCategory = "sunscreen"
	CategoryExfoliant   ProductCategory = "exfoliant"
	CategoryMask        ProductCategory = "mask"
	CategoryEyeCare     ProductCategory = "eye-care"
	CategoryTreatment   ProductCategory = "treatment"
	CategoryOil         ProductCategory = "oil"
	CategoryOther       ProductCategory = "other"
)

// IsValid returns true if the category is recognised.
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryCleanser, CategoryToner, CategorySerum, CategoryMoisturizer,
		CategorySunscreen, CategoryExfoliant, CategoryMask, CategoryEyeCare,
		CategoryTreatment, CategoryOil, CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ProductCategory) String() string {
	return string(c)
}

// ProductSort orders product search results.
type ProductSort string

// Available product orderings.
const (
	SortByName   ProductSort = "name"
	SortByRating ProductSort = "rating"
	SortByNewest ProductSort = "newest"
)

// IsValid returns true if the sort order is recognised.
func (s ProductSort) IsValid() bool {
	return s == SortByName || s == SortByRating || s == SortByNewest
}

// Brand is a product manufacturer.
type Brand struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
	Website     string `json:"website,omitempty"`
}

// ProductIngredient is an ingredient at a declared position on a product label.
type ProductIngredient struct {
	Position      int        `json:"position"`
	IsHighlighted bool       `json:"isHighlighted"`
	Note          string     `json:"note,omitempty"`
	Ingredient    Ingredient `json:"ingredient"`
}

// Product is a catalog product.
type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	BrandID     string          `json:"brandId"`
	Brand       *Brand          `json:"brand,omitempty"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	Size        string          `json:"size,omitempty"`

	SafetyScore      float64 `json:"safetyScore"`
	IsFungalAcneSafe bool    `json:"isFungalAcneSafe"`
	IsFragranceFree  bool    `json:"isFragranceFree"`
	IsVegan          bool    `json:"isVegan"`
	IsCrueltyFree    bool    `json:"isCrueltyFree"`
	IsReefSafe       bool    `json:"isReefSafe"`
	IsDiscontinued   bool    `json:"isDiscontinued"`

	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`

	// Ingredients are ordered by Position.
	Ingredients []ProductIngredient `json:"ingredients,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// HasIngredient reports whether the product lists the ingredient slug.
func (p *Product) HasIngredient(slug string) bool {
	for i := range p.Ingredients {
		if p.Ingredients[i].Ingredient.Slug == slug {
			return true
		}
	}
	return false
}

// ProductQuery filters a product search.
type ProductQuery struct {
	Query                 string
	BrandSlug             string
	Category              ProductCategory
	FungalAcneSafe        bool
	MinRating             float64
	IngredientSlug        string
	ExcludeIngredientSlug string
	Sort                  ProductSort
	Limit                 int
	Offset                int
}

// ProductPage is one page of product search results.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
