package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/inci"
)

//go:embed dataset.yaml
var embedded []byte

// ErrInvalidDataset is returned by Validate for an inconsistent dataset.
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is the reference catalog as written in YAML.
type Dataset struct {
	Brands      []BrandRecord      `yaml:"brands"`
	Ingredients []IngredientRecord `yaml:"ingredients"`
	Products    []ProductRecord    `yaml:"products"`
	Offers      []OfferRecord      `yaml:"offers"`
}

// BrandRecord is a brand entry.
type BrandRecord struct {
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Country     string `yaml:"country"`
	Website     string `yaml:"website"`
}

// IngredientRecord is an ingredient entry. Ratings are omitted when unknown.
type IngredientRecord struct {
	ID                string   `yaml:"id"`
	Slug              string   `yaml:"slug"`
	Name              string   `yaml:"name"`
	INCIName          string   `yaml:"inci_name"`
	Aliases           []string `yaml:"aliases"`
	Description       string   `yaml:"description"`
	Functions         []string `yaml:"functions"`
	Comedogenic       *int     `yaml:"comedogenic"`
	Irritation        *int     `yaml:"irritation"`
	FungalAcneTrigger bool     `yaml:"fungal_acne_trigger"`
	Allergen          bool     `yaml:"allergen"`
	ReefUnsafe        bool     `yaml:"reef_unsafe"`
	Active            bool     `yaml:"active"`
	Benefits          []string `yaml:"benefits"`
	Concerns          []string `yaml:"concerns"`
	GoodFor           []string `yaml:"good_for"`
}

// ProductRecord is a product entry. Ingredients are listed in label order.
type ProductRecord struct {
	ID             string                    `yaml:"id"`
	Slug           string                    `yaml:"slug"`
	Name           string                    `yaml:"name"`
	Brand          string                    `yaml:"brand"`
	Category       string                    `yaml:"category"`
	Description    string                    `yaml:"description"`
	Size           string                    `yaml:"size"`
	SafetyScore    float64                   `yaml:"safety_score"`
	FungalAcneSafe bool                      `yaml:"fungal_acne_safe"`
	FragranceFree  bool                      `yaml:"fragrance_free"`
	Vegan          bool                      `yaml:"vegan"`
	CrueltyFree    bool                      `yaml:"cruelty_free"`
	ReefSafe       bool                      `yaml:"reef_safe"`
	Discontinued   bool                      `yaml:"discontinued"`
	AverageRating  float64                   `yaml:"average_rating"`
	ReviewCount    int                       `yaml:"review_count"`
	Ingredients    []ProductIngredientRecord `yaml:"ingredients"`
}

// ProductIngredientRecord references an ingredient by slug.
type ProductIngredientRecord struct {
	Slug        string `yaml:"slug"`
	Highlighted bool   `yaml:"highlighted"`
	Note        string `yaml:"note"`
}

// OfferRecord is an affiliate offer entry. Active defaults to true.
type OfferRecord struct {
	ID              string   `yaml:"id"`
	Product         string   `yaml:"product"`
	RetailerName    string   `yaml:"retailer_name"`
	RetailerSlug    string   `yaml:"retailer_slug"`
	URL             string   `yaml:"url"`
	DeepLinkParams  string   `yaml:"deep_link_params"`
	Country         string   `yaml:"country"`
	Currency        string   `yaml:"currency"`
	Price           *float64 `yaml:"price"`
	OriginalPrice   *float64 `yaml:"original_price"`
	Availability    string   `yaml:"availability"`
	DisplayPriority int      `yaml:"display_priority"`
	Active          *bool    `yaml:"active"`
}

// Load decodes a dataset. Unknown fields are rejected.
func Load(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return &ds, nil
		}
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return &ds, nil
}

// LoadFile decodes the dataset at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Embedded returns the dataset compiled into the binary.
func Embedded() (*Dataset, error) {
	return Load(bytes.NewReader(embedded))
}

// Validate checks references and uniqueness. All problems are reported
// together, joined, each wrapping ErrInvalidDataset.
func (d *Dataset) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDataset}, args...)...))
	}

	brands := make(map[string]bool, len(d.Brands))
	for _, b := range d.Brands {
		if b.Slug == "" || b.Name == "" {
			fail("brand %q needs a slug and a name", b.Slug)
			continue
		}
		if brands[b.Slug] {
			fail("duplicate brand slug %q", b.Slug)
		}
		brands[b.Slug] = true
	}

	ingredients := make(map[string]bool, len(d.Ingredients))
	keyOwner := make(map[string]string)
	for _, ing := range d.Ingredients {
		if ing.Slug == "" || ing.Name == "" {
			fail("ingredient %q needs a slug and a name", ing.Slug)
			continue
		}
		if ingredients[ing.Slug] {
			fail("duplicate ingredient slug %q", ing.Slug)
		}
		ingredients[ing.Slug] = true
		for _, fn := range ing.Functions {
			if !domain.IngredientFunction(fn).IsValid() {
				fail("ingredient %q has unknown function %q", ing.Slug, fn)
			}
		}
		for _, k := range ingredientKeys(ing) {
			if owner, ok := keyOwner[k]; ok && owner != ing.Slug {
				fail("alias %q of %q already belongs to %q", k, ing.Slug, owner)
				continue
			}
			keyOwner[k] = ing.Slug
		}
	}

	products := make(map[string]bool, len(d.Products))
	for _, p := range d.Products {
		if p.Slug == "" || p.Name == "" {
			fail("product %q needs a slug and a name", p.Slug)
			continue
		}
		if products[p.Slug] {
			fail("duplicate product slug %q", p.Slug)
		}
		products[p.Slug] = true
		if p.Brand != "" && !brands[p.Brand] {
			fail("product %q references unknown brand %q", p.Slug, p.Brand)
		}
		if p.Category != "" && !domain.ProductCategory(p.Category).IsValid() {
			fail("product %q has unknown category %q", p.Slug, p.Category)
		}
		for _, pi := range p.Ingredients {
			if !ingredients[pi.Slug] {
				fail("product %q references unknown ingredient %q", p.Slug, pi.Slug)
			}
		}
	}

	offers := make(map[string]bool, len(d.Offers))
	for _, o := range d.Offers {
		if !products[o.Product] {
			fail("offer %q references unknown product %q", o.ID, o.Product)
		}
		if o.ID == "" {
			continue
		}
		if offers[o.ID] {
			fail("duplicate offer id %q", o.ID)
		}
		offers[o.ID] = true
	}

	return errors.Join(errs...)
}

// Counts summarises the size of a dataset or a seed run. Removed counts
// the stored ingredients and products a seed run deleted.
type Counts struct {
	Brands      int `json:"brands"`
	Ingredients int `json:"ingredients"`
	Products    int `json:"products"`
	Offers      int `json:"offers"`
	Removed     int `json:"removed,omitempty"`
}

// Counts returns the number of records of each kind.
func (d *Dataset) Counts() Counts {
	return Counts{
		Brands:      len(d.Brands),
		Ingredients: len(d.Ingredients),
		Products:    len(d.Products),
		Offers:      len(d.Offers),
	}
}

func ingredientKeys(ing IngredientRecord) []string {
	values := make([]string, 0, len(ing.Aliases)+2)
	values = append(values, ing.Name, ing.INCIName)
	values = append(values, ing.Aliases...)
	return inci.Keys(values...)
}

func (r IngredientRecord) toDomain(id string) *domain.Ingredient {
	fns := make([]domain.IngredientFunction, len(r.Functions))
	for i, fn := range r.Functions {
		fns[i] = domain.IngredientFunction(fn)
	}
	return &domain.Ingredient{
		ID:                  id,
		Slug:                r.Slug,
		Name:                r.Name,
		INCIName:            r.INCIName,
		Aliases:             r.Aliases,
		Description:         r.Description,
		Functions:           fns,
		ComedogenicRating:   r.Comedogenic,
		IrritationLevel:     r.Irritation,
		IsFungalAcneTrigger: r.FungalAcneTrigger,
		IsAllergen:          r.Allergen,
		IsReefUnsafe:        r.ReefUnsafe,
		IsActive:            r.Active,
		Benefits:            r.Benefits,
		Concerns:            r.Concerns,
		GoodFor:             r.GoodFor,
	}
}

func (r BrandRecord) toDomain(id string) *domain.Brand {
	return &domain.Brand{
		ID:          id,
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Country:     r.Country,
		Website:     r.Website,
	}
}

func (r OfferRecord) toDomain(id, productID string) *domain.AffiliateOffer {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	availability := domain.Availability(r.Availability)
	if availability == "" {
		availability = domain.AvailabilityUnknown
	}
	return &domain.AffiliateOffer{
		ID:              id,
		ProductID:       productID,
		RetailerName:    r.RetailerName,
		RetailerSlug:    r.RetailerSlug,
		URL:             r.URL,
		DeepLinkParams:  r.DeepLinkParams,
		Country:         r.Country,
		Currency:        r.Currency,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		Availability:    availability,
		DisplayPriority: r.DisplayPriority,
		IsActive:        active,
	}
}
