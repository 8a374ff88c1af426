package domain

// Availability is an offer's stock state.
type Availability string

// Known availability states.
const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityPreorder   Availability = "preorder"
	AvailabilityUnknown    Availability = "unknown"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// Rank orders availability from most to least buyable.
func (a Availability) Rank() int {
	switch a {
	case AvailabilityInStock:
		return 0
	case AvailabilityLowStock:
		return 1
	case AvailabilityPreorder:
		return 2
	case AvailabilityOutOfStock:
		return 4
	default:
		return 3
	}
}

// IsBuyable reports whether the offer can be purchased now or pre-ordered.
func (a Availability) IsBuyable() bool {
	return a == AvailabilityInStock || a == AvailabilityLowStock || a == AvailabilityPreorder
}

// AffiliateOffer is a retailer listing for a product.
type AffiliateOffer struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	RetailerName string `json:"retailerName"`
	RetailerSlug string `json:"retailerSlug"`
	URL          string `json:"url"`

	// DeepLinkParams is appended to URL when redirecting, without a leading separator.
	DeepLinkParams string `json:"deepLinkParams,omitempty"`

	Country       string       `json:"country"`
	Currency      string       `json:"currency"`
	Price         *float64     `json:"price,omitempty"`
	OriginalPrice *float64     `json:"originalPrice,omitempty"`
	Availability  Availability `json:"availability"`

	// DisplayPriority orders offers for display; lower first.
	DisplayPriority int  `json:"displayPriority"`
	IsActive        bool `json:"isActive"`

	Clicks      int `json:"clicks"`
	Conversions int `json:"conversions"`
}

// OfferComparison groups a product's offers for display.
type OfferComparison struct {
	// Offers is ordered by display priority then price.
	Offers []AffiliateOffer `json:"offers"`

	// Primary is the best offer to feature, nil when there are none.
	Primary *AffiliateOffer `json:"primary"`

	// Comparison holds buyable offers ordered by price.
	Comparison []AffiliateOffer `json:"comparison"`
}

// Price returns a pointer to v, for populating optional prices.
func Price(v float64) *float64 {
	return &v
}
