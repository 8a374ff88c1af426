package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
	"github.com/skintelect/skintelect/internal/logger"
)

// Ensure AffiliateService implements the interface.
var _ driving.AffiliateService = (*AffiliateService)(nil)

const offerDisplayLimit = 5

var offerIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// retailerPriority ranks retailers when offers tie on availability; lower first.
var retailerPriority = map[string]int{
	"amazon":        10,
	"sephora":       20,
	"ulta":          30,
	"dermstore":     40,
	"cultbeauty":    50,
	"lookfantastic": 60,
	"yesstyle":      70,
	"iherb":         80,
}

const defaultRetailerPriority = 100

// AffiliateService ranks offers and resolves affiliate redirects.
type AffiliateService struct {
	products       driven.ProductStore
	offers         driven.OfferStore
	metrics        driven.MetricsRecorder
	defaultCountry string
}

// NewAffiliateService creates a new affiliate service.
// The metrics parameter is optional (can be nil).
func NewAffiliateService(
	products driven.ProductStore,
	offers driven.OfferStore,
	metrics driven.MetricsRecorder,
	defaultCountry string,
) *AffiliateService {
	if defaultCountry == "" {
		defaultCountry = domain.DefaultAppSettings().DefaultCountry
	}
	return &AffiliateService{
		products:       products,
		offers:         offers,
		metrics:        metrics,
		defaultCountry: defaultCountry,
	}
}

// Offers returns the display list, featured offer and price comparison
// for a product.
func (s *AffiliateService) Offers(ctx context.Context, productSlug, country string) (*domain.OfferComparison, error) {
	p, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if country == "" {
		country = s.defaultCountry
	}
	country = strings.ToUpper(country)

	all, err := s.offers.ListForProduct(ctx, p.ID, country)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	display := all
	if len(display) > offerDisplayLimit {
		display = display[:offerDisplayLimit]
	}

	comparison := make([]domain.AffiliateOffer, 0, len(all))
	for _, o := range all {
		if o.Availability.IsBuyable() {
			comparison = append(comparison, o)
		}
	}
	sort.SliceStable(comparison, func(i, j int) bool {
		return priceLess(comparison[i].Price, comparison[j].Price)
	})

	return &domain.OfferComparison{
		Offers:     display,
		Primary:    primaryOffer(all),
		Comparison: comparison,
	}, nil
}

// primaryOffer picks the offer to feature: most buyable, then preferred
// retailer, then cheapest. Unknown prices lose ties.
func primaryOffer(offers []domain.AffiliateOffer) *domain.AffiliateOffer {
	if len(offers) == 0 {
		return nil
	}
	ranked := make([]domain.AffiliateOffer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ra, rb := a.Availability.Rank(), b.Availability.Rank(); ra != rb {
			return ra < rb
		}
		if pa, pb := retailerRank(a.RetailerSlug), retailerRank(b.RetailerSlug); pa != pb {
			return pa < pb
		}
		return priceLess(a.Price, b.Price)
	})
	return &ranked[0]
}

func retailerRank(slug string) int {
	if p, ok := retailerPriority[slug]; ok {
		return p
	}
	return defaultRetailerPriority
}

// priceLess orders known prices ascending with unknown prices last.
func priceLess(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

// Click validates the offer, records the click and returns the redirect URL.
func (s *AffiliateService) Click(ctx context.Context, offerID string) (string, error) {
	if !offerIDPattern.MatchString(offerID) {
		return "", fmt.Errorf("offer id %q: %w", offerID, domain.ErrInvalidInput)
	}

	offer, err := s.offers.Get(ctx, offerID)
	if err != nil {
		return "", err
	}
	if !offer.IsActive {
		return "", fmt.Errorf("offer %s inactive: %w", offerID, domain.ErrNotFound)
	}

	target := redirectURL(offer)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		logger.Error("invalid redirect URL for offer %s: %q", offerID, target)
		return "", fmt.Errorf("offer %s: %w", offerID, domain.ErrInvalidOfferURL)
	}

	if err := s.offers.IncrementClicks(ctx, offerID); err != nil {
		logger.Warn("record click for offer %s: %v", offerID, err)
	}
	if s.metrics != nil {
		s.metrics.AffiliateClick(offer.RetailerSlug)
	}
	return target, nil
}

// redirectURL appends the offer's deep-link params to its URL.
func redirectURL(o *domain.AffiliateOffer) string {
	if o.DeepLinkParams == "" {
		return o.URL
	}
	sep := "?"
	if strings.Contains(o.URL, "?") {
		sep = "&"
	}
	return o.URL + sep + o.DeepLinkParams
}

// RecordConversion increments the offer's conversion counter.
func (s *AffiliateService) RecordConversion(ctx context.Context, offerID string) error {
	if !offerIDPattern.MatchString(offerID) {
		return fmt.Errorf("offer id %q: %w", offerID, domain.ErrInvalidInput)
	}
	return s.offers.IncrementConversions(ctx, offerID)
}
