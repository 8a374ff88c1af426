package driven

import (
	"context"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// OfferStore persists affiliate offers and their counters.
type OfferStore interface {
	// Save stores or updates an offer. Counters are preserved on update.
	Save(ctx context.Context, offer *domain.AffiliateOffer) error

	// Get retrieves an offer by ID.
	Get(ctx context.Context, id string) (*domain.AffiliateOffer, error)

	// ListForProduct returns active offers for a product in a country,
	// ordered by display priority then price, unknown prices last.
	ListForProduct(ctx context.Context, productID, country string) ([]domain.AffiliateOffer, error)

	// IncrementClicks adds one to the click counter.
	IncrementClicks(ctx context.Context, id string) error

	// IncrementConversions adds one to the conversion counter.
	IncrementConversions(ctx context.Context, id string) error
}

// Pinger checks storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
