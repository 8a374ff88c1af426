package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
)

// Ensure OfferStore implements the interface.
var _ driven.OfferStore = (*OfferStore)(nil)

// OfferStore is an in-memory implementation of driven.OfferStore.
type OfferStore struct {
	mu     sync.RWMutex
	offers map[string]domain.AffiliateOffer
}

// NewOfferStore creates a new in-memory offer store.
func NewOfferStore() *OfferStore {
	return &OfferStore{offers: make(map[string]domain.AffiliateOffer)}
}

// Save stores or updates an offer. Counters are preserved on update.
func (s *OfferStore) Save(_ context.Context, offer *domain.AffiliateOffer) error {
	if offer.ID == "" || offer.ProductID == "" {
		return fmt.Errorf("offer id and product id are required: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *offer
	if old, ok := s.offers[offer.ID]; ok {
		stored.Clicks = old.Clicks
		stored.Conversions = old.Conversions
	}
	s.offers[offer.ID] = stored
	return nil
}

// Get retrieves an offer by ID.
func (s *OfferStore) Get(_ context.Context, id string) (*domain.AffiliateOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

// ListForProduct returns active offers ordered by display priority then price.
func (s *OfferStore) ListForProduct(_ context.Context, productID, country string) ([]domain.AffiliateOffer, error) {
	s.mu.RLock()
	out := make([]domain.AffiliateOffer, 0)
	for _, o := range s.offers {
		if o.ProductID == productID && o.Country == country && o.IsActive {
			out = append(out, o)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DisplayPriority != b.DisplayPriority {
			return a.DisplayPriority < b.DisplayPriority
		}
		if (a.Price == nil) != (b.Price == nil) {
			return a.Price != nil
		}
		if a.Price != nil && *a.Price != *b.Price {
			return *a.Price < *b.Price
		}
		return a.ID < b.ID
	})
	return out, nil
}

// IncrementClicks adds one to the click counter.
func (s *OfferStore) IncrementClicks(_ context.Context, id string) error {
	return s.update(id, func(o *domain.AffiliateOffer) { o.Clicks++ })
}

// IncrementConversions adds one to the conversion counter.
func (s *OfferStore) IncrementConversions(_ context.Context, id string) error {
	return s.update(id, func(o *domain.AffiliateOffer) { o.Conversions++ })
}

func (s *OfferStore) update(id string, fn func(*domain.AffiliateOffer)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&o)
	s.offers[id] = o
	return nil
}
