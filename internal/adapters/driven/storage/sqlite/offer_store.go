package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
)

// ==================== Offer Store ====================

// offerStore implements driven.OfferStore.
type offerStore struct {
	store *Store
}

var _ driven.OfferStore = (*offerStore)(nil)

const offerColumns = `id, product_id, retailer_name, retailer_slug, url, deep_link_params, country,
	currency, price, original_price, availability, display_priority, is_active, clicks, conversions`

// Save stores or updates an offer. Click and conversion counters are never
// overwritten by Save.
func (s *offerStore) Save(ctx context.Context, o *domain.AffiliateOffer) error {
	if o.ID == "" || o.ProductID == "" {
		return fmt.Errorf("offer id and product id are required: %w", domain.ErrInvalidInput)
	}
	availability := o.Availability
	if availability == "" {
		availability = domain.AvailabilityUnknown
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO affiliate_offers (id, product_id, retailer_name, retailer_slug, url, deep_link_params,
			country, currency, price, original_price, availability, display_priority, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			product_id = excluded.product_id,
			retailer_name = excluded.retailer_name,
			retailer_slug = excluded.retailer_slug,
			url = excluded.url,
			deep_link_params = excluded.deep_link_params,
			country = excluded.country,
			currency = excluded.currency,
			price = excluded.price,
			original_price = excluded.original_price,
			availability = excluded.availability,
			display_priority = excluded.display_priority,
			is_active = excluded.is_active
	`, o.ID, o.ProductID, o.RetailerName, o.RetailerSlug, o.URL, o.DeepLinkParams,
		o.Country, o.Currency, nullFloat(o.Price), nullFloat(o.OriginalPrice),
		string(availability), o.DisplayPriority, o.IsActive)
	if err != nil {
		return fmt.Errorf("saving offer: %w", err)
	}
	return nil
}

// Get retrieves an offer by ID.
func (s *offerStore) Get(ctx context.Context, id string) (*domain.AffiliateOffer, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+offerColumns+" FROM affiliate_offers WHERE id = ?", id)
	return scanOffer(row)
}

// ListForProduct returns active offers for a product in country, ordered by
// display priority then price. Unknown prices sort last.
func (s *offerStore) ListForProduct(ctx context.Context, productID, country string) ([]domain.AffiliateOffer, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+offerColumns+` FROM affiliate_offers
		WHERE product_id = ? AND country = ? AND is_active = 1
		ORDER BY display_priority, price IS NULL, price, id
	`, productID, country)
	if err != nil {
		return nil, fmt.Errorf("querying offers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AffiliateOffer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating offers: %w", err)
	}
	return out, nil
}

// IncrementClicks adds one to the click counter.
func (s *offerStore) IncrementClicks(ctx context.Context, id string) error {
	return s.increment(ctx, "clicks", id)
}

// IncrementConversions adds one to the conversion counter.
func (s *offerStore) IncrementConversions(ctx context.Context, id string) error {
	return s.increment(ctx, "conversions", id)
}

// increment bumps a counter column. column is never user input.
func (s *offerStore) increment(ctx context.Context, column, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE affiliate_offers SET "+column+" = "+column+" + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("incrementing %s: %w", column, err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOffer(sc rowScanner) (*domain.AffiliateOffer, error) {
	var o domain.AffiliateOffer
	var availability string
	var price, original sql.NullFloat64

	if err := sc.Scan(&o.ID, &o.ProductID, &o.RetailerName, &o.RetailerSlug, &o.URL, &o.DeepLinkParams,
		&o.Country, &o.Currency, &price, &original, &availability, &o.DisplayPriority, &o.IsActive,
		&o.Clicks, &o.Conversions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning offer: %w", err)
	}
	o.Availability = domain.Availability(availability)
	o.Price = floatPtr(price)
	o.OriginalPrice = floatPtr(original)
	return &o, nil
}
