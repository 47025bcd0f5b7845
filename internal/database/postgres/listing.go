package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
)

const listingColumns = `listing_id, catalog_ref, level, price::text, seller_id, created_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		listing domain.Listing
		price   string
	)
	err := row.Scan(&listing.ID, &listing.CatalogRef, &listing.Level, &price,
		&listing.SellerID, &listing.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	if listing.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("malformed listing price: %w", err)
	}
	return &listing, nil
}

func getListing(ctx context.Context, q querier, listingID string, forUpdate bool) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE listing_id = $1`, listingColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	return scanListing(q.QueryRow(ctx, query, listingID))
}

// GetListing retrieves a listing by id
func (s *Store) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return getListing(ctx, s.pool, listingID, false)
}

// ListListings returns all open marketplace listings
func (s *Store) ListListings(ctx context.Context) ([]domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings ORDER BY created_at`, listingColumns)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

func insertListing(ctx context.Context, q querier, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (listing_id, catalog_ref, level, price, seller_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, listing.ID, listing.CatalogRef, listing.Level,
		listing.Price, listing.SellerID).Scan(&listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func deleteListing(ctx context.Context, q querier, listingID string) error {
	tag, err := q.Exec(ctx, `DELETE FROM listings WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
