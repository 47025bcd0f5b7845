package repository

import (
	"context"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Listing defines the interface for marketplace listing persistence
type Listing interface {
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	ListListings(ctx context.Context) ([]domain.Listing, error)
	TxBeginner
}
