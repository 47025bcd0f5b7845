package repository

import (
	"context"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Tx defines the interface for transactional operations.
// The *ForUpdate getters take row locks so that every read-check-write
// sequence on an account, owned item or listing is serialized per entity.
type Tx interface {
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error

	GetOwnedItemForUpdate(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error)
	UpdateOwnedItem(ctx context.Context, item *domain.OwnedItem) error
	InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) error
	DeleteOwnedItem(ctx context.Context, accountID, rowID string) error
	CountOwnedItems(ctx context.Context, accountID string) (int, error)

	GetListingForUpdate(ctx context.Context, listingID string) (*domain.Listing, error)
	InsertListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, listingID string) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxBeginner starts a transaction spanning accounts, inventory and listings
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}
