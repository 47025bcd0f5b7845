package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// storeTx implements repository.Tx on top of a pgx transaction
type storeTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *storeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *storeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetAccountForUpdate retrieves an account with a FOR UPDATE row lock
func (t *storeTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, t.tx, "account_id = $1", true, accountID)
}

// UpdateAccount persists the account's mutable economic fields
func (t *storeTx) UpdateAccount(ctx context.Context, account *domain.Account) error {
	return updateAccount(ctx, t.tx, account)
}

// GetOwnedItemForUpdate retrieves an inventory row with a FOR UPDATE lock
func (t *storeTx) GetOwnedItemForUpdate(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	return getOwnedItem(ctx, t.tx, accountID, rowID, true)
}

// UpdateOwnedItem persists an inventory row's level and claim clock
func (t *storeTx) UpdateOwnedItem(ctx context.Context, item *domain.OwnedItem) error {
	return updateOwnedItem(ctx, t.tx, item)
}

// InsertOwnedItem adds a fresh inventory row
func (t *storeTx) InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) error {
	return insertOwnedItem(ctx, t.tx, item)
}

// DeleteOwnedItem removes an inventory row
func (t *storeTx) DeleteOwnedItem(ctx context.Context, accountID, rowID string) error {
	return deleteOwnedItem(ctx, t.tx, accountID, rowID)
}

// CountOwnedItems counts an account's inventory rows
func (t *storeTx) CountOwnedItems(ctx context.Context, accountID string) (int, error) {
	return countOwnedItems(ctx, t.tx, accountID)
}

// GetListingForUpdate retrieves a listing with a FOR UPDATE row lock
func (t *storeTx) GetListingForUpdate(ctx context.Context, listingID string) (*domain.Listing, error) {
	return getListing(ctx, t.tx, listingID, true)
}

// InsertListing creates a marketplace listing
func (t *storeTx) InsertListing(ctx context.Context, listing *domain.Listing) error {
	return insertListing(ctx, t.tx, listing)
}

// DeleteListing removes a marketplace listing
func (t *storeTx) DeleteListing(ctx context.Context, listingID string) error {
	return deleteListing(ctx, t.tx, listingID)
}
