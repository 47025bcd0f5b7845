package repository

import (
	"context"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Inventory defines the interface for owned item persistence
type Inventory interface {
	ListOwnedItems(ctx context.Context, accountID string) ([]domain.OwnedItem, error)
	GetOwnedItem(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error)
	CountOwnedItems(ctx context.Context, accountID string) (int, error)
	TxBeginner
}
