package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// NewOwnedItem builds a fresh inventory row: new row id, the given level and
// the accrual clock reset to now. Callers insert it inside their own
// transaction; capacity must already have been validated at the call site.
func NewOwnedItem(accountID, catalogRef string, level int) *domain.OwnedItem {
	return &domain.OwnedItem{
		RowID:       uuid.NewString(),
		AccountID:   accountID,
		CatalogRef:  catalogRef,
		Level:       level,
		LastClaimAt: time.Now(),
	}
}

// Service owns the set of items an account possesses
type Service interface {
	// List returns the account's inventory joined with catalog data
	List(ctx context.Context, accountID string) ([]domain.InventoryView, error)

	// Find returns a single owned row, ErrItemNotFound if absent
	Find(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error)

	// Add inserts a fresh row for the catalog item at the given level
	Add(ctx context.Context, accountID, catalogRef string, level int) (*domain.OwnedItem, error)

	// Remove deletes a row and returns it, ErrItemNotFound if absent
	Remove(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error)
}

type service struct {
	repo    repository.Inventory
	catalog repository.Catalog
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, catalog repository.Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) List(ctx context.Context, accountID string) ([]domain.InventoryView, error) {
	items, err := s.repo.ListOwnedItems(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	views := make([]domain.InventoryView, 0, len(items))
	for _, item := range items {
		def, err := s.catalog.GetCatalogItem(ctx, item.CatalogRef)
		if err != nil {
			// A row referencing a missing catalog entry is a data problem,
			// not a reason to hide the rest of the inventory.
			logger.FromContext(ctx).Error("Owned item references unknown catalog entry",
				"row_id", item.RowID, "catalog_ref", item.CatalogRef, "error", err)
			continue
		}
		views = append(views, domain.InventoryView{
			OwnedItem:         item,
			Name:              def.Name,
			BasePrice:         def.BasePrice,
			GeneratePerSecond: def.GeneratePerSecond,
			CurrencyCode:      def.CurrencyCode,
		})
	}
	return views, nil
}

func (s *service) Find(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	return s.repo.GetOwnedItem(ctx, accountID, rowID)
}

func (s *service) Add(ctx context.Context, accountID, catalogRef string, level int) (*domain.OwnedItem, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: level %d", domain.ErrInvalidInput, level)
	}
	if _, err := s.catalog.GetCatalogItem(ctx, catalogRef); err != nil {
		return nil, err
	}

	item := NewOwnedItem(accountID, catalogRef, level)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert owned item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}

func (s *service) Remove(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, accountID, rowID)
	if err != nil {
		return nil, err
	}
	if err := tx.DeleteOwnedItem(ctx, accountID, rowID); err != nil {
		return nil, fmt.Errorf("failed to delete owned item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}
