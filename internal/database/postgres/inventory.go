package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmvale/cryptofarm/internal/domain"
)

const ownedItemColumns = `row_id, account_id, catalog_ref, level, last_claim_at`

func scanOwnedItem(row pgx.Row) (*domain.OwnedItem, error) {
	var item domain.OwnedItem
	err := row.Scan(&item.RowID, &item.AccountID, &item.CatalogRef, &item.Level, &item.LastClaimAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan owned item: %w", err)
	}
	return &item, nil
}

func getOwnedItem(ctx context.Context, q querier, accountID, rowID string, forUpdate bool) (*domain.OwnedItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM owned_items WHERE account_id = $1 AND row_id = $2`, ownedItemColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	return scanOwnedItem(q.QueryRow(ctx, query, accountID, rowID))
}

func countOwnedItems(ctx context.Context, q querier, accountID string) (int, error) {
	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM owned_items WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count owned items: %w", err)
	}
	return count, nil
}

// ListOwnedItems returns all inventory rows for an account
func (s *Store) ListOwnedItems(ctx context.Context, accountID string) ([]domain.OwnedItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM owned_items WHERE account_id = $1 ORDER BY last_claim_at`, ownedItemColumns)
	rows, err := s.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned items: %w", err)
	}
	defer rows.Close()

	var items []domain.OwnedItem
	for rows.Next() {
		item, err := scanOwnedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetOwnedItem retrieves a single inventory row
func (s *Store) GetOwnedItem(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	return getOwnedItem(ctx, s.pool, accountID, rowID, false)
}

// CountOwnedItems returns the number of inventory rows for an account
func (s *Store) CountOwnedItems(ctx context.Context, accountID string) (int, error) {
	return countOwnedItems(ctx, s.pool, accountID)
}

func insertOwnedItem(ctx context.Context, q querier, item *domain.OwnedItem) error {
	query := `
		INSERT INTO owned_items (row_id, account_id, catalog_ref, level, last_claim_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, item.RowID, item.AccountID, item.CatalogRef, item.Level, item.LastClaimAt)
	if err != nil {
		return fmt.Errorf("failed to insert owned item: %w", err)
	}
	return nil
}

func updateOwnedItem(ctx context.Context, q querier, item *domain.OwnedItem) error {
	query := `
		UPDATE owned_items SET level = $3, last_claim_at = $4
		WHERE account_id = $1 AND row_id = $2
	`
	tag, err := q.Exec(ctx, query, item.AccountID, item.RowID, item.Level, item.LastClaimAt)
	if err != nil {
		return fmt.Errorf("failed to update owned item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func deleteOwnedItem(ctx context.Context, q querier, accountID, rowID string) error {
	tag, err := q.Exec(ctx, `DELETE FROM owned_items WHERE account_id = $1 AND row_id = $2`, accountID, rowID)
	if err != nil {
		return fmt.Errorf("failed to delete owned item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
