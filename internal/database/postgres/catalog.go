package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
)

const catalogColumns = `ref, name, base_price::text, generate_per_seconds::text, currency_code, xp::text`

func scanCatalogItem(row pgx.Row) (*domain.CatalogItem, error) {
	var (
		item      domain.CatalogItem
		basePrice string
		rate      string
		xp        string
	)
	err := row.Scan(&item.Ref, &item.Name, &basePrice, &rate, &item.CurrencyCode, &xp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan catalog item: %w", err)
	}

	if item.BasePrice, err = decimal.NewFromString(basePrice); err != nil {
		return nil, fmt.Errorf("malformed base price: %w", err)
	}
	if item.GeneratePerSecond, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("malformed accrual rate: %w", err)
	}
	if item.XPAward, err = decimal.NewFromString(xp); err != nil {
		return nil, fmt.Errorf("malformed xp award: %w", err)
	}
	return &item, nil
}

// GetCatalogItem retrieves a static item definition by ref
func (s *Store) GetCatalogItem(ctx context.Context, ref string) (*domain.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog_items WHERE ref = $1`, catalogColumns)
	item, err := scanCatalogItem(s.pool.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, ref)
		}
		return nil, err
	}
	return item, nil
}

// ListCatalogItems returns the full catalog
func (s *Store) ListCatalogItems(ctx context.Context) ([]domain.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog_items ORDER BY base_price`, catalogColumns)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
