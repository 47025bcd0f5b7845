package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/metrics"
	"github.com/farmvale/cryptofarm/internal/pricing"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// CatalogView is a catalog item with its live crypto-converted price
type CatalogView struct {
	domain.CatalogItem
	PriceInCrypto             decimal.Decimal `json:"price_in_crypto"`
	GeneratePerSecondInCrypto decimal.Decimal `json:"generate_per_seconds_in_crypto"`
}

// BuyResult is returned on a successful catalog purchase
type BuyResult struct {
	Item       *domain.OwnedItem `json:"item"`
	Cost       decimal.Decimal   `json:"cost"`
	NewBalance decimal.Decimal   `json:"new_balance"`
	XP         ledger.XPResult   `json:"xp"`
}

// Service sells fresh catalog items to accounts
type Service interface {
	// Browse returns the catalog with converted display prices
	Browse(ctx context.Context) ([]CatalogView, error)

	// Buy purchases a catalog item: debit the converted base price, add a
	// level 1 inventory row and award the item's xp - one transaction
	Buy(ctx context.Context, accountID, catalogRef string) (*BuyResult, error)
}

type service struct {
	accounts   repository.Account
	catalog    repository.Catalog
	pricingSvc pricing.Service
}

// NewService creates a new shop service
func NewService(accounts repository.Account, catalog repository.Catalog, pricingSvc pricing.Service) Service {
	return &service{
		accounts:   accounts,
		catalog:    catalog,
		pricingSvc: pricingSvc,
	}
}

func (s *service) Browse(ctx context.Context) ([]CatalogView, error) {
	log := logger.FromContext(ctx)

	items, err := s.catalog.ListCatalogItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	views := make([]CatalogView, 0, len(items))
	for _, item := range items {
		view := CatalogView{CatalogItem: item}
		rate, err := s.pricingSvc.Rate(ctx, item.CurrencyCode)
		if err != nil || rate.Sign() <= 0 {
			log.Warn("Skipping price conversion for catalog item", "ref", item.Ref, "error", err)
			views = append(views, view)
			continue
		}
		view.PriceInCrypto = item.BasePrice.Div(rate)
		view.GeneratePerSecondInCrypto = item.GeneratePerSecond.Div(rate)
		views = append(views, view)
	}
	return views, nil
}

func (s *service) Buy(ctx context.Context, accountID, catalogRef string) (*BuyResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Shop buy called", "account_id", accountID, "catalog_ref", catalogRef)

	def, err := s.catalog.GetCatalogItem(ctx, catalogRef)
	if err != nil {
		return nil, err
	}
	// Convert before taking the account lock; oracle calls must not hold locks
	cost, err := s.pricingSvc.Convert(ctx, def.BasePrice, def.CurrencyCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.accounts.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	count, err := tx.CountOwnedItems(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}
	if !ledger.HasCapacity(account, count) {
		return nil, fmt.Errorf("%w: %d of %d slots used", domain.ErrInsufficientSlots, count, account.SlotCapacity)
	}

	if err := ledger.ApplyDebit(account, cost); err != nil {
		return nil, err
	}
	xpResult := ledger.ApplyXP(account, def.XPAward)

	item := inventory.NewOwnedItem(accountID, catalogRef, 1)
	if err := tx.InsertOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert owned item: %w", err)
	}
	if err := tx.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.Trades.WithLabelValues(metrics.TradeShopBuy).Inc()
	log.Info("Catalog item purchased", "account_id", accountID, "catalog_ref", catalogRef, "cost", cost)

	return &BuyResult{Item: item, Cost: cost, NewBalance: account.Balance, XP: xpResult}, nil
}
