package market

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/metrics"
	"github.com/farmvale/cryptofarm/internal/pricing"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// BuyResult is returned on a successful marketplace purchase
type BuyResult struct {
	Item       *domain.OwnedItem `json:"item"`
	Cost       decimal.Decimal   `json:"cost"`
	NewBalance decimal.Decimal   `json:"new_balance"`
}

// SellResult is returned on a successful direct catalog sell
type SellResult struct {
	Proceeds   decimal.Decimal `json:"proceeds"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// Service orchestrates cross-account trades
type Service interface {
	// Browse returns all listings with live converted prices
	Browse(ctx context.Context) ([]domain.ListingView, error)

	// List moves an owned item out of the seller's inventory into a listing
	// at a seller-chosen fiat price
	List(ctx context.Context, sellerID, rowID string, price decimal.Decimal) (*domain.Listing, error)

	// Buy purchases a listing: debit buyer, credit seller, transfer the item
	// at its listed level, delete the listing - all in one transaction
	Buy(ctx context.Context, buyerID, listingID string) (*BuyResult, error)

	// Sell sells an owned item straight back to the catalog at base price
	Sell(ctx context.Context, accountID, rowID string) (*SellResult, error)

	// Withdraw returns a listed item to the seller's inventory, no funds move
	Withdraw(ctx context.Context, sellerID, listingID string) (*domain.OwnedItem, error)
}

type service struct {
	listings   repository.Listing
	catalog    repository.Catalog
	pricingSvc pricing.Service
}

// NewService creates a new marketplace service
func NewService(listings repository.Listing, catalog repository.Catalog, pricingSvc pricing.Service) Service {
	return &service{
		listings:   listings,
		catalog:    catalog,
		pricingSvc: pricingSvc,
	}
}

func (s *service) Browse(ctx context.Context) ([]domain.ListingView, error) {
	log := logger.FromContext(ctx)

	listings, err := s.listings.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list marketplace: %w", err)
	}

	views := make([]domain.ListingView, 0, len(listings))
	for _, listing := range listings {
		def, err := s.catalog.GetCatalogItem(ctx, listing.CatalogRef)
		if err != nil {
			log.Error("Listing references unknown catalog entry",
				"listing_id", listing.ID, "catalog_ref", listing.CatalogRef, "error", err)
			continue
		}

		view := domain.ListingView{
			Listing:           listing,
			Name:              def.Name,
			GeneratePerSecond: def.GeneratePerSecond,
			CurrencyCode:      def.CurrencyCode,
		}
		// Display conversion only; the authoritative conversion happens
		// again at purchase time.
		if converted, err := s.pricingSvc.Convert(ctx, listing.Price, def.CurrencyCode); err == nil {
			view.PriceInCrypto = converted
		} else {
			log.Warn("Skipping price conversion for listing", "listing_id", listing.ID, "error", err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) List(ctx context.Context, sellerID, rowID string, price decimal.Decimal) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info("List called", "seller_id", sellerID, "row_id", rowID, "price", price)

	if price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, price)
	}

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, sellerID, rowID)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		ID:         uuid.NewString(),
		CatalogRef: item.CatalogRef,
		Level:      item.Level,
		Price:      price,
		SellerID:   sellerID,
	}

	if err := tx.InsertListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	if err := tx.DeleteOwnedItem(ctx, sellerID, rowID); err != nil {
		return nil, fmt.Errorf("failed to remove owned item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.Trades.WithLabelValues(metrics.TradeMarketList).Inc()
	log.Info("Item listed", "listing_id", listing.ID, "seller_id", sellerID, "price", price)
	return listing, nil
}

func (s *service) Buy(ctx context.Context, buyerID, listingID string) (*BuyResult, error) {
	result, err := s.buy(ctx, buyerID, listingID)
	if err != nil && repository.IsSerializationFailure(err) {
		// One transparent retry on a lost serialization race
		logger.FromContext(ctx).Warn("Retrying marketplace buy after conflict",
			"listing_id", listingID, "error", err)
		result, err = s.buy(ctx, buyerID, listingID)
		if err != nil && repository.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
	}
	return result, err
}

func (s *service) buy(ctx context.Context, buyerID, listingID string) (*BuyResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "buyer_id", buyerID, "listing_id", listingID)

	// Pre-read the listing to resolve the conversion before taking locks;
	// the fiat price is frozen at listing time, so the converted cost
	// computed here stays valid inside the transaction.
	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, fmt.Errorf("%w: cannot buy own listing", domain.ErrInvalidInput)
	}
	def, err := s.catalog.GetCatalogItem(ctx, listing.CatalogRef)
	if err != nil {
		return nil, err
	}
	cost, err := s.pricingSvc.Convert(ctx, listing.Price, def.CurrencyCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock the listing first: of two racing buyers exactly one gets the row,
	// the other finds it deleted and fails before any funds check.
	listing, err = tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}

	// Lock both accounts in id order to avoid lock cycles with a
	// simultaneous trade in the opposite direction.
	buyer, seller, err := lockTradingPair(ctx, tx, buyerID, listing.SellerID)
	if err != nil {
		return nil, err
	}

	count, err := tx.CountOwnedItems(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}
	if !ledger.HasCapacity(buyer, count) {
		return nil, fmt.Errorf("%w: %d of %d slots used", domain.ErrInsufficientSlots, count, buyer.SlotCapacity)
	}

	if err := ledger.ApplyDebit(buyer, cost); err != nil {
		return nil, err
	}
	if err := ledger.ApplyCredit(seller, cost); err != nil {
		return nil, err
	}

	item := inventory.NewOwnedItem(buyerID, listing.CatalogRef, listing.Level)
	if err := tx.InsertOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert owned item: %w", err)
	}
	if err := tx.DeleteListing(ctx, listingID); err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}
	if err := tx.UpdateAccount(ctx, buyer); err != nil {
		return nil, fmt.Errorf("failed to update buyer: %w", err)
	}
	if err := tx.UpdateAccount(ctx, seller); err != nil {
		return nil, fmt.Errorf("failed to update seller: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.Trades.WithLabelValues(metrics.TradeMarketBuy).Inc()
	log.Info("Listing bought", "listing_id", listingID, "buyer_id", buyerID,
		"seller_id", seller.ID, "cost", cost)

	return &BuyResult{Item: item, Cost: cost, NewBalance: buyer.Balance}, nil
}

// lockTradingPair locks the two accounts in deterministic id order and
// returns them as (buyer, seller)
func lockTradingPair(ctx context.Context, tx repository.Tx, buyerID, sellerID string) (*domain.Account, *domain.Account, error) {
	firstID, secondID := buyerID, sellerID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.GetAccountForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.GetAccountForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == buyerID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *service) Sell(ctx context.Context, accountID, rowID string) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Sell called", "account_id", accountID, "row_id", rowID)

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, accountID, rowID)
	if err != nil {
		return nil, err
	}
	def, err := s.catalog.GetCatalogItem(ctx, item.CatalogRef)
	if err != nil {
		return nil, err
	}
	proceeds, err := s.pricingSvc.Convert(ctx, def.BasePrice, def.CurrencyCode)
	if err != nil {
		return nil, err
	}

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ApplyCredit(account, proceeds); err != nil {
		return nil, err
	}

	if err := tx.DeleteOwnedItem(ctx, accountID, rowID); err != nil {
		return nil, fmt.Errorf("failed to delete owned item: %w", err)
	}
	if err := tx.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.Trades.WithLabelValues(metrics.TradeCatalogSell).Inc()
	log.Info("Item sold to catalog", "account_id", accountID, "row_id", rowID, "proceeds", proceeds)
	return &SellResult{Proceeds: proceeds, NewBalance: account.Balance}, nil
}

func (s *service) Withdraw(ctx context.Context, sellerID, listingID string) (*domain.OwnedItem, error) {
	log := logger.FromContext(ctx)
	log.Info("Withdraw called", "seller_id", sellerID, "listing_id", listingID)

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		// Don't reveal other sellers' listing ids
		return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
	}

	// The slot freed at listing time may have been refilled since
	seller, err := tx.GetAccountForUpdate(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	count, err := tx.CountOwnedItems(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}
	if !ledger.HasCapacity(seller, count) {
		return nil, fmt.Errorf("%w: %d of %d slots used", domain.ErrInsufficientSlots, count, seller.SlotCapacity)
	}

	item := inventory.NewOwnedItem(sellerID, listing.CatalogRef, listing.Level)
	if err := tx.InsertOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert owned item: %w", err)
	}
	if err := tx.DeleteListing(ctx, listingID); err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.Trades.WithLabelValues(metrics.TradeWithdraw).Inc()
	log.Info("Listing withdrawn", "listing_id", listingID, "seller_id", sellerID)
	return item, nil
}
