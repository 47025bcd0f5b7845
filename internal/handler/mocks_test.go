package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/farm"
	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/market"
	"github.com/farmvale/cryptofarm/internal/shop"
)

// Service mocks live with the handler tests: the service packages' own tests
// use white-box mocks of the repository layer, so a shared package holding
// these would import the services back into their tests.

var (
	_ ledger.Service    = (*MockLedgerService)(nil)
	_ farm.Service      = (*MockFarmService)(nil)
	_ inventory.Service = (*MockInventoryService)(nil)
	_ market.Service    = (*MockMarketService)(nil)
	_ shop.Service      = (*MockShopService)(nil)
)

// MockLedgerService mocks ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Register(ctx context.Context, username string) (*ledger.RegisterResult, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RegisterResult), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockLedgerService) Debit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockLedgerService) AwardXP(ctx context.Context, accountID string, xp decimal.Decimal) (*ledger.XPResult, error) {
	args := m.Called(ctx, accountID, xp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.XPResult), args.Error(1)
}

func (m *MockLedgerService) DailyBonus(ctx context.Context, accountID string) (*ledger.DailyResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.DailyResult), args.Error(1)
}

// MockFarmService mocks farm.Service
type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) Claim(ctx context.Context, accountID, rowID string) (*farm.ClaimResult, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.ClaimResult), args.Error(1)
}

func (m *MockFarmService) LevelUp(ctx context.Context, accountID, rowID string) (*farm.LevelUpResult, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.LevelUpResult), args.Error(1)
}

// MockInventoryService mocks inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context, accountID string) ([]domain.InventoryView, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryView), args.Error(1)
}

func (m *MockInventoryService) Find(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockInventoryService) Add(ctx context.Context, accountID, catalogRef string, level int) (*domain.OwnedItem, error) {
	args := m.Called(ctx, accountID, catalogRef, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockInventoryService) Remove(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

// MockMarketService mocks market.Service
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) Browse(ctx context.Context) ([]domain.ListingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingView), args.Error(1)
}

func (m *MockMarketService) List(ctx context.Context, sellerID, rowID string, price decimal.Decimal) (*domain.Listing, error) {
	args := m.Called(ctx, sellerID, rowID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketService) Buy(ctx context.Context, buyerID, listingID string) (*market.BuyResult, error) {
	args := m.Called(ctx, buyerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.BuyResult), args.Error(1)
}

func (m *MockMarketService) Sell(ctx context.Context, accountID, rowID string) (*market.SellResult, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.SellResult), args.Error(1)
}

func (m *MockMarketService) Withdraw(ctx context.Context, sellerID, listingID string) (*domain.OwnedItem, error) {
	args := m.Called(ctx, sellerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

// MockShopService mocks shop.Service
type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) Browse(ctx context.Context) ([]shop.CatalogView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.CatalogView), args.Error(1)
}

func (m *MockShopService) Buy(ctx context.Context, accountID, catalogRef string) (*shop.BuyResult, error) {
	args := m.Called(ctx, accountID, catalogRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.BuyResult), args.Error(1)
}
