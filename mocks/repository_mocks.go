// Package mocks provides hand-written testify mocks shared across unit tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// MockTx mocks repository.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) UpdateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockTx) GetOwnedItemForUpdate(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockTx) UpdateOwnedItem(ctx context.Context, item *domain.OwnedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) DeleteOwnedItem(ctx context.Context, accountID, rowID string) error {
	args := m.Called(ctx, accountID, rowID)
	return args.Error(0)
}

func (m *MockTx) CountOwnedItems(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) GetListingForUpdate(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockTx) InsertListing(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockTx) DeleteListing(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAccountRepo mocks repository.Account
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) GetAccountByToken(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) CreateAccount(ctx context.Context, account *domain.Account, token string) error {
	args := m.Called(ctx, account, token)
	return args.Error(0)
}

func (m *MockAccountRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockInventoryRepo mocks repository.Inventory
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) ListOwnedItems(ctx context.Context, accountID string) ([]domain.OwnedItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedItem), args.Error(1)
}

func (m *MockInventoryRepo) GetOwnedItem(ctx context.Context, accountID, rowID string) (*domain.OwnedItem, error) {
	args := m.Called(ctx, accountID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockInventoryRepo) CountOwnedItems(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockCatalogRepo mocks repository.Catalog
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetCatalogItem(ctx context.Context, ref string) (*domain.CatalogItem, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepo) ListCatalogItems(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

// MockListingRepo mocks repository.Listing
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) ListListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}
