package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/mocks"
)

func testCatalogItem() *domain.CatalogItem {
	return &domain.CatalogItem{
		Ref:               "usb-miner",
		Name:              "USB Miner",
		BasePrice:         decimal.NewFromInt(100),
		GeneratePerSecond: decimal.RequireFromString("0.0001"),
		CurrencyCode:      "BTC",
		XPAward:           decimal.NewFromInt(50),
	}
}

func TestNewOwnedItem_ResetsClaimClock(t *testing.T) {
	before := time.Now()
	item := NewOwnedItem("acct-1", "usb-miner", 3)
	after := time.Now()

	assert.NotEmpty(t, item.RowID)
	assert.Equal(t, "acct-1", item.AccountID)
	assert.Equal(t, "usb-miner", item.CatalogRef)
	assert.Equal(t, 3, item.Level)
	assert.False(t, item.LastClaimAt.Before(before))
	assert.False(t, item.LastClaimAt.After(after))
}

func TestNewOwnedItem_DistinctRowIDs(t *testing.T) {
	a := NewOwnedItem("acct-1", "usb-miner", 1)
	b := NewOwnedItem("acct-1", "usb-miner", 1)

	assert.NotEqual(t, a.RowID, b.RowID)
}

func TestList_JoinsCatalogData(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	repo.On("ListOwnedItems", mock.Anything, "acct-1").Return([]domain.OwnedItem{
		{RowID: "row-1", AccountID: "acct-1", CatalogRef: "usb-miner", Level: 2},
	}, nil)

	catalog := new(mocks.MockCatalogRepo)
	catalog.On("GetCatalogItem", mock.Anything, "usb-miner").Return(testCatalogItem(), nil)

	svc := NewService(repo, catalog)
	views, err := svc.List(context.Background(), "acct-1")

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "USB Miner", views[0].Name)
	assert.Equal(t, 2, views[0].Level)
	assert.True(t, views[0].BasePrice.Equal(decimal.NewFromInt(100)))
}

func TestList_SkipsOrphanRows(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	repo.On("ListOwnedItems", mock.Anything, "acct-1").Return([]domain.OwnedItem{
		{RowID: "row-1", AccountID: "acct-1", CatalogRef: "usb-miner", Level: 1},
		{RowID: "row-2", AccountID: "acct-1", CatalogRef: "gone", Level: 1},
	}, nil)

	catalog := new(mocks.MockCatalogRepo)
	catalog.On("GetCatalogItem", mock.Anything, "usb-miner").Return(testCatalogItem(), nil)
	catalog.On("GetCatalogItem", mock.Anything, "gone").Return(nil, domain.ErrItemNotFound)

	svc := NewService(repo, catalog)
	views, err := svc.List(context.Background(), "acct-1")

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "row-1", views[0].RowID)
}

func TestAdd_RejectsInvalidLevel(t *testing.T) {
	svc := NewService(new(mocks.MockInventoryRepo), new(mocks.MockCatalogRepo))

	_, err := svc.Add(context.Background(), "acct-1", "usb-miner", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_RejectsUnknownCatalogRef(t *testing.T) {
	catalog := new(mocks.MockCatalogRepo)
	catalog.On("GetCatalogItem", mock.Anything, "bogus").Return(nil, domain.ErrItemNotFound)

	svc := NewService(new(mocks.MockInventoryRepo), catalog)
	_, err := svc.Add(context.Background(), "acct-1", "bogus", 1)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemove_ReturnsDeletedRow(t *testing.T) {
	item := &domain.OwnedItem{RowID: "row-1", AccountID: "acct-1", CatalogRef: "usb-miner", Level: 5}

	tx := new(mocks.MockTx)
	tx.On("GetOwnedItemForUpdate", mock.Anything, "acct-1", "row-1").Return(item, nil)
	tx.On("DeleteOwnedItem", mock.Anything, "acct-1", "row-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	repo := new(mocks.MockInventoryRepo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	svc := NewService(repo, new(mocks.MockCatalogRepo))
	removed, err := svc.Remove(context.Background(), "acct-1", "row-1")

	assert.NoError(t, err)
	assert.Equal(t, item, removed)
	tx.AssertExpectations(t)
}
