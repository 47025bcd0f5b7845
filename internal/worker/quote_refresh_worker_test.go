package worker

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/mocks"
)

func TestQuoteRefreshJob_DeduplicatesCurrencies(t *testing.T) {
	catalog := new(mocks.MockCatalogRepo)
	catalog.On("ListCatalogItems", mock.Anything).Return([]domain.CatalogItem{
		{Ref: "usb-miner", CurrencyCode: "BTC", BasePrice: decimal.NewFromInt(100)},
		{Ref: "gpu-rig", CurrencyCode: "ETH", BasePrice: decimal.NewFromInt(500)},
		{Ref: "asic-farm", CurrencyCode: "BTC", BasePrice: decimal.NewFromInt(2000)},
	}, nil)

	pricingSvc := new(mocks.MockPricingService)
	pricingSvc.On("Refresh", mock.Anything, []string{"BTC", "ETH"}).Return()

	job := NewQuoteRefreshJob(pricingSvc, catalog)
	err := job.Process(context.Background())

	assert.NoError(t, err)
	pricingSvc.AssertExpectations(t)
}

func TestQuoteRefreshJob_CatalogFailure(t *testing.T) {
	catalog := new(mocks.MockCatalogRepo)
	catalog.On("ListCatalogItems", mock.Anything).Return(nil, assert.AnError)

	pricingSvc := new(mocks.MockPricingService)

	job := NewQuoteRefreshJob(pricingSvc, catalog)
	err := job.Process(context.Background())

	assert.Error(t, err)
	pricingSvc.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}
