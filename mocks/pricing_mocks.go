package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOracle mocks pricing.Oracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Quote(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPricingService mocks pricing.Service
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPricingService) Convert(ctx context.Context, fiatPrice decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fiatPrice, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPricingService) Refresh(ctx context.Context, currencyCodes []string) {
	m.Called(ctx, currencyCodes)
}
