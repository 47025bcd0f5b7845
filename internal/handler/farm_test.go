package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/farm"
)

const testRowID = "9f2c7f3a-0f1e-4a8b-9c6d-5e4f3a2b1c0d"

func TestClaim_Success(t *testing.T) {
	farmSvc := new(MockFarmService)
	farmSvc.On("Claim", mock.Anything, "acct-1", testRowID).Return(&farm.ClaimResult{
		Earned:       decimal.RequireFromString("8.64"),
		NewBalance:   decimal.RequireFromString("108.64"),
		HoursElapsed: decimal.NewFromInt(2),
		NextClaimAt:  time.Now().Add(30 * time.Minute),
	}, nil)

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/claim",
		ClaimRequest{RowID: testRowID}, sessionAccount())
	rr := httptest.NewRecorder()

	h.Claim(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "8.64")
}

func TestClaim_TooSoonCarriesRetryTime(t *testing.T) {
	farmSvc := new(MockFarmService)
	farmSvc.On("Claim", mock.Anything, "acct-1", testRowID).
		Return(nil, fmt.Errorf("%w: next claim at 2026-08-30T12:30:00Z", domain.ErrClaimTooSoon))

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/claim",
		ClaimRequest{RowID: testRowID}, sessionAccount())
	rr := httptest.NewRecorder()

	h.Claim(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "12:30:00Z")
}

func TestClaim_InvalidRowID(t *testing.T) {
	farmSvc := new(MockFarmService)

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/claim",
		ClaimRequest{RowID: "not-a-uuid"}, sessionAccount())
	rr := httptest.NewRecorder()

	h.Claim(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	farmSvc.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaim_Unauthenticated(t *testing.T) {
	h := NewFarmHandler(new(MockFarmService))
	req := newJSONRequest(t, http.MethodPost, "/api/v1/farm/claim",
		ClaimRequest{RowID: testRowID})
	rr := httptest.NewRecorder()

	h.Claim(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLevelUp_Success(t *testing.T) {
	farmSvc := new(MockFarmService)
	farmSvc.On("LevelUp", mock.Anything, "acct-1", testRowID).Return(&farm.LevelUpResult{
		RowID:      testRowID,
		NewLevel:   2,
		Cost:       decimal.NewFromInt(60),
		NewBalance: decimal.NewFromInt(40),
	}, nil)

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/level-up",
		LevelUpRequest{RowID: testRowID}, sessionAccount())
	rr := httptest.NewRecorder()

	h.LevelUp(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"new_level":2`)
}

func TestLevelUp_InsufficientFunds(t *testing.T) {
	farmSvc := new(MockFarmService)
	farmSvc.On("LevelUp", mock.Anything, "acct-1", testRowID).
		Return(nil, domain.ErrInsufficientFunds)

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/level-up",
		LevelUpRequest{RowID: testRowID}, sessionAccount())
	rr := httptest.NewRecorder()

	h.LevelUp(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrMsgNotEnoughFundsErr)
}

func TestLevelUp_OracleDown(t *testing.T) {
	farmSvc := new(MockFarmService)
	farmSvc.On("LevelUp", mock.Anything, "acct-1", testRowID).
		Return(nil, domain.ErrOracleUnavailable)

	h := NewFarmHandler(farmSvc)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/farm/level-up",
		LevelUpRequest{RowID: testRowID}, sessionAccount())
	rr := httptest.NewRecorder()

	h.LevelUp(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrMsgPricesUnavailable)
}
