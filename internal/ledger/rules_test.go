package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/farmvale/cryptofarm/internal/domain"
)

func newAccount(balance int64) *domain.Account {
	return &domain.Account{
		ID:           "acct-1",
		Username:     "miner",
		Balance:      decimal.NewFromInt(balance),
		SlotCapacity: domain.StartingSlotCapacity,
		Level:        domain.StartingLevel,
		XP:           decimal.Zero,
		XPToNext:     domain.StartingXPToNext,
	}
}

func TestApplyCredit_AddsAmount(t *testing.T) {
	account := newAccount(100)

	err := ApplyCredit(account, decimal.NewFromInt(25))

	assert.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(125)))
}

func TestApplyCredit_RejectsNonPositive(t *testing.T) {
	account := newAccount(100)

	err := ApplyCredit(account, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = ApplyCredit(account, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))
}

func TestApplyDebit_SpendsDownToZero(t *testing.T) {
	account := newAccount(50)

	err := ApplyDebit(account, decimal.NewFromInt(50))

	assert.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestApplyDebit_InsufficientFunds(t *testing.T) {
	account := newAccount(50)

	err := ApplyDebit(account, decimal.RequireFromString("50.0001"))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50)))
}

func TestApplyDebit_RejectsNonPositive(t *testing.T) {
	account := newAccount(50)

	err := ApplyDebit(account, decimal.Zero)

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyXP_NoLevelUpBelowThreshold(t *testing.T) {
	account := newAccount(0)

	result := ApplyXP(account, decimal.NewFromInt(99))

	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, account.Level)
	assert.True(t, account.XP.Equal(decimal.NewFromInt(99)))
	assert.True(t, account.XPToNext.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.StartingSlotCapacity, account.SlotCapacity)
}

func TestApplyXP_LevelUpCarriesOverflow(t *testing.T) {
	account := newAccount(0)

	result := ApplyXP(account, decimal.NewFromInt(130))

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, account.Level)
	assert.True(t, account.XP.Equal(decimal.NewFromInt(30)))
	// Threshold grows by 1.5x
	assert.True(t, account.XPToNext.Equal(decimal.NewFromInt(150)))
	// Capacity growth is coupled to the level-up
	assert.Equal(t, domain.StartingSlotCapacity+domain.SlotsPerLevel, account.SlotCapacity)
}

func TestApplyXP_ExactThresholdLevelsUp(t *testing.T) {
	account := newAccount(0)

	result := ApplyXP(account, decimal.NewFromInt(100))

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, account.Level)
	assert.True(t, account.XP.IsZero())
}

func TestApplyXP_LargeAwardCarriesMultipleLevels(t *testing.T) {
	account := newAccount(0)

	// 100 + 150 = 250 consumed by two level-ups, 50 remains toward 225
	result := ApplyXP(account, decimal.NewFromInt(300))

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 3, account.Level)
	assert.True(t, account.XP.Equal(decimal.NewFromInt(50)))
	assert.True(t, account.XPToNext.Equal(decimal.NewFromInt(225)))
	assert.Equal(t, domain.StartingSlotCapacity+2*domain.SlotsPerLevel, account.SlotCapacity)
}

func TestApplyXP_ThresholdCurve(t *testing.T) {
	account := newAccount(0)
	expected := []int64{150, 225}

	for _, want := range expected {
		ApplyXP(account, account.XPToNext.Sub(account.XP))
		assert.True(t, account.XPToNext.Equal(decimal.NewFromInt(want)),
			"expected threshold %d, got %s", want, account.XPToNext)
	}
}

func TestHasCapacity_StrictBoundary(t *testing.T) {
	account := newAccount(0)
	account.SlotCapacity = 10

	assert.True(t, HasCapacity(account, 9))
	assert.False(t, HasCapacity(account, 10))
	assert.False(t, HasCapacity(account, 11))
}
