package ledger

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

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func newServiceWithMocks(repo *mocks.MockAccountRepo) *service {
	return &service{repo: repo, now: fixedNow}
}

func TestRegister_SeedsDefaults(t *testing.T) {
	repo := new(mocks.MockAccountRepo)
	repo.On("GetAccountByUsername", mock.Anything, "miner").
		Return(nil, domain.ErrAccountNotFound)
	repo.On("CreateAccount", mock.Anything, mock.AnythingOfType("*domain.Account"), mock.AnythingOfType("string")).
		Return(nil)

	svc := newServiceWithMocks(repo)
	result, err := svc.Register(context.Background(), "miner")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	account := result.Account
	assert.Equal(t, "miner", account.Username)
	assert.True(t, account.Balance.Equal(domain.StartingBalance))
	assert.Equal(t, domain.StartingSlotCapacity, account.SlotCapacity)
	assert.Equal(t, domain.StartingLevel, account.Level)
	assert.True(t, account.XP.IsZero())
	assert.True(t, account.XPToNext.Equal(domain.StartingXPToNext))
	assert.Nil(t, account.LastDailyAt)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(mocks.MockAccountRepo)
	repo.On("GetAccountByUsername", mock.Anything, "miner").
		Return(&domain.Account{ID: "existing", Username: "miner"}, nil)

	svc := newServiceWithMocks(repo)
	result, err := svc.Register(context.Background(), "miner")

	assert.ErrorIs(t, err, domain.ErrAccountExists)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func setupMutateMocks(account *domain.Account) (*mocks.MockAccountRepo, *mocks.MockTx) {
	repo := new(mocks.MockAccountRepo)
	tx := new(mocks.MockTx)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetAccountForUpdate", mock.Anything, account.ID).Return(account, nil)
	tx.On("UpdateAccount", mock.Anything, account).Return(nil).Maybe()
	tx.On("Commit", mock.Anything).Return(nil).Maybe()
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return repo, tx
}

func TestCredit_IncreasesBalance(t *testing.T) {
	account := newAccount(100)
	repo, tx := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	err := svc.Credit(context.Background(), account.ID, decimal.NewFromInt(40))

	assert.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(140)))
	tx.AssertCalled(t, "Commit", mock.Anything)
}

func TestDebit_InsufficientFundsRollsBack(t *testing.T) {
	account := newAccount(10)
	repo, tx := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	err := svc.Debit(context.Background(), account.ID, decimal.NewFromInt(50))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything)
}

func TestAwardXP_ReportsLevelUp(t *testing.T) {
	account := newAccount(0)
	repo, _ := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	result, err := svc.AwardXP(context.Background(), account.ID, decimal.NewFromInt(150))

	assert.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, domain.StartingSlotCapacity+domain.SlotsPerLevel, result.SlotCapacity)
}

func TestDailyBonus_FirstClaimCredits(t *testing.T) {
	account := newAccount(100)
	repo, tx := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	result, err := svc.DailyBonus(context.Background(), account.ID)

	assert.NoError(t, err)
	assert.True(t, result.Credited.Equal(domain.DailyBonusAmount))
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, fixedNow().Add(domain.DailyBonusCooldown), result.NextAt)
	assert.NotNil(t, account.LastDailyAt)
	tx.AssertCalled(t, "Commit", mock.Anything)
}

func TestDailyBonus_TooSoon(t *testing.T) {
	account := newAccount(100)
	last := fixedNow().Add(-23 * time.Hour)
	account.LastDailyAt = &last
	repo, tx := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	result, err := svc.DailyBonus(context.Background(), account.ID)

	assert.ErrorIs(t, err, domain.ErrClaimTooSoon)
	assert.Nil(t, result)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDailyBonus_AllowedAfterCooldown(t *testing.T) {
	account := newAccount(100)
	last := fixedNow().Add(-domain.DailyBonusCooldown)
	account.LastDailyAt = &last
	repo, _ := setupMutateMocks(account)

	svc := newServiceWithMocks(repo)
	result, err := svc.DailyBonus(context.Background(), account.ID)

	assert.NoError(t, err)
	assert.True(t, result.Credited.Equal(domain.DailyBonusAmount))
	assert.Equal(t, fixedNow(), *account.LastDailyAt)
}
