package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// RegisterResult is returned on successful account creation
type RegisterResult struct {
	Account *domain.Account `json:"account"`
	Token   string          `json:"token"`
}

// DailyResult is returned on a successful daily bonus claim
type DailyResult struct {
	Credited   decimal.Decimal `json:"credited"`
	NewBalance decimal.Decimal `json:"new_balance"`
	NextAt     time.Time       `json:"next_at"`
}

// Service owns account balances, leveling and slot capacity
type Service interface {
	Register(ctx context.Context, username string) (*RegisterResult, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	Credit(ctx context.Context, accountID string, amount decimal.Decimal) error
	Debit(ctx context.Context, accountID string, amount decimal.Decimal) error
	AwardXP(ctx context.Context, accountID string, xp decimal.Decimal) (*XPResult, error)
	DailyBonus(ctx context.Context, accountID string) (*DailyResult, error)
}

type service struct {
	repo repository.Account
	now  func() time.Time
}

// NewService creates a new ledger service
func NewService(repo repository.Account) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Register(ctx context.Context, username string) (*RegisterResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Register called", "username", username)

	existing, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountExists, username)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Balance:      domain.StartingBalance,
		SlotCapacity: domain.StartingSlotCapacity,
		Level:        domain.StartingLevel,
		XP:           decimal.Zero,
		XPToNext:     domain.StartingXPToNext,
		CreatedAt:    s.now(),
	}
	token := uuid.NewString()

	if err := s.repo.CreateAccount(ctx, account, token); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	log.Info("Account registered", "account_id", account.ID, "username", username)
	return &RegisterResult{Account: account, Token: token}, nil
}

func (s *service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, accountID)
}

func (s *service) Credit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	return s.mutate(ctx, accountID, func(account *domain.Account) error {
		return ApplyCredit(account, amount)
	})
}

func (s *service) Debit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	return s.mutate(ctx, accountID, func(account *domain.Account) error {
		return ApplyDebit(account, amount)
	})
}

func (s *service) AwardXP(ctx context.Context, accountID string, xp decimal.Decimal) (*XPResult, error) {
	var result XPResult
	err := s.mutate(ctx, accountID, func(account *domain.Account) error {
		result = ApplyXP(account, xp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.LeveledUp {
		logger.FromContext(ctx).Info("Account leveled up",
			"account_id", accountID, "level", result.NewLevel, "slot_capacity", result.SlotCapacity)
	}
	return &result, nil
}

func (s *service) DailyBonus(ctx context.Context, accountID string) (*DailyResult, error) {
	now := s.now()
	var result DailyResult
	err := s.mutate(ctx, accountID, func(account *domain.Account) error {
		if account.LastDailyAt != nil {
			elapsed := now.Sub(*account.LastDailyAt)
			if elapsed < domain.DailyBonusCooldown {
				next := account.LastDailyAt.Add(domain.DailyBonusCooldown)
				return fmt.Errorf("%w: next daily bonus at %s", domain.ErrClaimTooSoon, next.Format(time.RFC3339))
			}
		}
		if err := ApplyCredit(account, domain.DailyBonusAmount); err != nil {
			return err
		}
		account.LastDailyAt = &now
		result = DailyResult{
			Credited:   domain.DailyBonusAmount,
			NewBalance: account.Balance,
			NextAt:     now.Add(domain.DailyBonusCooldown),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// mutate runs fn against the locked account row inside a transaction
func (s *service) mutate(ctx context.Context, accountID string, fn func(*domain.Account) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return err
	}

	if err := fn(account); err != nil {
		return err
	}

	if err := tx.UpdateAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return tx.Commit(ctx)
}
