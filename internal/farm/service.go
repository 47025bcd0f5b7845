package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/metrics"
	"github.com/farmvale/cryptofarm/internal/pricing"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// ClaimResult is returned on a successful farm claim
type ClaimResult struct {
	Earned       decimal.Decimal `json:"earned"`
	NewBalance   decimal.Decimal `json:"new_balance"`
	HoursElapsed decimal.Decimal `json:"hours_elapsed"`
	NextClaimAt  time.Time       `json:"next_claim_at"`
}

// LevelUpResult is returned on a successful item level-up
type LevelUpResult struct {
	RowID      string          `json:"row_id"`
	NewLevel   int             `json:"new_level"`
	Cost       decimal.Decimal `json:"cost"`
	NewBalance decimal.Decimal `json:"new_balance"`
	XP         ledger.XPResult `json:"xp"`
}

// Service converts elapsed time into earned currency and applies the
// item leveling cost curve
type Service interface {
	// Claim collects accrued currency for an owned item
	Claim(ctx context.Context, accountID, rowID string) (*ClaimResult, error)

	// LevelUp pays the level-up cost and increments the item's level
	LevelUp(ctx context.Context, accountID, rowID string) (*LevelUpResult, error)
}

type service struct {
	repo       repository.Inventory
	catalog    repository.Catalog
	pricingSvc pricing.Service
	now        func() time.Time
}

// NewService creates a new farm service
func NewService(repo repository.Inventory, catalog repository.Catalog, pricingSvc pricing.Service) Service {
	return &service{
		repo:       repo,
		catalog:    catalog,
		pricingSvc: pricingSvc,
		now:        time.Now,
	}
}

// Claim collects accrued currency for an owned item. The owned row is locked
// for the whole read-check-write sequence, so a retried claim either waits and
// then sees the reset claim clock (rejected as too soon) or loses the row
// race entirely - it can never double-credit.
func (s *service) Claim(ctx context.Context, accountID, rowID string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Claim called", "account_id", accountID, "row_id", rowID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, accountID, rowID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	elapsed := now.Sub(item.LastClaimAt)
	if elapsed < domain.ClaimCooldown {
		metrics.FarmClaims.WithLabelValues(metrics.OutcomeTooSoon).Inc()
		next := item.LastClaimAt.Add(domain.ClaimCooldown)
		return nil, fmt.Errorf("%w: next claim at %s", domain.ErrClaimTooSoon, next.Format(time.RFC3339))
	}

	def, err := s.catalog.GetCatalogItem(ctx, item.CatalogRef)
	if err != nil {
		return nil, err
	}

	hours := decimal.NewFromFloat(elapsed.Hours())
	earned := hours.Mul(def.RatePerHour()).Mul(item.LevelBonus())

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ApplyCredit(account, earned); err != nil {
		return nil, err
	}

	item.LastClaimAt = now
	if err := tx.UpdateOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update owned item: %w", err)
	}
	if err := tx.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.FarmClaims.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("Farm claimed", "account_id", accountID, "row_id", rowID,
		"earned", earned, "hours", hours)

	return &ClaimResult{
		Earned:       earned,
		NewBalance:   account.Balance,
		HoursElapsed: hours,
		NextClaimAt:  now.Add(domain.ClaimCooldown),
	}, nil
}

// levelUpMultiplier is the cost curve factor (level+1)/10 + 1; the full cost
// is basePrice / rate * multiplier, converted at the moment of the debit and
// never persisted.
func levelUpMultiplier(level int) decimal.Decimal {
	return decimal.NewFromInt(int64(level + 1)).
		Div(decimal.NewFromInt(10)).
		Add(decimal.NewFromInt(1))
}

func (s *service) LevelUp(ctx context.Context, accountID, rowID string) (*LevelUpResult, error) {
	log := logger.FromContext(ctx)
	log.Info("LevelUp called", "account_id", accountID, "row_id", rowID)

	// Resolve the conversion before taking any row locks; the oracle call
	// must not stall the transaction.
	item, err := s.repo.GetOwnedItem(ctx, accountID, rowID)
	if err != nil {
		return nil, err
	}
	def, err := s.catalog.GetCatalogItem(ctx, item.CatalogRef)
	if err != nil {
		return nil, err
	}
	convertedBase, err := s.pricingSvc.Convert(ctx, def.BasePrice, def.CurrencyCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Re-read under lock; the level may have moved since the pre-read
	item, err = tx.GetOwnedItemForUpdate(ctx, accountID, rowID)
	if err != nil {
		return nil, err
	}
	cost := convertedBase.Mul(levelUpMultiplier(item.Level))

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ApplyDebit(account, cost); err != nil {
		return nil, err
	}

	item.Level++
	xpResult := ledger.ApplyXP(account, def.XPAward.Div(decimal.NewFromInt(2)))

	if err := tx.UpdateOwnedItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update owned item: %w", err)
	}
	if err := tx.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.LevelUps.Inc()
	log.Info("Item leveled up", "account_id", accountID, "row_id", rowID,
		"level", item.Level, "cost", cost)

	return &LevelUpResult{
		RowID:      item.RowID,
		NewLevel:   item.Level,
		Cost:       cost,
		NewBalance: account.Balance,
		XP:         xpResult,
	}, nil
}
