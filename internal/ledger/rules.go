package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Pure balance and leveling rules, applied to an account that the caller has
// already locked for update. Services compose these inside their own
// transactions so that cross-entity operations stay all-or-nothing.

// XPResult describes the outcome of an xp award
type XPResult struct {
	XPAwarded    decimal.Decimal `json:"xp_awarded"`
	LeveledUp    bool            `json:"leveled_up"`
	NewLevel     int             `json:"new_level"`
	NewXP        decimal.Decimal `json:"new_xp"`
	XPToNext     decimal.Decimal `json:"xp_to_next_level"`
	SlotCapacity int             `json:"slot_capacity"`
}

// ApplyCredit adds amount to the account balance
func ApplyCredit(account *domain.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: credit of %s", domain.ErrInvalidAmount, amount)
	}
	account.Balance = account.Balance.Add(amount)
	return nil
}

// ApplyDebit removes amount from the account balance
func ApplyDebit(account *domain.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: debit of %s", domain.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(account.Balance) {
		return fmt.Errorf("%w: need %s, have %s", domain.ErrInsufficientFunds, amount, account.Balance)
	}
	account.Balance = account.Balance.Sub(amount)
	return nil
}

// ApplyXP awards xp to the account. When the threshold is crossed the
// overflow carries into the next level, the threshold grows by the growth
// factor and slot capacity grows by SlotsPerLevel - the capacity increase is
// coupled to the level-up and never triggered independently. Large awards may
// carry across several levels in one call.
func ApplyXP(account *domain.Account, xp decimal.Decimal) XPResult {
	result := XPResult{XPAwarded: xp}

	account.XP = account.XP.Add(xp)
	for account.XP.GreaterThanOrEqual(account.XPToNext) {
		account.XP = account.XP.Sub(account.XPToNext)
		account.Level++
		account.XPToNext = account.XPToNext.Mul(domain.XPGrowthFactor)
		account.SlotCapacity += domain.SlotsPerLevel
		result.LeveledUp = true
	}

	result.NewLevel = account.Level
	result.NewXP = account.XP
	result.XPToNext = account.XPToNext
	result.SlotCapacity = account.SlotCapacity
	return result
}

// HasCapacity reports whether an account with inventorySize owned rows can
// take one more. The comparison is strictly less-than everywhere: the last
// slot is fillable, the one past it is not.
func HasCapacity(account *domain.Account, inventorySize int) bool {
	return inventorySize < account.SlotCapacity
}
