package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered player account.
// Balance is denominated in the volatile currency unit; catalog and listing
// prices are fiat and converted at the point of balance mutation.
type Account struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Balance      decimal.Decimal `json:"balance"`
	SlotCapacity int             `json:"slot_capacity"`
	Level        int             `json:"level"`
	XP           decimal.Decimal `json:"xp"`
	XPToNext     decimal.Decimal `json:"xp_to_next_level"`
	LastDailyAt  *time.Time      `json:"last_daily_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
