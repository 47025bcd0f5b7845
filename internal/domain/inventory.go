package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnedItem is a single inventory row. RowID is unique per row and distinct
// from the catalog item it references; each row belongs to exactly one account.
type OwnedItem struct {
	RowID       string    `json:"row_id"`
	AccountID   string    `json:"account_id"`
	CatalogRef  string    `json:"catalog_ref"`
	Level       int       `json:"level"`
	LastClaimAt time.Time `json:"last_claim_at"`
}

// LevelBonus returns the accrual multiplier for the item's level:
// 1 + 0.1 * (level - 1).
func (o OwnedItem) LevelBonus() decimal.Decimal {
	step := decimal.New(1, -1) // 0.1
	return decimal.NewFromInt(1).Add(step.Mul(decimal.NewFromInt(int64(o.Level - 1))))
}

// InventoryView is an owned item joined with its catalog definition,
// returned by the inventory listing endpoint.
type InventoryView struct {
	OwnedItem
	Name              string          `json:"name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	GeneratePerSecond decimal.Decimal `json:"generate_per_seconds"`
	CurrencyCode      string          `json:"currency_code"`
}
