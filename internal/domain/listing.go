package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a marketplace offer. The fiat asking price is frozen at listing
// time; conversion to currency units happens at the moment of debit/credit,
// so the converted amount may drift between listing and purchase.
type Listing struct {
	ID         string          `json:"id"`
	CatalogRef string          `json:"catalog_ref"`
	Level      int             `json:"level"`
	Price      decimal.Decimal `json:"price"`
	SellerID   string          `json:"seller_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListingView is a listing enriched with catalog data and the live
// crypto-converted price for marketplace browsing.
type ListingView struct {
	Listing
	Name              string          `json:"name"`
	GeneratePerSecond decimal.Decimal `json:"generate_per_seconds"`
	CurrencyCode      string          `json:"currency_code"`
	PriceInCrypto     decimal.Decimal `json:"price_in_crypto"`
}
