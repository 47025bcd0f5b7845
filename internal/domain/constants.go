package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account seed values applied at registration
var (
	StartingBalance  = decimal.NewFromInt(100)
	StartingXPToNext = decimal.NewFromInt(100)
)

const (
	StartingSlotCapacity = 10
	StartingLevel        = 1

	// SlotsPerLevel is added to slot capacity on every level-up
	SlotsPerLevel = 5
)

// XPGrowthFactor multiplies xp_to_next_level on each level-up
var XPGrowthFactor = decimal.RequireFromString("1.5")

// DailyBonusAmount is credited by the once-per-day bonus claim
var DailyBonusAmount = decimal.NewFromInt(100)

const (
	// ClaimCooldown is the minimum time between farm claims on a row
	ClaimCooldown = 30 * time.Minute

	// DailyBonusCooldown gates the daily bonus claim
	DailyBonusCooldown = 24 * time.Hour
)
