package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeCategoryDefault is the catch-all fee row used when a listing category has
// no dedicated fee configuration.
const FeeCategoryDefault = "default"

// MarketplaceFee is the commission structure of the destination sales channel
// for one listing category: a percentage of the sale price (optionally capped)
// plus a fixed insertion fee per listing.
type MarketplaceFee struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category          string           `gorm:"type:varchar(100);not null;uniqueIndex" json:"category"`
	FeeRate           decimal.Decimal  `gorm:"type:decimal(10,4);not null" json:"fee_rate"` // e.g. 0.1325 = 13.25%
	FeeCap            *decimal.Decimal `gorm:"type:decimal(12,2)" json:"fee_cap"`           // nil = uncapped
	FixedInsertionFee decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"fixed_insertion_fee"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// PercentageFee returns the percentage commission on price, honoring the cap.
func (f MarketplaceFee) PercentageFee(price decimal.Decimal) decimal.Decimal {
	fee := price.Mul(f.FeeRate)
	if f.FeeCap != nil && fee.GreaterThan(*f.FeeCap) {
		return *f.FeeCap
	}
	return fee
}
