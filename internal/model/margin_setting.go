package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarginSetting holds the profit targets for one marketplace tier.
type MarginSetting struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Tier              string          `gorm:"type:varchar(50);not null;index" json:"tier"` // e.g. "standard", "premium"
	DefaultMargin     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"default_margin"`
	MinMargin         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"min_margin"`
	MaxMargin         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"max_margin"`
	MinAbsoluteProfit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"min_absolute_profit"`
	Active            bool            `gorm:"not null;default:true;index" json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Validate enforces minMargin <= defaultMargin <= maxMargin.
func (m MarginSetting) Validate() error {
	if m.MinMargin.GreaterThan(m.DefaultMargin) || m.DefaultMargin.GreaterThan(m.MaxMargin) {
		return fmt.Errorf("margin setting %q: require min <= default <= max, got %s / %s / %s",
			m.Tier, m.MinMargin, m.DefaultMargin, m.MaxMargin)
	}
	return nil
}
