package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is one recorded spot rate between the sourcing currency and the
// destination currency, with a volatility buffer. The engine never converts at
// spot: all cost conversion uses Safe().
type ExchangeRate struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BaseCurrency  string          `gorm:"type:varchar(3);not null" json:"base_currency"`  // e.g. USD
	QuoteCurrency string          `gorm:"type:varchar(3);not null" json:"quote_currency"` // e.g. JPY
	Spot          decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"spot"`
	BufferPercent decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"buffer_percent"` // e.g. 0.05 = 5%
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

// Safe returns the buffered rate, spot * (1 + bufferPercent). Buying the
// destination currency at a worse-than-spot rate absorbs short-term FX moves.
func (r ExchangeRate) Safe() decimal.Decimal {
	return r.Spot.Mul(decimal.NewFromInt(1).Add(r.BufferPercent))
}
