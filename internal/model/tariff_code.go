package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TariffCode is one row of the harmonized tariff schedule. Reference data:
// loaded per batch, selected by the classifier, never mutated by the engine.
type TariffCode struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code            string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	BaseDutyRate    decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"base_duty_rate"` // e.g. 0.0650 = 6.5%
	ExtraTariffFlag bool            `gorm:"not null;default:false" json:"extra_tariff_flag"`
	ExtraTariffRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"extra_tariff_rate"`
	ChapterCode     string          `gorm:"type:varchar(2);not null;index" json:"chapter_code"` // first 2 digits of the code
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DutyRate returns the effective duty rate for an origin country, adding the
// punitive extra tariff when the code is flagged and the origin is listed.
func (t TariffCode) DutyRate(originCountry string, extraTariffOrigins []string) decimal.Decimal {
	if t.ExtraTariffFlag {
		for _, origin := range extraTariffOrigins {
			if origin == originCountry {
				return t.BaseDutyRate.Add(t.ExtraTariffRate)
			}
		}
	}
	return t.BaseDutyRate
}
