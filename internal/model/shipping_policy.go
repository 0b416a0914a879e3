package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingBasis enum constants
const (
	BasisDutyPaid   = "DUTY_PAID"   // seller collects import duty at checkout (DDP)
	BasisDutyUnpaid = "DUTY_UNPAID" // buyer pays duty on arrival
)

// PriceBand enum constants, only meaningful for duty-paid policies.
const (
	BandLow  = "LOW"  // estimated price <= 250
	BandHigh = "HIGH" // estimated price > 250
)

// ShippingPolicy is one row of the shipping rate catalog, keyed by pricing
// basis, weight range and (duty-paid only) price band. Catalog order is part of
// the selection contract: the selector scans rows by ascending SortOrder and
// returns the first match, so SortOrder must stay stable across snapshots.
type ShippingPolicy struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	PricingBasis string          `gorm:"type:varchar(20);not null;index" json:"pricing_basis"` // DUTY_PAID, DUTY_UNPAID
	PriceBand    *string         `gorm:"type:varchar(10)" json:"price_band"`                   // LOW, HIGH; nil for duty-unpaid
	WeightMinKg  decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"weight_min_kg"`
	WeightMaxKg  decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"weight_max_kg"`
	SortOrder    int             `gorm:"not null;index" json:"sort_order"`
	Active       bool            `gorm:"not null;default:true;index" json:"active"`
	Zones        []ZoneRate      `gorm:"foreignKey:PolicyID" json:"zones"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ZoneRate carries the per-destination-zone costs of a policy.
// DisplayShippingCost is the buyer-facing figure for the listing;
// ActualShippingCost is the true outlay and is the only one margin math may use.
type ZoneRate struct {
	ID                    uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PolicyID              uuid.UUID        `gorm:"type:uuid;not null;index" json:"policy_id"`
	ZoneCode              string           `gorm:"type:varchar(10);not null" json:"zone_code"`
	DisplayShippingCost   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"display_shipping_cost"`
	ActualShippingCost    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"actual_shipping_cost"`
	HandlingFeeDutyPaid   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"handling_fee_duty_paid"`
	HandlingFeeDutyUnpaid decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"handling_fee_duty_unpaid"`
	CreatedAt             time.Time        `json:"created_at"`
}

// Validate enforces the structural invariants: weight range ordered, basis is a
// known value, and a price band is present iff the basis is duty-paid.
func (p ShippingPolicy) Validate() error {
	if p.WeightMinKg.GreaterThan(p.WeightMaxKg) {
		return fmt.Errorf("policy %q: weight_min_kg %s exceeds weight_max_kg %s", p.Name, p.WeightMinKg, p.WeightMaxKg)
	}
	switch p.PricingBasis {
	case BasisDutyPaid:
		if p.PriceBand == nil {
			return fmt.Errorf("policy %q: duty-paid policy requires a price band", p.Name)
		}
		if *p.PriceBand != BandLow && *p.PriceBand != BandHigh {
			return fmt.Errorf("policy %q: unknown price band %q", p.Name, *p.PriceBand)
		}
	case BasisDutyUnpaid:
		if p.PriceBand != nil {
			return fmt.Errorf("policy %q: duty-unpaid policy must not carry a price band", p.Name)
		}
	default:
		return fmt.Errorf("policy %q: unknown pricing basis %q", p.Name, p.PricingBasis)
	}
	return nil
}

// CoversWeight reports whether w falls inside the policy's inclusive range.
func (p ShippingPolicy) CoversWeight(w decimal.Decimal) bool {
	return w.GreaterThanOrEqual(p.WeightMinKg) && w.LessThanOrEqual(p.WeightMaxKg)
}

// ZoneFor returns the rate row for a destination zone code.
func (p ShippingPolicy) ZoneFor(zoneCode string) (ZoneRate, bool) {
	for _, z := range p.Zones {
		if z.ZoneCode == zoneCode {
			return z, true
		}
	}
	return ZoneRate{}, false
}

// HandlingFee returns the handling fee for the policy's pricing basis.
// Duty-paid policies without an explicit duty-paid fee fall back to the
// duty-unpaid fee.
func (z ZoneRate) HandlingFee(pricingBasis string) decimal.Decimal {
	if pricingBasis == BasisDutyPaid && z.HandlingFeeDutyPaid != nil {
		return *z.HandlingFeeDutyPaid
	}
	return z.HandlingFeeDutyUnpaid
}
