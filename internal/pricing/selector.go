package pricing

import (
	"crossborder/internal/model"

	"github.com/shopspring/decimal"
)

// EstimatePrice converts a local-currency cost at the safe rate and applies the
// configured markup. This estimate exists only to pick a shipping policy; the
// solver computes the real price afterwards.
func EstimatePrice(costLocal, safeRate, markup decimal.Decimal) decimal.Decimal {
	if !safeRate.IsPositive() {
		return decimal.Zero
	}
	return costLocal.Div(safeRate).Mul(markup)
}

// Selector resolves a shipping policy for a weight and an estimated sale price.
type Selector struct {
	snapshot *Snapshot
	opts     Options
}

func NewSelector(snapshot *Snapshot, opts Options) *Selector {
	return &Selector{snapshot: snapshot, opts: opts}
}

// Select returns the first catalog-order policy compatible with the weight and
// the estimated price. Estimated prices inside the duty-paid window (150..450
// inclusive by default) route to duty-paid policies, split into a LOW band at
// or below the 250 split and a HIGH band above it; everything outside the
// window routes to duty-unpaid policies with no band. First match wins; the
// catalog's sort order is the documented tie-break.
func (s *Selector) Select(weightKg, estimatedPrice decimal.Decimal) (model.ShippingPolicy, error) {
	basis, band := s.basisFor(estimatedPrice)

	for _, p := range s.snapshot.Policies {
		if !p.Active || p.PricingBasis != basis {
			continue
		}
		if !p.CoversWeight(weightKg) {
			continue
		}
		if band != "" && (p.PriceBand == nil || *p.PriceBand != band) {
			continue
		}
		return p, nil
	}

	return model.ShippingPolicy{}, newError(ErrLookupNotFound,
		"no %s shipping policy covers weight %skg at estimated price %s", basis, weightKg, estimatedPrice).
		withSuggestion("extend the shipping policy catalog to cover this weight/price combination")
}

// basisFor returns the pricing basis and, for duty-paid, the price band.
func (s *Selector) basisFor(estimatedPrice decimal.Decimal) (string, string) {
	inWindow := estimatedPrice.GreaterThanOrEqual(s.opts.DutyPaidMinPrice) &&
		estimatedPrice.LessThanOrEqual(s.opts.DutyPaidMaxPrice)
	if !inWindow {
		return model.BasisDutyUnpaid, ""
	}
	if estimatedPrice.LessThanOrEqual(s.opts.BandSplitPrice) {
		return model.BasisDutyPaid, model.BandLow
	}
	return model.BasisDutyPaid, model.BandHigh
}
