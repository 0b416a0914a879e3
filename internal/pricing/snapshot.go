package pricing

import (
	"crossborder/internal/model"

	"github.com/shopspring/decimal"
)

// Snapshot is the immutable per-batch view of the reference catalogs. It is
// loaded once (service.CatalogService), shared by every calculation in the
// batch, and never mutated, which is what makes single-item calculations pure
// and the verification sweep safe to parallelize.
type Snapshot struct {
	TariffCodes []model.TariffCode
	Policies    []model.ShippingPolicy
	Margins     []model.MarginSetting
	Fees        []model.MarketplaceFee
	Rate        model.ExchangeRate

	// CategoryChapters maps a category name to its hinted tariff chapters,
	// best first, at most three per category.
	CategoryChapters map[string][]string

	// Degraded marks a snapshot assembled with fallback constants (e.g. the
	// exchange rate source was unavailable).
	Degraded bool
}

// Validate checks the batch-fatal preconditions and the per-row invariants.
// An empty policy catalog means every calculation would fail the same way, so
// the whole batch is rejected up front.
func (s *Snapshot) Validate() error {
	if len(s.Policies) == 0 {
		return newError(ErrExternalDataUnavailable, "shipping policy catalog is empty")
	}
	for _, p := range s.Policies {
		if err := p.Validate(); err != nil {
			return newError(ErrExternalDataUnavailable, "corrupt policy catalog: %v", err)
		}
	}
	for _, m := range s.Margins {
		if err := m.Validate(); err != nil {
			return newError(ErrExternalDataUnavailable, "corrupt margin settings: %v", err)
		}
	}
	if !s.Rate.Safe().IsPositive() {
		return newError(ErrExternalDataUnavailable,
			"exchange rate is unusable: spot %s with buffer %s gives safe rate %s",
			s.Rate.Spot, s.Rate.BufferPercent, s.Rate.Safe())
	}
	return nil
}

// MarginFor returns the active margin setting for a marketplace tier, falling
// back to the first active setting when the tier has no dedicated row.
func (s *Snapshot) MarginFor(tier string) (model.MarginSetting, bool) {
	var fallback *model.MarginSetting
	for i := range s.Margins {
		m := &s.Margins[i]
		if !m.Active {
			continue
		}
		if m.Tier == tier {
			return *m, true
		}
		if fallback == nil {
			fallback = m
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return model.MarginSetting{}, false
}

// FeeFor returns the fee structure for a listing category, falling back to the
// default category row, then to a zero-fee structure.
func (s *Snapshot) FeeFor(category string) model.MarketplaceFee {
	var def *model.MarketplaceFee
	for i := range s.Fees {
		f := &s.Fees[i]
		if f.Category == category {
			return *f
		}
		if f.Category == model.FeeCategoryDefault {
			def = f
		}
	}
	if def != nil {
		return *def
	}
	return model.MarketplaceFee{Category: model.FeeCategoryDefault}
}

// TariffByCode finds a tariff schedule row by exact code.
func (s *Snapshot) TariffByCode(code string) (model.TariffCode, bool) {
	for _, t := range s.TariffCodes {
		if t.Code == code {
			return t, true
		}
	}
	return model.TariffCode{}, false
}

// Options are the engine tunables. They come from configuration, not from the
// catalog store, and carry documented defaults so the engine runs standalone.
type Options struct {
	// EstimateMarkup multiplies the converted cost to estimate a sale price
	// before the real solve, for policy selection.
	EstimateMarkup decimal.Decimal
	// DutyPaidMinPrice / DutyPaidMaxPrice bound the estimated-price window in
	// which duty-paid policies apply (inclusive).
	DutyPaidMinPrice decimal.Decimal
	DutyPaidMaxPrice decimal.Decimal
	// BandSplitPrice splits duty-paid policies into LOW (<= split) and HIGH.
	BandSplitPrice decimal.Decimal
	// FallbackDutyRate applies when no tariff code could be resolved; the
	// result is marked degraded instead of failing.
	FallbackDutyRate decimal.Decimal
	// FallbackSpotRate / FallbackBufferPercent rebuild an exchange rate when
	// the rate source is unavailable.
	FallbackSpotRate      decimal.Decimal
	FallbackBufferPercent decimal.Decimal
	// ExtraTariffOrigins lists origin countries whose flagged tariff codes
	// attract the extra punitive rate.
	ExtraTariffOrigins []string
	// ZoneOverrides maps a destination country to a shipping zone code when
	// they differ; unmapped countries use the country code as the zone.
	ZoneOverrides map[string]string
}

// DefaultOptions returns the documented engine defaults.
func DefaultOptions() Options {
	return Options{
		EstimateMarkup:        decimal.NewFromFloat(1.3),
		DutyPaidMinPrice:      decimal.NewFromInt(150),
		DutyPaidMaxPrice:      decimal.NewFromInt(450),
		BandSplitPrice:        decimal.NewFromInt(250),
		FallbackDutyRate:      decimal.NewFromFloat(0.10),
		FallbackSpotRate:      decimal.NewFromInt(150),
		FallbackBufferPercent: decimal.NewFromFloat(0.05),
		ExtraTariffOrigins:    []string{"CN"},
		ZoneOverrides:         map[string]string{},
	}
}

// FallbackRate builds the degraded-mode exchange rate from the options.
func (o Options) FallbackRate() model.ExchangeRate {
	return model.ExchangeRate{
		BaseCurrency:  "USD",
		QuoteCurrency: "JPY",
		Spot:          o.FallbackSpotRate,
		BufferPercent: o.FallbackBufferPercent,
	}
}

// ZoneFor resolves the shipping zone code for a destination country.
func (o Options) ZoneFor(destinationCountry string) string {
	if zone, ok := o.ZoneOverrides[destinationCountry]; ok {
		return zone
	}
	return destinationCountry
}
