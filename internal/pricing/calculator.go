package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crossborder/internal/model"
)

// Dimensions are the package dimensions in centimeters. Carried through for
// the caller's listing record; the current rate catalog is weight-banded only.
type Dimensions struct {
	LengthCm decimal.Decimal `json:"length_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
	HeightCm decimal.Decimal `json:"height_cm"`
}

// Input is one item to price. Cost and refundable fees are in the sourcing
// (local) currency; everything downstream is in the destination currency.
type Input struct {
	CostLocalCurrency  decimal.Decimal `json:"cost_local_currency"`
	WeightKg           decimal.Decimal `json:"weight_kg"`
	Dimensions         Dimensions      `json:"dimensions"`
	DestinationCountry string          `json:"destination_country"`
	OriginCountry      string          `json:"origin_country"`
	Description        string          `json:"description"`
	CategoryHint       string          `json:"category_hint"`
	TariffCodeOverride string          `json:"tariff_code_override"`
	MarketplaceTier    string          `json:"marketplace_tier"`
	RefundableFees     decimal.Decimal `json:"refundable_fees"`
}

// Breakdown itemizes the landed cost behind a suggested price, all in the
// destination currency. ShippingCost is the actual outlay used for margin
// math; DisplayShippingCost is the buyer-facing figure and appears here only
// so the caller can render the listing.
type Breakdown struct {
	CostConverted       decimal.Decimal `json:"cost_converted"`
	ShippingCost        decimal.Decimal `json:"shipping_cost"`
	DisplayShippingCost decimal.Decimal `json:"display_shipping_cost"`
	TariffCost          decimal.Decimal `json:"tariff_cost"`
	HandlingFee         decimal.Decimal `json:"handling_fee"`
	TotalFees           decimal.Decimal `json:"total_fees"`
	DutyRate            decimal.Decimal `json:"duty_rate"`
}

// Result is a successful price calculation. Loss-making prices are not
// suppressed: IsLoss is surfaced so the caller or the verification sweep can
// act on them.
type Result struct {
	SuggestedPrice   decimal.Decimal `json:"suggested_price"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitMargin     decimal.Decimal `json:"profit_margin"`
	MeetsTarget      bool            `json:"meets_target"`
	IsLoss           bool            `json:"is_loss"`
	TariffCode       string          `json:"tariff_code,omitempty"`
	TariffConfidence int             `json:"tariff_confidence,omitempty"`
	DutyRateFallback bool            `json:"duty_rate_fallback,omitempty"`
	PolicyID         uuid.UUID       `json:"policy_id"`
	PolicyName       string          `json:"policy_name"`
	Warnings         []string        `json:"warnings,omitempty"`
	Breakdown        Breakdown       `json:"breakdown"`
}

// Calculator solves for a sale price that hits the configured profit margin
// after marketplace fees, handling, shipping and import duty. It is a pure
// function of the input and the immutable snapshot: the same input against the
// same snapshot always yields the same result.
type Calculator struct {
	snapshot   *Snapshot
	opts       Options
	classifier *Classifier
	selector   *Selector
}

func NewCalculator(snapshot *Snapshot, opts Options) *Calculator {
	return &Calculator{
		snapshot:   snapshot,
		opts:       opts,
		classifier: NewClassifier(snapshot),
		selector:   NewSelector(snapshot, opts),
	}
}

// Calculate prices one item. Recoverable lookups degrade (fallback duty rate);
// structural problems come back as *Error so batch drivers can isolate them.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.CostLocalCurrency.LessThanOrEqual(decimal.Zero) {
		return Result{}, newError(ErrInputValidation, "cost must be positive, got %s", in.CostLocalCurrency)
	}
	if in.WeightKg.LessThanOrEqual(decimal.Zero) {
		return Result{}, newError(ErrInputValidation, "weight must be positive, got %skg", in.WeightKg)
	}

	var result Result
	safeRate := c.snapshot.Rate.Safe()
	if !safeRate.IsPositive() {
		return Result{}, newError(ErrExternalDataUnavailable,
			"exchange rate is unusable: safe rate %s is not positive", safeRate)
	}

	// 1. Cost conversion at the safe (buffered) rate. Refundable sourcing fees
	// come off the local cost before conversion.
	netCost := in.CostLocalCurrency.Sub(in.RefundableFees)
	if netCost.IsNegative() {
		netCost = decimal.Zero
	}
	converted := netCost.Div(safeRate)

	// 2. Duty rate from classification (or override), with a conservative
	// default when the item cannot be classified.
	dutyRate, err := c.resolveDutyRate(in, &result)
	if err != nil {
		return Result{}, err
	}

	// 3. Policy and zone selection off the estimated price.
	estimated := EstimatePrice(in.CostLocalCurrency, safeRate, c.opts.EstimateMarkup)
	policy, err := c.selector.Select(in.WeightKg, estimated)
	if err != nil {
		return Result{}, err
	}
	zone, ok := policy.ZoneFor(c.opts.ZoneFor(in.DestinationCountry))
	if !ok {
		return Result{}, newError(ErrLookupNotFound,
			"policy %q has no zone rate for destination %s", policy.Name, in.DestinationCountry)
	}
	result.PolicyID = policy.ID
	result.PolicyName = policy.Name

	// 4. Margin and fee configuration.
	margin, ok := c.snapshot.MarginFor(in.MarketplaceTier)
	if !ok {
		return Result{}, newError(ErrExternalDataUnavailable, "no active margin setting for tier %q", in.MarketplaceTier)
	}
	fee := c.snapshot.FeeFor(in.CategoryHint)

	// Declared value for customs includes freight.
	shipping := zone.ActualShippingCost
	tariffCost := dutyRate.Mul(converted.Add(shipping))
	handling := zone.HandlingFee(policy.PricingBasis)
	fixed := fee.FixedInsertionFee.Add(handling)

	target := clampMargin(margin.DefaultMargin, margin.MinMargin, margin.MaxMargin)
	price, err := solvePrice(converted.Add(shipping).Add(tariffCost), fixed, target, fee)
	if err != nil {
		return Result{}, err
	}

	// 5. The single rounding point of the pipeline.
	price = RoundMoney(price)

	totalFees := fee.PercentageFee(price).Add(fee.FixedInsertionFee).Add(handling)
	profit := price.Sub(totalFees).Sub(converted).Sub(shipping).Sub(tariffCost)
	profitMargin := decimal.Zero
	if price.IsPositive() {
		profitMargin = profit.Div(price)
	}

	result.SuggestedPrice = price
	result.Profit = RoundMoney(profit)
	result.ProfitMargin = profitMargin.Round(4)
	result.IsLoss = profit.IsNegative()
	result.MeetsTarget = profitMargin.GreaterThanOrEqual(margin.MinMargin) &&
		profit.GreaterThanOrEqual(margin.MinAbsoluteProfit)
	result.Breakdown = Breakdown{
		CostConverted:       RoundMoney(converted),
		ShippingCost:        shipping,
		DisplayShippingCost: zone.DisplayShippingCost,
		TariffCost:          RoundMoney(tariffCost),
		HandlingFee:         handling,
		TotalFees:           RoundMoney(totalFees),
		DutyRate:            dutyRate,
	}
	return result, nil
}

// resolveDutyRate picks the tariff code from the override or the classifier's
// top candidate. Classification failure is not fatal: the documented fallback
// duty rate applies and the result is flagged for reduced confidence.
func (c *Calculator) resolveDutyRate(in Input, result *Result) (decimal.Decimal, error) {
	if in.TariffCodeOverride != "" {
		tariff, ok := c.snapshot.TariffByCode(in.TariffCodeOverride)
		if !ok {
			return decimal.Zero, newError(ErrLookupNotFound,
				"tariff code override %q not in the tariff schedule", in.TariffCodeOverride)
		}
		result.TariffCode = tariff.Code
		result.TariffConfidence = maxConfidence
		return tariff.DutyRate(in.OriginCountry, c.opts.ExtraTariffOrigins), nil
	}

	candidates, err := c.classifier.Classify(in.Description, in.CategoryHint)
	if err != nil {
		result.DutyRateFallback = true
		result.Warnings = append(result.Warnings,
			"item could not be classified; conservative default duty rate applied, review manually")
		return c.opts.FallbackDutyRate, nil
	}
	top := candidates[0]
	result.TariffCode = top.Tariff.Code
	result.TariffConfidence = top.Confidence
	return top.Tariff.DutyRate(in.OriginCountry, c.opts.ExtraTariffOrigins), nil
}

// solvePrice solves price = (base + fixed) / (1 - target - feeRate) so the
// realized margin equals the target after the percentage fee. When the
// percentage fee at the solved price exceeds the fee cap, the fee becomes a
// constant and the price is re-solved with the cap folded into the fixed side.
func solvePrice(base, fixed, target decimal.Decimal, fee model.MarketplaceFee) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)

	denom := one.Sub(target).Sub(fee.FeeRate)
	if denom.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, newError(ErrComputationInvalid,
			"margin %s plus fee rate %s leave no room in the price: denominator %s <= 0",
			target, fee.FeeRate, denom)
	}
	price := base.Add(fixed).Div(denom)

	if fee.FeeCap != nil && price.Mul(fee.FeeRate).GreaterThan(*fee.FeeCap) {
		capDenom := one.Sub(target)
		if capDenom.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, newError(ErrComputationInvalid,
				"target margin %s leaves no room in the price", target)
		}
		price = base.Add(fixed).Add(*fee.FeeCap).Div(capDenom)
	}
	return price, nil
}

// clampMargin bounds the solve target to the configured margin window. The
// realized margin is recomputed from the rounded price afterwards, so this
// clamp only guards against an out-of-range default.
func clampMargin(target, minMargin, maxMargin decimal.Decimal) decimal.Decimal {
	if target.LessThan(minMargin) {
		return minMargin
	}
	if target.GreaterThan(maxMargin) {
		return maxMargin
	}
	return target
}
