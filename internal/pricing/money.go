package pricing

import "github.com/shopspring/decimal"

// RoundMoney applies the engine's single rounding rule: round half up to the
// smallest currency unit (2 decimal places). It is applied exactly once, to the
// final suggested price; intermediate values stay at full decimal precision so
// rounding error cannot compound through the pipeline.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
