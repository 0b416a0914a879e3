package pricing

import (
	"runtime"
	"sync"

	"github.com/shopspring/decimal"
)

// Cell statuses. Every sweep cell lands in exactly one bucket.
const (
	CellTargetMet = "TARGET_MET"  // meets margin and absolute-profit targets
	CellLowMargin = "LOW_MARGIN"  // profitable (or break-even) but under target
	CellLoss      = "LOSS"        // negative profit
	CellError     = "ERROR"       // calculation failed (no policy, bad config, ...)
)

// SweepConfig drives the verification sweep: the cartesian product of Weights
// and Costs is priced through the full pipeline. Template carries the fixed
// input fields (destination, origin, description) shared by every cell.
type SweepConfig struct {
	Weights  []decimal.Decimal
	Costs    []decimal.Decimal
	Template Input
	Workers  int
}

// DefaultSweepGrid returns the representative 9x9 weight/cost grid spanning
// light-and-cheap to heavy-and-expensive sourcing.
func DefaultSweepGrid() ([]decimal.Decimal, []decimal.Decimal) {
	weights := make([]decimal.Decimal, 0, 9)
	for _, w := range []float64{0.3, 0.5, 1, 2, 3, 5, 10, 15, 25} {
		weights = append(weights, decimal.NewFromFloat(w))
	}
	costs := make([]decimal.Decimal, 0, 9)
	for _, c := range []int64{1000, 3000, 5000, 10000, 20000, 40000, 80000, 120000, 200000} {
		costs = append(costs, decimal.NewFromInt(c))
	}
	return weights, costs
}

// SweepCell is one priced grid point, kept for inspection when it fails.
type SweepCell struct {
	WeightKg       decimal.Decimal `json:"weight_kg"`
	CostLocal      decimal.Decimal `json:"cost_local"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
	Status         string          `json:"status"`
	Result         *Result         `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
}

// SweepSummary aggregates a verification sweep. LossRate and TargetRate are
// percentages of the total; Loss + LowMargin + TargetMet + Errors = Total with
// no double counting.
type SweepSummary struct {
	Total          int             `json:"total"`
	Success        int             `json:"success"`
	TargetMetCount int             `json:"target_met_count"`
	LowMarginCount int             `json:"low_margin_count"`
	LossCount      int             `json:"loss_count"`
	ErrorCount     int             `json:"error_count"`
	LossRate       decimal.Decimal `json:"loss_rate_percent"`
	TargetRate     decimal.Decimal `json:"target_rate_percent"`
	FailingCases   []SweepCell     `json:"failing_cases"`
}

// RunSweep prices every weight x cost combination through the selector and
// calculator and aggregates the outcomes. Cells are independent and
// side-effect-free, so they run on a worker pool bounded by available CPU;
// results land in a preallocated slice indexed by cell, which keeps the
// aggregation deterministic for a fixed snapshot regardless of scheduling.
// Per-cell failures are counted, never propagated.
func RunSweep(calc *Calculator, cfg SweepConfig) SweepSummary {
	weights, costs := cfg.Weights, cfg.Costs
	if len(weights) == 0 || len(costs) == 0 {
		weights, costs = DefaultSweepGrid()
	}

	total := len(weights) * len(costs)
	cells := make([]SweepCell, total)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cells[idx] = runCell(calc, cfg.Template, weights[idx/len(costs)], costs[idx%len(costs)])
			}
		}()
	}
	for idx := 0; idx < total; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return summarize(cells)
}

func runCell(calc *Calculator, template Input, weight, cost decimal.Decimal) SweepCell {
	in := template
	in.WeightKg = weight
	in.CostLocalCurrency = cost

	cell := SweepCell{
		WeightKg:       weight,
		CostLocal:      cost,
		EstimatedPrice: RoundMoney(EstimatePrice(cost, calc.snapshot.Rate.Safe(), calc.opts.EstimateMarkup)),
	}

	result, err := calc.Calculate(in)
	if err != nil {
		cell.Status = CellError
		if e, ok := err.(*Error); ok {
			cell.Error = e
		} else {
			cell.Error = newError(ErrComputationInvalid, "%v", err)
		}
		return cell
	}

	cell.Result = &result
	switch {
	case result.IsLoss:
		cell.Status = CellLoss
	case !result.MeetsTarget:
		cell.Status = CellLowMargin
	default:
		cell.Status = CellTargetMet
	}
	return cell
}

func summarize(cells []SweepCell) SweepSummary {
	summary := SweepSummary{Total: len(cells)}
	for _, cell := range cells {
		switch cell.Status {
		case CellTargetMet:
			summary.Success++
			summary.TargetMetCount++
		case CellLowMargin:
			summary.Success++
			summary.LowMarginCount++
			summary.FailingCases = append(summary.FailingCases, cell)
		case CellLoss:
			summary.Success++
			summary.LossCount++
			summary.FailingCases = append(summary.FailingCases, cell)
		case CellError:
			summary.ErrorCount++
			summary.FailingCases = append(summary.FailingCases, cell)
		}
	}
	if summary.Total > 0 {
		hundred := decimal.NewFromInt(100)
		total := decimal.NewFromInt(int64(summary.Total))
		summary.LossRate = decimal.NewFromInt(int64(summary.LossCount)).Mul(hundred).Div(total).Round(2)
		summary.TargetRate = decimal.NewFromInt(int64(summary.TargetMetCount)).Mul(hundred).Div(total).Round(2)
	}
	return summary
}
