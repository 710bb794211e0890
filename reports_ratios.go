package ledgerline

import "fmt"

// RatioStatus grades a ratio against fixed thresholds.
type RatioStatus string

const (
	StatusHealthy      RatioStatus = "healthy"
	StatusCaution      RatioStatus = "caution"
	StatusWarning      RatioStatus = "warning"
	StatusNotAvailable RatioStatus = "na" // denominator is zero or meaningless
)

// RatioInterpretation is one computed ratio with its plain-language reading.
type RatioInterpretation struct {
	Name        string      `json:"name"`
	Value       float64     `json:"value"`
	Status      RatioStatus `json:"status"`
	Description string      `json:"description"`
}

// ComputeRatios derives the standard ratio set from the statements. Ratios
// whose denominator is zero come back as na rather than Inf or NaN.
func ComputeRatios(pl ProfitAndLoss, bs BalanceSheet) []RatioInterpretation {
	return []RatioInterpretation{
		currentRatio(bs),
		debtToEquity(bs),
		marginRatio("Gross Margin", pl.GrossMargin, pl.TotalRevenue, 0.40, 0.20),
		marginRatio("Operating Margin", pl.OperatingMargin, pl.TotalRevenue, 0.15, 0.05),
		marginRatio("Net Margin", pl.NetMargin, pl.TotalRevenue, 0.10, 0.0),
	}
}

func currentRatio(bs BalanceSheet) RatioInterpretation {
	r := RatioInterpretation{Name: "Current Ratio"}
	if bs.CurrentLiabilities.IsZero() {
		r.Status = StatusNotAvailable
		r.Description = "no current liabilities on the books"
		return r
	}
	r.Value = bs.CurrentAssets.Ratio(bs.CurrentLiabilities)
	switch {
	case r.Value >= 1.5:
		r.Status = StatusHealthy
		r.Description = "current assets comfortably cover current liabilities"
	case r.Value >= 1.0:
		r.Status = StatusCaution
		r.Description = "current assets cover current liabilities with little margin"
	default:
		r.Status = StatusWarning
		r.Description = "current liabilities exceed current assets"
	}
	return r
}

func debtToEquity(bs BalanceSheet) RatioInterpretation {
	r := RatioInterpretation{Name: "Debt to Equity"}
	if !bs.TotalEquity.IsPositive() {
		r.Status = StatusNotAvailable
		r.Description = "equity is zero or negative"
		return r
	}
	r.Value = bs.TotalLiabilities.Ratio(bs.TotalEquity)
	switch {
	case r.Value <= 1.0:
		r.Status = StatusHealthy
		r.Description = "more of the business is funded by owners than by creditors"
	case r.Value <= 2.0:
		r.Status = StatusCaution
		r.Description = "creditors fund a larger share of the business than owners"
	default:
		r.Status = StatusWarning
		r.Description = "leverage is high relative to the equity base"
	}
	return r
}

func marginRatio(name string, value float64, revenue Amount, healthy, caution float64) RatioInterpretation {
	r := RatioInterpretation{Name: name, Value: value}
	if !revenue.IsPositive() {
		r.Status = StatusNotAvailable
		r.Description = "no revenue recorded"
		r.Value = 0
		return r
	}
	switch {
	case value >= healthy:
		r.Status = StatusHealthy
	case value >= caution:
		r.Status = StatusCaution
	default:
		r.Status = StatusWarning
	}
	r.Description = fmt.Sprintf("%.1f%% of revenue", value*100)
	return r
}

// Health-score component weights. Profitability carries the most weight;
// liquidity and leverage split the rest.
const (
	weightProfitability = 0.4
	weightLiquidity     = 0.3
	weightLeverage      = 0.3
)

// HealthScore folds the ratio set into a single 0-100 score. Each component
// maps its ratio onto 0-100 with a linear ramp between its warning and
// healthy thresholds; na components score a neutral 50 so missing data never
// reads as distress. The result is clamped to [0, 100].
func HealthScore(ratios []RatioInterpretation) int {
	find := func(name string) (RatioInterpretation, bool) {
		for _, r := range ratios {
			if r.Name == name {
				return r, true
			}
		}
		return RatioInterpretation{}, false
	}

	profitability := 50.0
	if r, ok := find("Net Margin"); ok && r.Status != StatusNotAvailable {
		profitability = ramp(r.Value, -0.10, 0.10)
	}
	liquidity := 50.0
	if r, ok := find("Current Ratio"); ok && r.Status != StatusNotAvailable {
		liquidity = ramp(r.Value, 0.5, 1.5)
	}
	leverage := 50.0
	if r, ok := find("Debt to Equity"); ok && r.Status != StatusNotAvailable {
		// Lower is better: invert the ramp between 1.0 and 3.0.
		leverage = 100 - ramp(r.Value, 1.0, 3.0)
	}

	score := weightProfitability*profitability + weightLiquidity*liquidity + weightLeverage*leverage
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return int(score + 0.5)
}

// ramp maps value linearly onto [0, 100] between lo and hi.
func ramp(value, lo, hi float64) float64 {
	switch {
	case value <= lo:
		return 0
	case value >= hi:
		return 100
	}
	return (value - lo) / (hi - lo) * 100
}
