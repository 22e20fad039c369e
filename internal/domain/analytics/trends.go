// Package analytics computes per-event resale metrics and aggregates them
// into category or cohort trend summaries.
package analytics

import (
	"math"

	"github.com/okian/tixroi/internal/domain/model"
)

// Risk score shaping constants.
const (
	riskScoreCap         = 100
	volatilityRiskWeight = 50
	increaseRiskWeight   = 50
	increaseRiskScale    = 200
)

// Metrics are the per-event signals a trend is built from.
type Metrics struct {
	// PriceIncreases holds (r - o) / (o + ε) * 100 for every resale price r.
	PriceIncreases []float64
	// AvgPriceIncrease is the mean of PriceIncreases.
	AvgPriceIncrease float64
	// BestResaleDays is the number of days from the first observation to the
	// first occurrence of the highest resale price.
	BestResaleDays int
	// Volatility is the coefficient of variation of the resale prices.
	Volatility float64
	// RiskScore is bounded above by 100.
	RiskScore float64
}

// Summary aggregates Metrics over a set of events.
type Summary struct {
	AvgPriceIncrease      float64 `json:"avg_price_increase"`
	TypicalBestResaleTime float64 `json:"typical_best_resale_time"`
	AvgVolatility         float64 `json:"avg_volatility"`
	AvgRiskScore          float64 `json:"avg_risk_score"`
}

// Empty reports whether the summary was built from no events.
func (s Summary) Empty() bool {
	return math.IsNaN(s.AvgPriceIncrease)
}

// PriceIncrease is the percentage change of price over original.
func PriceIncrease(price, original float64) float64 {
	return (price - original) / (original + model.Epsilon) * 100
}

// Volatility is the coefficient of variation stddev / (mean + ε).
func Volatility(prices []float64) float64 {
	return PopStdDev(prices) / (Mean(prices) + model.Epsilon)
}

// PeakReturn is the percentage return at the highest observed resale price.
func PeakReturn(e *model.Event) float64 {
	peak, _ := Max(e.ResalePrices)
	return PriceIncrease(peak, e.OriginalPrice)
}

// HoldingDays is the number of days between the first and last observation.
func HoldingDays(e *model.Event) int {
	return model.DaysBetween(e.Dates[0], e.Dates[len(e.Dates)-1])
}

// Measure computes the per-event metrics. The event must have a usable series
// (see model.Event.HasSeries).
func Measure(e *model.Event) Metrics {
	increases := make([]float64, len(e.ResalePrices))
	maxIncrease := 0.0
	for i, r := range e.ResalePrices {
		increases[i] = PriceIncrease(r, e.OriginalPrice)
		if i == 0 || increases[i] > maxIncrease {
			maxIncrease = increases[i]
		}
	}

	_, peakIdx := Max(e.ResalePrices)
	volatility := Volatility(e.ResalePrices)
	risk := math.Min(riskScoreCap,
		volatility*volatilityRiskWeight+(1-maxIncrease/increaseRiskScale)*increaseRiskWeight)

	return Metrics{
		PriceIncreases:   increases,
		AvgPriceIncrease: Mean(increases),
		BestResaleDays:   model.DaysBetween(e.Dates[0], e.Dates[peakIdx]),
		Volatility:       volatility,
		RiskScore:        risk,
	}
}

// Analyze aggregates the metrics of every event with a usable series: means
// for increase, volatility and risk, median for the best resale time. With no
// usable events every field is NaN.
func Analyze(events []model.Event) Summary {
	var increases, bestDays, volatilities, risks []float64
	for i := range events {
		if !events[i].HasSeries() {
			continue
		}
		m := Measure(&events[i])
		increases = append(increases, m.AvgPriceIncrease)
		bestDays = append(bestDays, float64(m.BestResaleDays))
		volatilities = append(volatilities, m.Volatility)
		risks = append(risks, m.RiskScore)
	}

	return Summary{
		AvgPriceIncrease:      Mean(increases),
		TypicalBestResaleTime: Median(bestDays),
		AvgVolatility:         Mean(volatilities),
		AvgRiskScore:          Mean(risks),
	}
}

// AnalyzeCategory is Analyze restricted to one category; an empty category
// keeps every event.
func AnalyzeCategory(events []model.Event, category string) Summary {
	if category == "" {
		return Analyze(events)
	}
	filtered := make([]model.Event, 0, len(events))
	for i := range events {
		if events[i].Category == category {
			filtered = append(filtered, events[i])
		}
	}
	return Analyze(filtered)
}
