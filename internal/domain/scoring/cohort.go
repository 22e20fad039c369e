package scoring

import (
	"context"
	"math"

	"github.com/okian/tixroi/internal/domain/analytics"
	"github.com/okian/tixroi/internal/domain/model"
)

// CohortStrategy estimates returns from the observed peaks of comparable
// events, falling back to the category trend when the cohort is empty. It is
// stateless and implements both Strategy and Estimator.
type CohortStrategy struct{}

// NewCohortStrategy creates the cohort statistics strategy.
func NewCohortStrategy() *CohortStrategy {
	return &CohortStrategy{}
}

// Name implements Strategy and Estimator.
func (s *CohortStrategy) Name() string { return CohortStrategyName }

// Prepare implements Strategy. Nothing is derived from the catalog.
func (s *CohortStrategy) Prepare(_ context.Context, _ []model.Event) (Estimator, error) {
	return s, nil
}

// EstimateROI returns the mean peak return of the cohort, or the trend's
// average price increase when no cohort member has a resale series.
func (s *CohortStrategy) EstimateROI(_ context.Context, in Input) (float64, error) {
	members := withSeries(in.Cohort)
	if len(members) == 0 {
		return in.Trend.AvgPriceIncrease, nil
	}
	rois := make([]float64, len(members))
	for i := range members {
		rois[i] = analytics.PeakReturn(&members[i])
	}
	return analytics.Mean(rois), nil
}

// ClassifyRisk uses the mean cohort volatility in percent, or the trend's
// average risk score for an empty cohort.
func (s *CohortStrategy) ClassifyRisk(in Input, _ float64) model.RiskLevel {
	members := withSeries(in.Cohort)
	if len(members) == 0 {
		return ClassifyRiskScore(in.Trend.AvgRiskScore)
	}
	scores := make([]float64, len(members))
	for i := range members {
		scores[i] = analytics.Volatility(members[i].ResalePrices) * 100
	}
	return ClassifyRiskScore(analytics.Mean(scores))
}

// RecommendHoldingPeriod returns the median observation span of the cohort in
// days, or the trend's typical best resale time for an empty cohort.
func (s *CohortStrategy) RecommendHoldingPeriod(in Input) int {
	members := withSeries(in.Cohort)
	days := in.Trend.TypicalBestResaleTime
	if len(members) > 0 {
		spans := make([]float64, len(members))
		for i := range members {
			spans[i] = float64(analytics.HoldingDays(&members[i]))
		}
		days = analytics.Median(spans)
	}
	if math.IsNaN(days) {
		return 0
	}
	return int(days)
}

// ScoreConfidence grows with the cohort size.
func (s *CohortStrategy) ScoreConfidence(in Input, _ float64) float64 {
	return CohortConfidence(len(in.Cohort))
}

func withSeries(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for i := range events {
		if events[i].HasSeries() {
			out = append(out, events[i])
		}
	}
	return out
}
