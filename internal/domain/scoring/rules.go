package scoring

import (
	"math"

	"github.com/okian/tixroi/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Risk tier thresholds on the 0-100 cohort risk score.
const (
	lowRiskBelow    = 30
	mediumRiskBelow = 70
)

// Risk tier thresholds on a predicted return, in percent.
const (
	lowRiskROIAbove    = 50
	mediumRiskROIFloor = 20
)

// Confidence bounds.
const (
	cohortConfidenceBase   = 50
	cohortConfidenceStep   = 5
	cohortConfidenceCap    = 95
	regressionConfidenceLo = 30
	regressionConfidenceHi = 100
)

// Decision thresholds, in percent.
const (
	strongBuyROI   = 50
	buyROI         = 30
	moderateBuyROI = 15
)

// ClassifyRiskScore buckets a 0-100 risk score: below 30 is Low, below 70 is
// Medium, anything else High.
func ClassifyRiskScore(score float64) model.RiskLevel {
	switch {
	case score < lowRiskBelow:
		return model.RiskLow
	case score < mediumRiskBelow:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// ClassifyPredictedROI buckets a predicted return: above 50 is Low, 20 to 50
// is Medium, below 20 High.
func ClassifyPredictedROI(roi float64) model.RiskLevel {
	switch {
	case roi > lowRiskROIAbove:
		return model.RiskLow
	case roi >= mediumRiskROIFloor:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// CohortConfidence grows by 5 per cohort member from 50 and stops at 95.
func CohortConfidence(cohortSize int) float64 {
	return math.Min(cohortConfidenceCap, float64(cohortConfidenceBase+cohortConfidenceStep*cohortSize))
}

// RegressionConfidence uses the magnitude of the predicted return, clamped to
// [30, 100]. A large but wrong prediction reads as confident; callers should
// treat it as a heuristic only.
func RegressionConfidence(roi float64) float64 {
	return Round2(math.Min(regressionConfidenceHi, math.Max(regressionConfidenceLo, math.Abs(roi))))
}

// Recommend applies the decision rules in order; the first match wins.
func Recommend(roi float64, risk model.RiskLevel) model.Label {
	switch {
	case roi > strongBuyROI && risk == model.RiskLow:
		return model.StrongBuy
	case roi > buyROI && risk != model.RiskHigh:
		return model.Buy
	case roi > moderateBuyROI && risk == model.RiskLow:
		return model.ModerateBuy
	case roi < 0:
		return model.Avoid
	default:
		return model.Hold
	}
}

// Round2 rounds to two decimal places. NaN and infinities pass through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
