package model

import "fmt"

// RiskLevel is the discrete risk tier of an investment.
type RiskLevel string

// Risk tiers.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Label is the final buy/hold/avoid decision.
type Label string

// Decision labels.
const (
	StrongBuy   Label = "Strong Buy"
	Buy         Label = "Buy"
	ModerateBuy Label = "Moderate Buy"
	Hold        Label = "Hold"
	Avoid       Label = "Avoid"
)

// Recommendation is the assembled answer for one event.
type Recommendation struct {
	EventID        int       `json:"event_id"`
	EventName      string    `json:"event_name"`
	Recommendation Label     `json:"recommendation"`
	ExpectedROI    float64   `json:"expected_roi"`
	RiskLevel      RiskLevel `json:"risk_level"`
	// SuggestedHoldingPeriod is empty for strategies without a holding period.
	SuggestedHoldingPeriod string  `json:"suggested_holding_period,omitempty"`
	ConfidenceScore        float64 `json:"confidence_score"`
	Strategy               string  `json:"strategy"`
}

// HoldingPeriodText renders a holding period in days.
func HoldingPeriodText(days int) string {
	return fmt.Sprintf("%d days before event", days)
}
