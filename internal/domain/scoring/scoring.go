// Package scoring defines the contract for turning a target event, its cohort
// and its category trend into an expected return, a risk tier, a confidence
// score and a decision label.
package scoring

import (
	"context"
	"fmt"

	"github.com/okian/tixroi/internal/domain/analytics"
	"github.com/okian/tixroi/internal/domain/model"
)

// Strategy names accepted by ByName.
const (
	CohortStrategyName     = "cohort"
	RegressionStrategyName = "regression"
)

// Input abstracts what an estimator needs to score one event.
type Input struct {
	Target model.Event
	// Cohort holds events sharing the target's category and venue.
	Cohort []model.Event
	// Trend summarises the target's whole category.
	Trend analytics.Summary
}

// Estimator scores events against one catalog snapshot.
type Estimator interface {
	// Name identifies the strategy that produced the estimator.
	Name() string
	// EstimateROI returns the expected return in percent.
	EstimateROI(ctx context.Context, in Input) (float64, error)
	// ClassifyRisk maps the strategy's risk signal to a tier.
	ClassifyRisk(in Input, roi float64) model.RiskLevel
	// ScoreConfidence returns a bounded confidence percentage.
	ScoreConfidence(in Input, roi float64) float64
}

// HoldingPeriodRecommender is implemented by estimators that can suggest how
// many days before the event to sell.
type HoldingPeriodRecommender interface {
	RecommendHoldingPeriod(in Input) int
}

// Strategy builds an Estimator for a catalog. Whatever a strategy derives from
// the catalog (a fitted model, for instance) lives in the returned Estimator,
// so the pair can be swapped atomically.
type Strategy interface {
	Name() string
	Prepare(ctx context.Context, events []model.Event) (Estimator, error)
}

// ByName returns the strategy registered under name.
func ByName(name string, opts ...Option) (Strategy, error) {
	switch name {
	case CohortStrategyName:
		return NewCohortStrategy(), nil
	case RegressionStrategyName:
		return NewRegressionStrategy(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
