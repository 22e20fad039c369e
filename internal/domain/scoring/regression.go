package scoring

import (
	"context"

	"github.com/okian/tixroi/internal/domain/analytics"
	"github.com/okian/tixroi/internal/domain/model"
)

// RegressionStrategy fits a linear model of peak resale price over the whole
// catalog and predicts returns from it.
type RegressionStrategy struct {
	minSamples int
}

// NewRegressionStrategy creates the regression strategy.
func NewRegressionStrategy(opts ...Option) *RegressionStrategy {
	s := &RegressionStrategy{minSamples: defaultMinSamples}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Strategy.
func (s *RegressionStrategy) Name() string { return RegressionStrategyName }

// Prepare fits the model over events. A catalog too small to train yields an
// estimator whose EstimateROI returns ErrUntrainedModel.
func (s *RegressionStrategy) Prepare(ctx context.Context, events []model.Event) (Estimator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := Fit(events, s.minSamples)
	if err != nil {
		return nil, err
	}
	return &RegressionEstimator{model: m}, nil
}

// RegressionEstimator scores events with one fitted Model.
type RegressionEstimator struct {
	model Model
}

// NewRegressionEstimator wraps an already fitted model.
func NewRegressionEstimator(m Model) *RegressionEstimator {
	return &RegressionEstimator{model: m}
}

// Name implements Estimator.
func (e *RegressionEstimator) Name() string { return RegressionStrategyName }

// Model returns the fitted model.
func (e *RegressionEstimator) Model() Model { return e.model }

// EstimateROI returns the percentage return of the predicted peak price.
func (e *RegressionEstimator) EstimateROI(ctx context.Context, in Input) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	predicted, err := e.model.Predict(Features(&in.Target))
	if err != nil {
		return 0, err
	}
	return analytics.PriceIncrease(predicted, in.Target.OriginalPrice), nil
}

// ClassifyRisk derives the tier from the predicted return itself.
func (e *RegressionEstimator) ClassifyRisk(_ Input, roi float64) model.RiskLevel {
	return ClassifyPredictedROI(roi)
}

// ScoreConfidence implements Estimator.
func (e *RegressionEstimator) ScoreConfidence(_ Input, roi float64) float64 {
	return RegressionConfidence(roi)
}
