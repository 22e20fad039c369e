package scoring

import (
	"fmt"
	"math"

	"github.com/okian/tixroi/internal/domain/analytics"
	"github.com/okian/tixroi/internal/domain/model"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultMinSamples = 2
	featureCount      = 2
	// machineEpsilon scales the singular value cutoff the way a least squares
	// solver does by default.
	machineEpsilon = 2.220446049250313e-16
)

// ModelState is the training state of a regression Model.
type ModelState int

// Model states.
const (
	Untrained ModelState = iota
	Trained
)

// String implements fmt.Stringer.
func (s ModelState) String() string {
	if s == Trained {
		return "trained"
	}
	return "untrained"
}

// Params are the fitted coefficients of a trained Model.
type Params struct {
	Intercept  float64 `json:"intercept"`
	PriceCoef  float64 `json:"price_coef"`
	SpreadCoef float64 `json:"spread_coef"`
	Samples    int     `json:"samples"`
}

// Model predicts the peak resale price from the original price and the
// standard deviation of the resale series. The zero value is Untrained.
type Model struct {
	state  ModelState
	params Params
}

// State returns the training state.
func (m Model) State() ModelState { return m.state }

// Trained reports whether Predict can be used.
func (m Model) Trained() bool { return m.state == Trained }

// Params returns the coefficients and whether the model is trained.
func (m Model) Params() (Params, bool) { return m.params, m.Trained() }

// Predict returns the expected peak resale price.
func (m Model) Predict(originalPrice, spread float64) (float64, error) {
	if !m.Trained() {
		return 0, ErrUntrainedModel
	}
	p := m.params
	return p.Intercept + p.PriceCoef*originalPrice + p.SpreadCoef*spread, nil
}

// Features returns the regression inputs for an event with a usable series.
func Features(e *model.Event) (originalPrice, spread float64) {
	return e.OriginalPrice, analytics.PopStdDev(e.ResalePrices)
}

// Fit trains an ordinary least squares model with intercept over every event
// with a usable series. With fewer than minSamples such events the returned
// model is Untrained and the error is nil. Rank deficient inputs get the
// minimum norm solution.
func Fit(events []model.Event, minSamples int) (Model, error) {
	if minSamples < defaultMinSamples {
		minSamples = defaultMinSamples
	}

	var xs [][featureCount]float64
	var ys []float64
	for i := range events {
		e := &events[i]
		if !e.HasSeries() {
			continue
		}
		price, spread := Features(e)
		peak, _ := analytics.Max(e.ResalePrices)
		xs = append(xs, [featureCount]float64{price, spread})
		ys = append(ys, peak)
	}

	n := len(ys)
	if n < minSamples {
		return Model{}, nil
	}

	var xMean [featureCount]float64
	for _, row := range xs {
		for j := range row {
			xMean[j] += row[j] / float64(n)
		}
	}
	yMean := analytics.Mean(ys)

	x := mat.NewDense(n, featureCount, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range xs {
		for j := range row {
			x.Set(i, j, row[j]-xMean[j])
		}
		y.SetVec(i, ys[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return Model{}, fmt.Errorf("%w: factorization did not converge", ErrFitFailed)
	}

	beta := mat.NewVecDense(featureCount, nil)
	if rank := svd.Rank(float64(max(n, featureCount)) * machineEpsilon); rank > 0 {
		svd.SolveVecTo(beta, y, rank)
	}

	params := Params{
		PriceCoef:  beta.AtVec(0),
		SpreadCoef: beta.AtVec(1),
		Samples:    n,
	}
	params.Intercept = yMean - params.PriceCoef*xMean[0] - params.SpreadCoef*xMean[1]
	for _, v := range []float64{params.Intercept, params.PriceCoef, params.SpreadCoef} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Model{}, fmt.Errorf("%w: non-finite coefficient", ErrFitFailed)
		}
	}

	return Model{state: Trained, params: params}, nil
}
