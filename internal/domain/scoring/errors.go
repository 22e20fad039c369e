package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUntrainedModel  = errors.New("regression model is not trained")
	ErrFitFailed       = errors.New("regression fit failed")
	ErrUnknownStrategy = errors.New("unknown scoring strategy")
)
