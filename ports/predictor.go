package ports

import (
	"context"

	"titanic/domain/passenger"
	"titanic/domain/prediction"
)

// Predictor asks the external model for a survival probability
type Predictor interface {
	Predict(ctx context.Context, q passenger.Query) (prediction.Result, error)
}

// Backend is the full external prediction service
type Backend interface {
	Predictor
	Health(ctx context.Context) error
}

// PredictorFactory binds a Predictor to a resolved backend origin
type PredictorFactory func(origin string) Predictor

// BackendFactory binds a Backend to a resolved backend origin
type BackendFactory func(origin string) Backend

// Predictors narrows f to a PredictorFactory
func (f BackendFactory) Predictors() PredictorFactory {
	return func(origin string) Predictor {
		return f(origin)
	}
}
