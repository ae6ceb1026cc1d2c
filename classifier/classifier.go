// Package classifier holds the fitted Hall of Fame model and the contract the
// predictor consumes it through.
package classifier

import "errors"

// Classifier is a fitted binary classifier. Class 1 means Hall of Famer.
type Classifier interface {
	// Predict returns the predicted class, 0 or 1.
	Predict(features []float64) (int, error)
	// PredictProba returns the probability of class 0 and class 1.
	PredictProba(features []float64) ([]float64, error)
}

var (
	// ErrFeatureCount is returned when the input length differs from the
	// number of features the model was fitted on.
	ErrFeatureCount = errors.New("feature count mismatch")
	// ErrInvalidModel is returned when a model file is structurally broken.
	ErrInvalidModel = errors.New("invalid model")
)
