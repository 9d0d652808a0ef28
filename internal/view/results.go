package view

import (
	"fmt"

	"titanic/domain/prediction"
	"titanic/internal/chart"
)

// SingleResult is the rendered outcome of one prediction
type SingleResult struct {
	prediction.Verdict
	Message string `json:"message"`
}

// NewSingleResult derives the display attributes for a probability
func NewSingleResult(r prediction.Result) SingleResult {
	v := prediction.Classify(r.Probability)
	return SingleResult{
		Verdict: v,
		Message: fmt.Sprintf("The model estimates a %s%% chance of survival.", v.Percent),
	}
}

// ComparisonResult is the rendered outcome of a comparison. Chart is attached after the
// primary result has been presented.
type ComparisonResult struct {
	prediction.Comparison
	Chart *chart.Snippet `json:"chart,omitempty"`
}

// NewComparisonResult summarises two predictions
func NewComparisonResult(r1, r2 prediction.Result) ComparisonResult {
	return ComparisonResult{Comparison: prediction.Compare(r1.Probability, r2.Probability)}
}

// Failure is the "unable to predict" state. Message goes to the form's error line,
// Title and Hint replace the result panel.
type Failure struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

const failureHint = "Please check your connection and try again"

// PredictionFailure builds the single-mode failure state
func PredictionFailure(reason, origin string) Failure {
	return Failure{
		Title:   "Unable to get prediction",
		Message: fmt.Sprintf("Prediction failed: %s. Is the backend running at %s?", reason, origin),
		Hint:    failureHint,
	}
}

// ComparisonFailure builds the comparison-mode failure state
func ComparisonFailure(reason, origin string) Failure {
	return Failure{
		Title:   "Unable to compare predictions",
		Message: fmt.Sprintf("Comparison failed: %s. Is the backend running at %s?", reason, origin),
		Hint:    failureHint,
	}
}

// ControlState is the submit/loading state of one form
type ControlState struct {
	SubmitDisabled bool `json:"submit_disabled"`
	Loading        bool `json:"loading"`
}

// Busy is the state while a request is in flight
func Busy() ControlState {
	return ControlState{SubmitDisabled: true, Loading: true}
}

// Idle is the interactive state
func Idle() ControlState {
	return ControlState{}
}
