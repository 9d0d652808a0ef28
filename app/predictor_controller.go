package app

import (
	"context"
	"log"

	"titanic/domain/passenger"
	"titanic/domain/prediction"
	"titanic/internal/chart"
	"titanic/internal/errors"
	"titanic/internal/view"
	"titanic/ports"

	"golang.org/x/sync/errgroup"
)

// Presenter receives what the controller wants shown on a page. A web presenter renders
// fragments or JSON; the CLI prints to the terminal.
type Presenter interface {
	ShowControls(form Form, state view.ControlState)
	ShowValidationError(form Form, message string)
	ShowSingle(result view.SingleResult) error
	ShowComparison(result view.ComparisonResult) error
	ShowChart(snippet chart.Snippet) error
	ShowFailure(failure view.Failure) error
}

// PredictorController runs the single and comparison prediction workflows
type PredictorController struct {
	predictors ports.PredictorFactory
}

// NewPredictorController creates a controller that asks predictors bound to each page's origin
func NewPredictorController(predictors ports.PredictorFactory) *PredictorController {
	return &PredictorController{predictors: predictors}
}

// PredictSurvival validates one passenger and presents its prediction.
// Invalid age or fare is reported without a request and without touching prior results.
func (c *PredictorController) PredictSurvival(ctx context.Context, page *PageSession, fields passenger.Fields, out Presenter) error {
	query, err := passenger.ParseQuery(fields)
	if err != nil {
		out.ShowValidationError(FormSingle, err.Error())
		return err
	}

	defer c.busy(page, FormSingle, out)()

	result, err := c.predictors(page.Origin).Predict(ctx, query)
	if err != nil {
		log.Printf("[Predictor] Prediction failed for page %s: %v", page.ID, err)
		if presentErr := out.ShowFailure(view.PredictionFailure(errors.Reason(err), page.Origin)); presentErr != nil {
			return presentErr
		}
		return err
	}

	return out.ShowSingle(view.NewSingleResult(result))
}

// ComparePredictions validates two passengers, predicts both concurrently and presents the
// comparison followed by its chart. Either failure fails the whole comparison.
func (c *PredictorController) ComparePredictions(ctx context.Context, page *PageSession, p1, p2 passenger.Fields, out Presenter) error {
	q1, q2, err := passenger.ParsePair(p1, p2)
	if err != nil {
		out.ShowValidationError(FormCompare, err.Error())
		return err
	}

	defer c.busy(page, FormCompare, out)()

	r1, r2, err := c.predictPair(ctx, c.predictors(page.Origin), q1, q2)
	if err != nil {
		log.Printf("[Predictor] Comparison failed for page %s: %v", page.ID, err)
		if presentErr := out.ShowFailure(view.ComparisonFailure(errors.Reason(err), page.Origin)); presentErr != nil {
			return presentErr
		}
		return err
	}

	result := view.NewComparisonResult(r1, r2)
	if err := out.ShowComparison(result); err != nil {
		return err
	}

	snippet := chart.Comparison(result.Comparison, page.ChartTheme())
	snippet.Release = page.ChartSlot().Replace(snippet)
	return out.ShowChart(snippet)
}

// predictPair issues both requests at once. The group has no shared context, so one failure
// does not cancel the other request.
func (c *PredictorController) predictPair(ctx context.Context, predictor ports.Predictor, q1, q2 passenger.Query) (prediction.Result, prediction.Result, error) {
	var r1, r2 prediction.Result
	var g errgroup.Group

	g.Go(func() error {
		var err error
		r1, err = predictor.Predict(ctx, q1)
		return err
	})
	g.Go(func() error {
		var err error
		r2, err = predictor.Predict(ctx, q2)
		return err
	})

	if err := g.Wait(); err != nil {
		return prediction.Result{}, prediction.Result{}, err
	}
	return r1, r2, nil
}

// busy disables the form and returns the step that restores it
func (c *PredictorController) busy(page *PageSession, form Form, out Presenter) func() {
	page.SetControls(form, view.Busy())
	out.ShowControls(form, view.Busy())
	return func() {
		page.SetControls(form, view.Idle())
		out.ShowControls(form, view.Idle())
	}
}
