package ui

import (
	"bytes"
	"html/template"

	"titanic/app"
	"titanic/internal/chart"
	"titanic/internal/view"
	"titanic/ui/templates/fragments"
)

// fragmentPresenter renders the controller's output as HTMX fragments into one buffer
type fragmentPresenter struct {
	templates  *template.Template
	form       app.Form
	buf        bytes.Buffer
	validation string
	renderErr  error
}

// fragmentData is what every result fragment is executed with; ErrorTarget names the
// form's error line so the fragment can update it out of band
type fragmentData struct {
	Result      interface{}
	ErrorTarget string
}

func newFragmentPresenter(templates *template.Template, form app.Form) *fragmentPresenter {
	return &fragmentPresenter{templates: templates, form: form}
}

func (p *fragmentPresenter) render(name string, result interface{}) error {
	err := p.templates.ExecuteTemplate(&p.buf, name, fragmentData{
		Result:      result,
		ErrorTarget: fragments.ErrorTarget(string(p.form)),
	})
	if err != nil && p.renderErr == nil {
		p.renderErr = err
	}
	return err
}

// ShowControls is a no-op: htmx disables the submit button and shows the indicator itself
func (p *fragmentPresenter) ShowControls(app.Form, view.ControlState) {}

func (p *fragmentPresenter) ShowValidationError(form app.Form, message string) {
	p.form = form
	p.validation = message
}

func (p *fragmentPresenter) ShowSingle(result view.SingleResult) error {
	return p.render(fragments.SingleResult, result)
}

func (p *fragmentPresenter) ShowComparison(result view.ComparisonResult) error {
	return p.render(fragments.ComparisonResult, result)
}

func (p *fragmentPresenter) ShowChart(snippet chart.Snippet) error {
	return p.render(fragments.Chart, snippet)
}

func (p *fragmentPresenter) ShowFailure(failure view.Failure) error {
	return p.render(fragments.Failure, failure)
}

// jsonPresenter records the controller's output for a JSON response
type jsonPresenter struct {
	validation string
	controls   []view.ControlState
	single     *view.SingleResult
	comparison *view.ComparisonResult
	failure    *view.Failure
}

func (p *jsonPresenter) ShowControls(_ app.Form, state view.ControlState) {
	p.controls = append(p.controls, state)
}

func (p *jsonPresenter) ShowValidationError(_ app.Form, message string) {
	p.validation = message
}

func (p *jsonPresenter) ShowSingle(result view.SingleResult) error {
	p.single = &result
	return nil
}

func (p *jsonPresenter) ShowComparison(result view.ComparisonResult) error {
	p.comparison = &result
	return nil
}

// ShowChart attaches the chart to the comparison it was built for
func (p *jsonPresenter) ShowChart(snippet chart.Snippet) error {
	if p.comparison != nil {
		p.comparison.Chart = &snippet
	}
	return nil
}

func (p *jsonPresenter) ShowFailure(failure view.Failure) error {
	p.failure = &failure
	return nil
}
