package main

import (
	"fmt"
	"io"
	"strings"

	"titanic/app"
	"titanic/internal/chart"
	"titanic/internal/view"
)

const barWidth = 40

// terminalPresenter prints the controller's output; progress goes to status
type terminalPresenter struct {
	out        io.Writer
	status     io.Writer
	comparison *view.ComparisonResult
}

func newTerminalPresenter(out, status io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out, status: status}
}

func (p *terminalPresenter) ShowControls(_ app.Form, state view.ControlState) {
	if state.Loading {
		fmt.Fprintln(p.status, "Analyzing...")
	}
}

func (p *terminalPresenter) ShowValidationError(_ app.Form, message string) {
	fmt.Fprintln(p.status, message)
}

func (p *terminalPresenter) ShowSingle(r view.SingleResult) error {
	_, err := fmt.Fprintf(p.out, "%s %s\nEstimated Survival Probability: %s%%\n%s\n",
		r.Icon, r.Label, r.Percent, r.Message)
	return err
}

func (p *terminalPresenter) ShowComparison(r view.ComparisonResult) error {
	p.comparison = &r
	_, err := fmt.Fprintf(p.out,
		"Person 1: %s %s (%s%%)\nPerson 2: %s %s (%s%%)\nDifference: %s%%\n%s has the better chance of survival.\n",
		r.Person1.Icon, r.Person1.Label, r.Person1.Percent,
		r.Person2.Icon, r.Person2.Label, r.Person2.Percent,
		r.Difference, r.BetterChance)
	return err
}

// ShowChart draws the comparison as text bars; the chart option itself is for browsers
func (p *terminalPresenter) ShowChart(s chart.Snippet) error {
	if p.comparison == nil {
		return nil
	}
	fmt.Fprintf(p.out, "\n%s\n", s.Title)
	for i, v := range []struct {
		name        string
		probability float64
		percent     string
	}{
		{"Person 1", p.comparison.Person1.Probability, p.comparison.Person1.Percent},
		{"Person 2", p.comparison.Person2.Probability, p.comparison.Person2.Percent},
	} {
		filled := int(v.probability*barWidth + 0.5)
		if _, err := fmt.Fprintf(p.out, "%-9s %s%s %s%%\n", v.name,
			strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), v.percent); err != nil {
			return fmt.Errorf("bar %d: %w", i+1, err)
		}
	}
	return nil
}

func (p *terminalPresenter) ShowFailure(f view.Failure) error {
	_, err := fmt.Fprintf(p.status, "%s\n%s\n%s\n", f.Title, f.Message, f.Hint)
	return err
}
