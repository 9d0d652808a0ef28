// Package fragments provides the names of the HTMX fragment templates
package fragments

import "strings"

// Fragment template names, as declared with {{define}} in templates/fragments
const (
	// Result templates
	SingleResult     = "fragments/single_result"
	ComparisonResult = "fragments/comparison_result"
	Failure          = "fragments/failure"

	// Chart templates
	Chart = "fragments/chart"

	// Status templates
	ErrorLine = "fragments/error_line"
)

// GetAllTemplatePaths returns every fragment name, used to check that parsing registered them
func GetAllTemplatePaths() []string {
	return []string{
		SingleResult,
		ComparisonResult,
		Failure,
		Chart,
		ErrorLine,
	}
}

// ErrorTarget returns the DOM id of the error line belonging to a form
func ErrorTarget(form string) string {
	if strings.EqualFold(form, "compare") {
		return "compare-error"
	}
	return "single-error"
}
