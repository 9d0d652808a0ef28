package prediction

import (
	"fmt"
	"math"
)

// SurvivalThreshold is inclusive: a probability of exactly 0.5 classifies as survived.
const SurvivalThreshold = 0.5

// Display colors and labels shared by the web UI and the CLI
const (
	ColorSurvived = "#34D399"
	ColorPerished = "#F87171"

	LabelSurvived = "Likely Survived"
	LabelPerished = "Likely Perished"
)

// Result is the probability returned by the prediction endpoint
type Result struct {
	Probability float64 `json:"probability"`
}

// Verdict holds the display attributes derived from one probability
type Verdict struct {
	Probability float64 `json:"probability"`
	Percent     string  `json:"percent"`
	Survived    bool    `json:"survived"`
	Label       string  `json:"label"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	Glow        string  `json:"glow"`
}

// Classify derives the verdict for a probability
func Classify(p float64) Verdict {
	v := Verdict{
		Probability: p,
		Percent:     Percent(p),
		Survived:    p >= SurvivalThreshold,
	}
	if v.Survived {
		v.Label, v.Icon, v.Color, v.Glow = LabelSurvived, "✓", ColorSurvived, "glow-survived"
	} else {
		v.Label, v.Icon, v.Color, v.Glow = LabelPerished, "✗", ColorPerished, "glow-perished"
	}
	return v
}

// PercentValue is p as a percentage rounded to one decimal place, halves away from zero
func PercentValue(p float64) float64 {
	return math.Round(p*1000) / 10
}

// Percent formats PercentValue(p) with one decimal place, without the % sign
func Percent(p float64) string {
	return fmt.Sprintf("%.1f", PercentValue(p))
}

// Comparison summarises two predictions
type Comparison struct {
	Person1      Verdict `json:"person1"`
	Person2      Verdict `json:"person2"`
	Difference   string  `json:"difference"`
	BetterChance string  `json:"better_chance"`
}

// Compare builds the comparison summary. Person 1 is reported as having the better
// chance only when strictly greater; an exact tie reports Person 2.
func Compare(p1, p2 float64) Comparison {
	better := "Person 2"
	if p1 > p2 {
		better = "Person 1"
	}
	return Comparison{
		Person1:      Classify(p1),
		Person2:      Classify(p2),
		Difference:   Percent(math.Abs(p1 - p2)),
		BetterChance: better,
	}
}
