package insights

// Kind selects how a chart is drawn
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// Colors used by the outcome charts
const (
	ColorPerished = "rgba(248, 113, 113, 0.8)"
	ColorSurvived = "rgba(52, 211, 153, 0.8)"
)

// Series is one dataset of a chart. PointColors, when set, colors each point individually.
type Series struct {
	Name        string
	Values      []float64
	Color       string
	PointColors []string
}

// Chart describes one static chart
type Chart struct {
	Key     string
	Title   string
	Kind    Kind
	Labels  []string
	Series  []Series
	Percent bool
}

// Aggregates holds every chart the two pages render
type Aggregates struct {
	// Outcomes are survived/perished counts shown on the predictor page.
	Outcomes []Chart
	// Rates are survival rates (%) shown on the insights page.
	Rates []Chart
	// Summaries describe the numeric columns before imputation.
	Summaries []ColumnSummary
	Source    string
}

// Chart looks up a chart by key in both groups
func (a Aggregates) Chart(key string) (Chart, bool) {
	for _, group := range [][]Chart{a.Rates, a.Outcomes} {
		for _, c := range group {
			if c.Key == key {
				return c, true
			}
		}
	}
	return Chart{}, false
}

var (
	outcomeAgeLabels = []string{"0-10", "11-20", "21-30", "31-40", "41-50", "51+"}
	rateAgeLabels    = []string{"0-10", "11-20", "21-30", "31-40", "41-50", "51-60", "61-70", "70+"}
	fareLabels       = []string{"0-10", "10-50", "50-100", "100-200", "200+"}
	portLabels       = []string{"Cherbourg", "Queenstown", "Southampton"}
	familyLabels     = []string{"Alone", "1-2", "3-4", "5+"}
	sexLabels        = []string{"Female", "Male"}
	classLabels      = []string{"1st Class", "2nd Class", "3rd Class"}
)

// Default returns the historical aggregates computed from the Kaggle training set.
func Default() Aggregates {
	return Aggregates{
		Source: "built-in",
		Outcomes: []Chart{
			outcomeChart("sex", "Survival by Sex", sexLabels, []float64{81, 468}, []float64{233, 109}),
			outcomeChart("class", "Survival by Class", classLabels, []float64{80, 97, 372}, []float64{136, 87, 119}),
			outcomeChart("age", "Survival by Age", outcomeAgeLabels,
				[]float64{26, 61, 146, 80, 50, 42}, []float64{38, 41, 77, 48, 33, 22}),
		},
		Rates: rateCharts(
			[]float64{74, 19},
			[]float64{62, 43, 26},
			[]float64{59, 38, 35, 39, 35, 29, 20, 12},
			[]float64{20, 35, 55, 70, 85},
			[]float64{55, 39, 34},
			[]float64{30, 55, 72, 20},
		),
		Summaries: []ColumnSummary{
			{Column: "Age", Count: 714, Missing: 177, Mean: 29.70, StdDev: 14.53, Min: 0.42,
				Q1: 20.125, Median: 28, Q3: 38, Max: 80, Skewness: 0.39, Outliers: 11},
			{Column: "Fare", Count: 891, Missing: 0, Mean: 32.20, StdDev: 49.69, Min: 0,
				Q1: 7.91, Median: 14.45, Q3: 31, Max: 512.33, Skewness: 4.79, Outliers: 116},
		},
	}
}

func outcomeChart(key, title string, labels []string, perished, survived []float64) Chart {
	return Chart{
		Key:    "outcome-" + key,
		Title:  title,
		Kind:   KindBar,
		Labels: labels,
		Series: []Series{
			{Name: "Perished", Values: perished, Color: ColorPerished},
			{Name: "Survived", Values: survived, Color: ColorSurvived},
		},
	}
}

func rateChart(key, title string, kind Kind, labels []string, values []float64, color string, pointColors []string) Chart {
	return Chart{
		Key:     key,
		Title:   title,
		Kind:    kind,
		Labels:  labels,
		Percent: true,
		Series:  []Series{{Name: "Survival Rate (%)", Values: values, Color: color, PointColors: pointColors}},
	}
}

func rateCharts(sex, class, age, fare, port, family []float64) []Chart {
	return []Chart{
		rateChart("sex", "Survival Rate by Sex", KindBar, sexLabels, sex, "", []string{"#ec4899", "#3b82f6"}),
		rateChart("class", "Survival Rate by Class", KindBar, classLabels, class, "", []string{"#eab308", "#f59e0b", "#dc2626"}),
		rateChart("age", "Survival Rate by Age", KindLine, rateAgeLabels, age, "#3b82f6", nil),
		rateChart("fare", "Survival Rate by Fare", KindLine, fareLabels, fare, "#10b981", nil),
		rateChart("port", "Survival Rate by Port of Embarkation", KindBar, portLabels, port, "", []string{"#6366f1", "#8b5cf6", "#a855f7"}),
		rateChart("family", "Survival Rate by Family Size", KindBar, familyLabels, family, "", []string{"#a855f7", "#c084fc", "#d8b4fe", "#e9d5ff"}),
	}
}
