package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"titanic/adapters/excel"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

var requiredColumns = []string{"Survived", "Pclass", "Sex", "Age", "SibSp", "Parch", "Fare", "Embarked"}

type passengerRow struct {
	survived float64
	pclass   int
	female   bool
	age      float64
	family   int
	fare     float64
	port     string
}

// FromData recomputes every aggregate from a Kaggle-style training table.
// Missing ages and fares are imputed with the median, missing ports with the most common port.
func FromData(data *excel.ExcelData) (Aggregates, error) {
	if !data.HasColumns(requiredColumns...) {
		return Aggregates{}, fmt.Errorf("dataset must contain columns %s", strings.Join(requiredColumns, ", "))
	}

	if len(data.Rows) == 0 {
		return Aggregates{}, fmt.Errorf("dataset has no usable rows")
	}
	rows, knownAges, knownFares, err := parseRows(data)
	if err != nil {
		return Aggregates{}, err
	}

	ageSummary, err := summarize("Age", knownAges, len(rows))
	if err != nil {
		return Aggregates{}, fmt.Errorf("summarizing Age: %w", err)
	}
	fareSummary, err := summarize("Fare", knownFares, len(rows))
	if err != nil {
		return Aggregates{}, fmt.Errorf("summarizing Fare: %w", err)
	}

	sexIdx := func(r passengerRow) int {
		if r.female {
			return 0
		}
		return 1
	}
	classIdx := func(r passengerRow) int { return r.pclass - 1 }
	outcomeAgeIdx := func(r passengerRow) int { return upperBin(r.age, []float64{10, 20, 30, 40, 50}) }
	rateAgeIdx := func(r passengerRow) int { return upperBin(r.age, []float64{10, 20, 30, 40, 50, 60, 70}) }
	fareIdx := func(r passengerRow) int { return lowerBin(r.fare, []float64{10, 50, 100, 200}) }
	portIdx := func(r passengerRow) int { return strings.Index("CQS", r.port) }
	familyIdx := func(r passengerRow) int {
		switch {
		case r.family == 0:
			return 0
		case r.family <= 2:
			return 1
		case r.family <= 4:
			return 2
		default:
			return 3
		}
	}

	sexPerished, sexSurvived := countsBy(rows, 2, sexIdx)
	classPerished, classSurvived := countsBy(rows, 3, classIdx)
	agePerished, ageSurvived := countsBy(rows, 6, outcomeAgeIdx)

	return Aggregates{
		Source: fmt.Sprintf("dataset (%d passengers)", len(rows)),
		Outcomes: []Chart{
			outcomeChart("sex", "Survival by Sex", sexLabels, sexPerished, sexSurvived),
			outcomeChart("class", "Survival by Class", classLabels, classPerished, classSurvived),
			outcomeChart("age", "Survival by Age", outcomeAgeLabels, agePerished, ageSurvived),
		},
		Rates: rateCharts(
			ratesBy(rows, 2, sexIdx),
			ratesBy(rows, 3, classIdx),
			ratesBy(rows, 8, rateAgeIdx),
			ratesBy(rows, 5, fareIdx),
			ratesBy(rows, 3, portIdx),
			ratesBy(rows, 4, familyIdx),
		),
		Summaries: []ColumnSummary{ageSummary, fareSummary},
	}, nil
}

func parseRows(data *excel.ExcelData) (rows []passengerRow, knownAges, knownFares []float64, err error) {
	knownAges = make([]float64, 0, len(data.Rows))
	knownFares = make([]float64, 0, len(data.Rows))
	portCounts := map[string]int{}

	rows = make([]passengerRow, 0, len(data.Rows))
	ageMissing := make([]bool, 0, len(data.Rows))
	fareMissing := make([]bool, 0, len(data.Rows))

	for i, raw := range data.Rows {
		survived, err := strconv.Atoi(raw["Survived"])
		if err != nil || (survived != 0 && survived != 1) {
			return nil, nil, nil, fmt.Errorf("row %d: invalid Survived value %q", i+2, raw["Survived"])
		}
		pclass, err := strconv.Atoi(raw["Pclass"])
		if err != nil || pclass < 1 || pclass > 3 {
			return nil, nil, nil, fmt.Errorf("row %d: invalid Pclass value %q", i+2, raw["Pclass"])
		}
		sibsp, _ := strconv.Atoi(raw["SibSp"])
		parch, _ := strconv.Atoi(raw["Parch"])

		r := passengerRow{
			survived: float64(survived),
			pclass:   pclass,
			female:   strings.EqualFold(raw["Sex"], "female"),
			family:   sibsp + parch,
			port:     strings.ToUpper(raw["Embarked"]),
		}

		age, ageErr := strconv.ParseFloat(raw["Age"], 64)
		if ageErr == nil {
			r.age = age
			knownAges = append(knownAges, age)
		}
		fare, fareErr := strconv.ParseFloat(raw["Fare"], 64)
		if fareErr == nil {
			r.fare = fare
			knownFares = append(knownFares, fare)
		}
		if r.port != "" {
			portCounts[r.port]++
		}

		rows = append(rows, r)
		ageMissing = append(ageMissing, ageErr != nil)
		fareMissing = append(fareMissing, fareErr != nil)
	}

	medianAge, err := stats.Median(knownAges)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("no usable Age values: %w", err)
	}
	medianFare, err := stats.Median(knownFares)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("no usable Fare values: %w", err)
	}
	modePort := mostCommon(portCounts)

	for i := range rows {
		if ageMissing[i] {
			rows[i].age = medianAge
		}
		if fareMissing[i] {
			rows[i].fare = medianFare
		}
		if rows[i].port == "" {
			rows[i].port = modePort
		}
	}
	return rows, knownAges, knownFares, nil
}

func mostCommon(counts map[string]int) string {
	best, bestCount := "S", -1
	for _, port := range []string{"S", "C", "Q"} {
		if counts[port] > bestCount {
			best, bestCount = port, counts[port]
		}
	}
	return best
}

// upperBin places v in the first bin whose inclusive upper edge is >= v
func upperBin(v float64, edges []float64) int {
	for i, edge := range edges {
		if v <= edge {
			return i
		}
	}
	return len(edges)
}

// lowerBin places v in the first bin whose exclusive upper edge is > v
func lowerBin(v float64, edges []float64) int {
	for i, edge := range edges {
		if v < edge {
			return i
		}
	}
	return len(edges)
}

func countsBy(rows []passengerRow, bins int, idx func(passengerRow) int) (perished, survived []float64) {
	perished = make([]float64, bins)
	survived = make([]float64, bins)
	for _, r := range rows {
		i := idx(r)
		if i < 0 || i >= bins {
			continue
		}
		if r.survived == 1 {
			survived[i]++
		} else {
			perished[i]++
		}
	}
	return perished, survived
}

func ratesBy(rows []passengerRow, bins int, idx func(passengerRow) int) []float64 {
	outcomes := make([][]float64, bins)
	for _, r := range rows {
		i := idx(r)
		if i < 0 || i >= bins {
			continue
		}
		outcomes[i] = append(outcomes[i], r.survived)
	}

	rates := make([]float64, bins)
	for i, o := range outcomes {
		if len(o) == 0 {
			continue
		}
		rates[i] = math.Round(stat.Mean(o, nil) * 100)
	}
	return rates
}
