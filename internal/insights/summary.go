package insights

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes the known values of one numeric column
type ColumnSummary struct {
	Column   string
	Count    int
	Missing  int
	Mean     float64
	StdDev   float64
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Skewness float64
	// Outliers counts values beyond 1.5 IQR of the quartiles.
	Outliers int
}

// summarize computes the summary of values; total includes the rows where the value was missing
func summarize(column string, values []float64, total int) (ColumnSummary, error) {
	s := ColumnSummary{Column: column, Count: len(values), Missing: total - len(values)}

	var err error
	if s.Mean, err = stats.Mean(values); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(values); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(values); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(values); err != nil {
		return s, err
	}
	if s.Q1, err = stats.Percentile(values, 25); err != nil {
		return s, err
	}
	if s.Q3, err = stats.Percentile(values, 75); err != nil {
		return s, err
	}

	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	if len(values) > 2 && s.StdDev > 0 {
		s.Skewness = stat.Skew(values, nil)
	}
	s.Outliers = countOutliers(values, s.Q1, s.Q3)
	return s, nil
}

func countOutliers(values []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	n := 0
	for _, v := range values {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}
