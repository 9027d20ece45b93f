package binning

import (
	"math"

	"groupstat/domain/grouped"
	"groupstat/internal/errors"

	"github.com/montanaflynn/stats"
)

// RawSummary holds ungrouped statistics of the observations that were binned,
// for comparison against the grouped estimates.
type RawSummary struct {
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}

// MaxClasses bounds the number of classes Bin will produce
const MaxClasses = 10000

// SturgesClasses returns ceil(log2 n) + 1, the default number of classes for n observations
func SturgesClasses(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// Bin groups raw observations into equal-width classes spanning [min, max].
// classes <= 0 selects Sturges' rule. Each class is closed on the left and
// open on the right, except the last which also includes max. A sample with
// a single distinct value v yields the one class [v-0.5, v+0.5].
func Bin(values []float64, classes int) ([]grouped.IntervalRow, error) {
	if err := validate(values); err != nil {
		return nil, err
	}
	if classes > MaxClasses {
		return nil, errors.ValidationErrorf("classes must be at most %d", MaxClasses)
	}

	data := stats.Float64Data(values)
	min, err := data.Min()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find minimum")
	}
	max, err := data.Max()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find maximum")
	}

	if min == max {
		return []grouped.IntervalRow{
			grouped.NewIntervalRow(min-0.5, max+0.5, float64(len(values))),
		}, nil
	}

	if classes <= 0 {
		classes = SturgesClasses(len(values))
	}
	width := (max - min) / float64(classes)

	rows := make([]grouped.IntervalRow, classes)
	for i := range rows {
		lower := min + float64(i)*width
		upper := min + float64(i+1)*width
		if i == classes-1 {
			upper = max
		}
		rows[i] = grouped.NewIntervalRow(lower, upper, 0)
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= classes {
			idx = classes - 1
		}
		rows[idx].Frequency++
	}

	return rows, nil
}

// Summarize computes population statistics of the raw observations
func Summarize(values []float64) (*RawSummary, error) {
	if err := validate(values); err != nil {
		return nil, err
	}

	data := stats.Float64Data(values)
	summary := &RawSummary{Count: len(values)}

	var err error
	if summary.Min, err = data.Min(); err != nil {
		return nil, errors.Wrap(err, "failed to find minimum")
	}
	if summary.Max, err = data.Max(); err != nil {
		return nil, errors.Wrap(err, "failed to find maximum")
	}
	if summary.Mean, err = data.Mean(); err != nil {
		return nil, errors.Wrap(err, "failed to compute mean")
	}
	if summary.Median, err = data.Median(); err != nil {
		return nil, errors.Wrap(err, "failed to compute median")
	}
	if summary.Variance, err = data.PopulationVariance(); err != nil {
		return nil, errors.Wrap(err, "failed to compute variance")
	}
	if summary.StdDev, err = data.StandardDeviationPopulation(); err != nil {
		return nil, errors.Wrap(err, "failed to compute standard deviation")
	}

	return summary, nil
}

func validate(values []float64) error {
	if len(values) == 0 {
		return errors.ValidationError("no values to bin")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.ValidationErrorf("value %d is not a finite number", i+1)
		}
	}
	return nil
}
