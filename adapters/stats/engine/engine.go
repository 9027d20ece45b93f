package engine

import (
	"math"
	"sort"

	"groupstat/domain/grouped"

	"gonum.org/v1/gonum/floats"
)

// GroupedStatsEngine computes descriptive statistics for grouped frequency data.
// It holds no state, so one engine can serve concurrent callers.
type GroupedStatsEngine struct{}

// NewGroupedStatsEngine creates a new grouped statistics engine
func NewGroupedStatsEngine() *GroupedStatsEngine {
	return &GroupedStatsEngine{}
}

// Compute sorts a copy of rows by lower bound, derives each class midpoint and
// width, and returns the mean, median, mode, population variance and standard
// deviation. The caller's slice is never modified.
func (e *GroupedStatsEngine) Compute(rows []grouped.IntervalRow) (*grouped.StatsResult, error) {
	dataset := grouped.Dataset(rows).Clone()
	sort.SliceStable(dataset, func(i, j int) bool {
		return dataset[i].Lower < dataset[j].Lower
	})

	freqs := dataset.Frequencies()
	n := floats.Sum(freqs)
	if n == 0 {
		return nil, grouped.NewInvalidInputError(grouped.ReasonZeroTotal)
	}
	if !(n > 0) {
		return nil, grouped.NewInvalidInputError(grouped.ReasonNonPositiveTotal)
	}

	for i := range dataset {
		dataset[i].Midpoint = (dataset[i].Lower + dataset[i].Upper) / 2
		dataset[i].Width = dataset[i].Upper - dataset[i].Lower
	}
	midpoints := dataset.Midpoints()

	mean := floats.Dot(freqs, midpoints) / n

	median, err := medianOf(dataset, n)
	if err != nil {
		return nil, err
	}

	variance := populationVariance(freqs, midpoints, mean, n)

	return &grouped.StatsResult{
		Dataset:        dataset,
		TotalFrequency: n,
		Mean:           mean,
		Median:         median,
		Mode:           modeOf(dataset, freqs),
		Variance:       variance,
		StdDev:         math.Sqrt(variance),
	}, nil
}

// medianOf interpolates inside the first class whose cumulative frequency reaches n/2
func medianOf(dataset grouped.Dataset, n float64) (float64, error) {
	half := n / 2
	cf := 0.0
	for _, row := range dataset {
		before := cf
		cf += row.Frequency
		if cf >= half {
			return row.Lower + ((half-before)/row.Frequency)*row.Width, nil
		}
	}
	return 0, grouped.NewInvalidInputError(grouped.ReasonMedianUndetermined)
}

// modeOf interpolates inside the modal class using its neighbours' frequencies.
// Ties on the maximum frequency resolve to the earliest class; a flat peak
// falls back to the modal class midpoint.
func modeOf(dataset grouped.Dataset, freqs []float64) float64 {
	idx := floats.MaxIdx(freqs)
	modal := dataset[idx]

	f1 := modal.Frequency
	f0 := neighbourFrequency(dataset, idx-1)
	f2 := neighbourFrequency(dataset, idx+1)

	denom := (f1 - f0) + (f1 - f2)
	if denom == 0 {
		return modal.Midpoint
	}
	return modal.Lower + ((f1-f0)/denom)*modal.Width
}

func neighbourFrequency(dataset grouped.Dataset, idx int) float64 {
	if idx < 0 || idx >= len(dataset) {
		return 0
	}
	return dataset[idx].Frequency
}

func populationVariance(freqs, midpoints []float64, mean, n float64) float64 {
	squared := make([]float64, len(midpoints))
	for i, x := range midpoints {
		d := x - mean
		squared[i] = d * d
	}
	return floats.Dot(freqs, squared) / n
}
