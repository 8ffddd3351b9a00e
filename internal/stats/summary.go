package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"evacsim/internal/model"
)

// FrontSummary reports the aggregate shape of a returned Pareto front —
// the CLI's run-summary line, and the numbers a caller would otherwise
// have to recompute by hand over a Result slice.
type FrontSummary struct {
	Members      int
	MinDoors     int
	MaxDoors     int
	MinDistance  float64
	MaxDistance  float64
	MeanDistance float64
}

// Summarize computes a FrontSummary over results. An empty front yields
// the zero value.
func Summarize(results []model.Result) FrontSummary {
	if len(results) == 0 {
		return FrontSummary{}
	}

	doors := make([]float64, len(results))
	distances := make([]float64, len(results))
	for i, r := range results {
		doors[i] = float64(r.NumDoors)
		distances[i] = r.Distance
	}

	return FrontSummary{
		Members:      len(results),
		MinDoors:     int(floats.Min(doors)),
		MaxDoors:     int(floats.Max(doors)),
		MinDistance:  floats.Min(distances),
		MaxDistance:  floats.Max(distances),
		MeanDistance: stat.Mean(distances, nil),
	}
}
