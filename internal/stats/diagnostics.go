// Package stats turns a completed NSGA-II/brute-force run into the
// reporting shapes the CLI and pkg/evacsim facade hand back to callers:
// per-generation diagnostics and uncoded Pareto-front Result records.
package stats

import (
	"evacsim/internal/evo"
	"evacsim/internal/genotype"
	"evacsim/internal/model"
)

// GenerationDiagnostics is one generation's worth of evo.Progress,
// retained for the run summary.
type GenerationDiagnostics struct {
	Generation     int `json:"generation"`
	PopulationSize int `json:"population_size"`
	FrontSize      int `json:"front_size"`
}

// Recorder accumulates a run's per-generation diagnostics via the
// callback Engine.OnProgress expects.
type Recorder struct {
	entries []GenerationDiagnostics
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe is passed to Engine.OnProgress.
func (r *Recorder) Observe(p evo.Progress) {
	r.entries = append(r.entries, GenerationDiagnostics{
		Generation:     p.Generation,
		PopulationSize: p.PopulationSize,
		FrontSize:      p.FrontSize,
	})
}

// Entries returns the accumulated diagnostics in generation order.
func (r *Recorder) Entries() []GenerationDiagnostics {
	return r.entries
}

// FrontSizeByGeneration extracts just the F1-size series, the
// diagnostic a CLI progress line or plot would use most often.
func (r *Recorder) FrontSizeByGeneration() []int {
	sizes := make([]int, len(r.entries))
	for i, e := range r.entries {
		sizes[i] = e.FrontSize
	}
	return sizes
}

// BuildResults decodes a Pareto front's chromosomes into the external
// Result record shape, uncoding each gene's active bits into
// candidates' grouped door slots. The uncode step happens once per
// front member here, at export time, never inside Factory.evaluate's
// hot path. factory supplies the Iterations/Distance pair straight from
// its cache (a guaranteed hit, since Engine already evaluated every
// member of front) so the result carries Iterations even when
// UseThreeObjectives left it out of Obj.
func BuildResults(front []*genotype.Chromosome, candidates []model.DoorSlot, factory *evo.Factory) ([]model.Result, error) {
	results := make([]model.Result, len(front))
	for i, c := range front {
		entry, err := factory.Decode(c.Gene)
		if err != nil {
			return nil, err
		}
		results[i] = model.Result{
			Gene:                 []bool(c.Gene.Clone()),
			DoorPositionsGrouped: uncode(c.Gene, candidates),
			Objectives:           append([]float64(nil), c.Obj...),
			NumDoors:             entry.NumDoors,
			Iterations:           entry.Iterations,
			Distance:             entry.Distance,
			Generation:           c.Generation,
		}
	}
	return results, nil
}

// uncode returns the subset of candidates whose gene bit is set, in
// candidate order — the human-readable counterpart to the raw gene
// bitstring.
func uncode(gene genotype.Gene, candidates []model.DoorSlot) []model.DoorSlot {
	var grouped []model.DoorSlot
	for i, active := range gene {
		if !active || i >= len(candidates) {
			continue
		}
		grouped = append(grouped, candidates[i])
	}
	return grouped
}
