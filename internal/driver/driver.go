// Package driver is the top-level orchestrator that turns an
// ExperimentConfig/NSGAConfig plus a map and individuals descriptor into
// a stored, uncoded run result — the piece a CLI or another Go program
// drives directly.
package driver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"evacsim/internal/bruteforce"
	"evacsim/internal/evo"
	"evacsim/internal/genotype"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
	"evacsim/internal/rngstream"
	"evacsim/internal/simulation"
	"evacsim/internal/stats"
	"evacsim/internal/storage"
)

// Driver ties a result store to the evaluation engines. Workers bounds
// NSGA-II's per-generation evaluation fan-out; 0 or 1 means
// sequential.
type Driver struct {
	Store   storage.Store
	Workers int
}

// New constructs a Driver over store.
func New(store storage.Store, workers int) *Driver {
	return &Driver{Store: store, Workers: workers}
}

// RunSummary is one driver command's outcome: the uncoded Pareto front
// plus the per-generation diagnostics NSGA-II produced (empty for
// brute-force, which has no generations).
type RunSummary struct {
	RunID       string                        `json:"run_id"`
	Experiment  string                        `json:"experiment"`
	Algorithm   string                        `json:"algorithm"`
	Front       []model.Result                `json:"front"`
	Diagnostics []stats.GenerationDiagnostics `json:"diagnostics,omitempty"`
	Summary     stats.FrontSummary            `json:"summary"`
}

// Simulate runs a single Scenario/Simulator pass over the given door
// selection and returns its logical outcome. It uses the first entry of
// exp.ScenarioSeed and exp.SimulationSeed directly; there is no
// gene/cache/Pareto-front machinery involved, just one deterministic run.
func (d *Driver) Simulate(structure *mapio.StructureMap, candidates []model.DoorSlot, gene []bool, individuals []model.IndividualSpec, exp ExperimentConfig) (model.SimResult, error) {
	if err := exp.Validate(); err != nil {
		return model.SimResult{}, err
	}

	streams := rngstream.New(exp.ScenarioSeed[0], exp.SimulationSeed)
	scenario, err := simulation.Build(structure, candidates, gene, individuals, streams.Scenario)
	if err != nil {
		return model.SimResult{}, fmt.Errorf("driver: build scenario: %w", err)
	}
	return simulation.Run(scenario, streams.Simulation), nil
}

// OptimizeNSGA runs the NSGA-II engine to completion, uncodes its final
// front, and persists the run.
// On context cancellation it still returns the best-known front along
// with a wrapped model.ErrCancelled, and still persists it.
func (d *Driver) OptimizeNSGA(ctx context.Context, exp ExperimentConfig, nsga NSGAConfig, factoryCfg evo.Config, seed int64) (RunSummary, error) {
	if err := exp.Validate(); err != nil {
		return RunSummary{}, err
	}
	if err := nsga.Validate(); err != nil {
		return RunSummary{}, err
	}

	factory := evo.NewFactory(factoryCfg)
	workers := d.Workers
	if nsga.Workers > 0 {
		workers = nsga.Workers
	}
	engine := evo.NewEngine(evo.EngineConfig{
		PopSize:            nsga.PopulationSize,
		MaxGenerations:     nsga.Generations,
		CrossoverRate:      nsga.CrossoverRate,
		MutationRate:       nsga.MutationRate,
		NumGenes:           len(factoryCfg.Candidates),
		UseThreeObjectives: nsga.UseThreeObjectives,
		Workers:            workers,
	}, factory, rand.New(rand.NewSource(seed)))

	recorder := stats.NewRecorder()
	engine.OnProgress(recorder.Observe)

	front, runErr := engine.Run(ctx)
	if runErr != nil && !errors.Is(runErr, model.ErrCancelled) {
		return RunSummary{}, runErr
	}

	algorithm := "nsga2"
	if nsga.UseThreeObjectives {
		algorithm = "nsga3"
	}
	summary, buildErr := d.finish(ctx, algorithm, exp, factoryCfg.Candidates, factory, front, recorder.Entries())
	if buildErr != nil {
		return RunSummary{}, buildErr
	}
	return summary, runErr
}

// OptimizeBrute enumerates every candidate gene and returns the exact
// Pareto front. numGenes above model.MaxDoors surfaces model.ErrTooLarge
// without evaluating anything.
func (d *Driver) OptimizeBrute(ctx context.Context, exp ExperimentConfig, factoryCfg evo.Config) (RunSummary, error) {
	if err := exp.Validate(); err != nil {
		return RunSummary{}, err
	}

	factory := evo.NewFactory(factoryCfg)
	front, err := bruteforce.Run(factory, len(factoryCfg.Candidates), factoryCfg.UseThreeObjectives)
	if err != nil {
		return RunSummary{}, err
	}

	return d.finish(ctx, "bruteforce", exp, factoryCfg.Candidates, factory, front, nil)
}

func (d *Driver) finish(ctx context.Context, algorithm string, exp ExperimentConfig, candidates []model.DoorSlot, factory *evo.Factory, front []*genotype.Chromosome, diagnostics []stats.GenerationDiagnostics) (RunSummary, error) {
	results, err := stats.BuildResults(front, candidates, factory)
	if err != nil {
		return RunSummary{}, fmt.Errorf("driver: uncode front: %w", err)
	}

	summary := RunSummary{
		RunID:       uuid.NewString(),
		Experiment:  exp.Experiment,
		Algorithm:   algorithm,
		Front:       results,
		Diagnostics: diagnostics,
		Summary:     stats.Summarize(results),
	}

	if d.Store != nil {
		record := storage.RunRecord{
			RunID:      summary.RunID,
			Experiment: summary.Experiment,
			Algorithm:  summary.Algorithm,
			Front:      summary.Front,
		}
		if err := d.Store.SaveRun(ctx, record); err != nil {
			return RunSummary{}, fmt.Errorf("driver: save run: %w", err)
		}
	}

	return summary, nil
}
