// Package evo implements the Factory (gene evaluation with cache)
// and the NSGA-II search loop.
package evo

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"gonum.org/v1/gonum/stat"

	"evacsim/internal/evalcache"
	"evacsim/internal/genotype"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
	"evacsim/internal/rngstream"
	"evacsim/internal/simulation"
)

// Config is the immutable experiment configuration a Factory evaluates
// genes against. Its Hash feeds evalcache's
// invalidation rule.
type Config struct {
	Structure          *mapio.StructureMap
	Candidates         []model.DoorSlot
	Individuals        []model.IndividualSpec
	ScenarioSeeds      []uint64
	SimulationSeed     uint64
	UseThreeObjectives bool
}

// hashable is Config's canonical, order-sensitive JSON projection — the
// digest input. Structure is hashed by its text form rather than its
// internal grid representation, so two Configs built from identical map
// text always hash identically regardless of how StructureMap was built.
type hashable struct {
	MapText        string               `json:"map_text"`
	Candidates     []model.DoorSlot     `json:"candidates"`
	Individuals    []model.IndividualSpec `json:"individuals"`
	ScenarioSeeds  []uint64             `json:"scenario_seeds"`
	SimulationSeed uint64               `json:"simulation_seed"`
	ThreeObj       bool                 `json:"three_objectives"`
}

// Hash returns a stable hex digest of cfg, used to invalidate the
// evaluation cache whenever the experiment config changes.
func (cfg Config) Hash() string {
	h := hashable{
		MapText:        cfg.Structure.Text(),
		Candidates:     cfg.Candidates,
		Individuals:    cfg.Individuals,
		ScenarioSeeds:  cfg.ScenarioSeeds,
		SimulationSeed: cfg.SimulationSeed,
		ThreeObj:       cfg.UseThreeObjectives,
	}
	// json.Marshal on a fixed struct shape with slice fields in
	// declaration order is deterministic enough for a cache-invalidation
	// digest; no floating map iteration is involved.
	b, err := json.Marshal(h)
	if err != nil {
		// Config is built entirely from in-memory value types with no
		// cyclic or unsupported fields, so Marshal cannot fail in practice.
		panic("evo: config hash: " + err.Error())
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Factory decodes genes into (num_doors, iterations, distance) with a
// cache keyed by gene and invalidated on config change.
type Factory struct {
	cfg   Config
	cache *evalcache.Cache
}

// NewFactory constructs a Factory over cfg, with a fresh Cache already
// stamped to cfg's hash.
func NewFactory(cfg Config) *Factory {
	f := &Factory{cfg: cfg, cache: evalcache.New()}
	f.cache.EnsureInstance(cfg.Hash())
	return f
}

// CacheSize reports the number of cached entries, for tests asserting the
// "one Simulator invocation per unique gene" property.
func (f *Factory) CacheSize() int {
	return f.cache.ItemCount()
}

// Decode evaluates gene, using the cache when possible. A gene with
// zero active doors short-circuits to (0, MAX_ITERATIONS, 0.0) without
// touching the cache or running a Scenario/Simulator at all, since a
// sealed room has no possible evacuation to simulate.
func (f *Factory) Decode(gene genotype.Gene) (evalcache.Entry, error) {
	f.cache.EnsureInstance(f.cfg.Hash())

	if gene.PopCount() == 0 {
		return evalcache.Entry{NumDoors: 0, Iterations: float64(model.MaxIterations), Distance: 0}, nil
	}

	return f.cache.GetOrCompute(gene, func() (evalcache.Entry, error) {
		return f.evaluate(gene)
	})
}

func (f *Factory) evaluate(gene genotype.Gene) (evalcache.Entry, error) {
	seeds := f.cfg.ScenarioSeeds
	if len(seeds) == 0 {
		seeds = []uint64{0}
	}

	iters := make([]float64, 0, len(seeds))
	dists := make([]float64, 0, len(seeds))
	for _, seed := range seeds {
		streams := rngstream.New(seed, f.cfg.SimulationSeed)
		scenario, err := simulation.Build(f.cfg.Structure, f.cfg.Candidates, gene, f.cfg.Individuals, streams.Scenario)
		if err != nil {
			return evalcache.Entry{}, err
		}
		result := simulation.Run(scenario, streams.Simulation)
		iters = append(iters, float64(result.Iterations))
		dists = append(dists, result.TotalDistance)
	}

	return evalcache.Entry{
		NumDoors:   gene.PopCount(),
		Iterations: stat.Mean(iters, nil),
		Distance:   stat.Mean(dists, nil),
	}, nil
}
