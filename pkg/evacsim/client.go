// Package evacsim is the public facade over the engine: map text and a
// JSON individuals/experiment/NSGA configuration in, Pareto-front Result
// records out. It wraps internal/driver behind a small, stable API for
// callers who want the engine as a library rather than a CLI.
package evacsim

import (
	"context"
	"fmt"

	"evacsim/internal/driver"
	"evacsim/internal/evo"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
	"evacsim/internal/storage"
)

// Options configures a Client.
type Options struct {
	// StoreKind selects the result-persistence backend: "" or "memory"
	// (always available) or "sqlite" (requires a build with -tags sqlite).
	StoreKind string
	// DBPath is the sqlite file path, ignored for the memory backend.
	DBPath string
	// Workers bounds per-generation NSGA-II evaluation concurrency;
	// 0 or 1 means sequential.
	Workers int
}

// Client is the facade entry point. Construct with New, Init once, then
// call Simulate/OptimizeNSGA/OptimizeBrute; Close releases the store.
type Client struct {
	driver *driver.Driver
	store  storage.Store
}

// New constructs a Client with opts' backend, not yet initialized.
func New(opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("evacsim: %w", err)
	}
	return &Client{
		driver: driver.New(store, opts.Workers),
		store:  store,
	}, nil
}

// Init prepares the backing store for use; call once before any run.
func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Close releases the backing store, a no-op for the memory backend.
func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// MapConfig bundles the parsed StructureMap and its candidate door slots
// so every engine-facing call shares one parse of the map text.
type MapConfig struct {
	Structure  *mapio.StructureMap
	Candidates []model.DoorSlot
}

// LoadMap parses mapText and discovers its
// candidate door slots in one step.
func LoadMap(mapText string) (MapConfig, error) {
	structure, err := mapio.Load(mapText)
	if err != nil {
		return MapConfig{}, fmt.Errorf("evacsim: %w", err)
	}
	return MapConfig{Structure: structure, Candidates: mapio.DiscoverSlots(structure)}, nil
}

// Simulate runs one Scenario/Simulator pass over gene's door selection.
func (c *Client) Simulate(m MapConfig, gene []bool, individuals []model.IndividualSpec, exp driver.ExperimentConfig) (model.SimResult, error) {
	return c.driver.Simulate(m.Structure, m.Candidates, gene, individuals, exp)
}

// OptimizeNSGA runs the NSGA-II search to completion over m's candidate
// doors. seed drives NSGA-II's own
// selection/variation choices, independent of exp's scenario/simulation
// seeds.
func (c *Client) OptimizeNSGA(ctx context.Context, m MapConfig, individuals []model.IndividualSpec, exp driver.ExperimentConfig, nsga driver.NSGAConfig, seed int64) (driver.RunSummary, error) {
	return c.driver.OptimizeNSGA(ctx, exp, nsga, evo.Config{
		Structure:          m.Structure,
		Candidates:         m.Candidates,
		Individuals:        individuals,
		ScenarioSeeds:      exp.ScenarioSeed,
		SimulationSeed:     exp.SimulationSeed,
		UseThreeObjectives: exp.UseThreeObjectives,
	}, seed)
}

// OptimizeBrute enumerates every candidate gene over m's candidate doors.
func (c *Client) OptimizeBrute(ctx context.Context, m MapConfig, individuals []model.IndividualSpec, exp driver.ExperimentConfig) (driver.RunSummary, error) {
	return c.driver.OptimizeBrute(ctx, exp, evo.Config{
		Structure:          m.Structure,
		Candidates:         m.Candidates,
		Individuals:        individuals,
		ScenarioSeeds:      exp.ScenarioSeed,
		SimulationSeed:     exp.SimulationSeed,
		UseThreeObjectives: exp.UseThreeObjectives,
	})
}
