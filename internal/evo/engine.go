package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"evacsim/internal/genotype"
	"evacsim/internal/model"
)

// EngineConfig parameterizes one NSGA-II run.
type EngineConfig struct {
	PopSize            int
	MaxGenerations     int
	CrossoverRate      float64
	MutationRate       float64
	NumGenes           int
	UseThreeObjectives bool
	// Workers bounds how many chromosomes within one generation are
	// decoded concurrently. <= 1 evaluates
	// sequentially.
	Workers int
}

// Progress reports per-generation visibility for callers that want to
// log or chart search convergence as it happens.
type Progress struct {
	Generation     int
	PopulationSize int
	FrontSize      int
}

// Engine runs the NSGA-II search loop over a Factory.
type Engine struct {
	cfg      EngineConfig
	factory  *Factory
	rng      *rand.Rand
	onProgress func(Progress)
}

// NewEngine constructs an Engine. rng drives every selection/variation
// random choice in the search loop — never Simulator movement, which
// uses its own simulation_rng inside Factory.
func NewEngine(cfg EngineConfig, factory *Factory, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, factory: factory, rng: rng}
}

// OnProgress registers a callback invoked once per completed generation.
func (e *Engine) OnProgress(cb func(Progress)) {
	e.onProgress = cb
}

// Run executes the NSGA-II loop and returns the final
// Pareto front F1. If ctx is cancelled mid-run, Run returns the
// best-known front at the most recently completed generation, wrapped
// with model.ErrCancelled.
func (e *Engine) Run(ctx context.Context) ([]*genotype.Chromosome, error) {
	if e.cfg.PopSize <= 0 || e.cfg.NumGenes <= 0 {
		return nil, fmt.Errorf("evo: %w: pop size and gene length must be positive", model.ErrInvalidConfig)
	}

	pop := make([]*genotype.Chromosome, e.cfg.PopSize)
	for i := range pop {
		pop[i] = &genotype.Chromosome{Gene: genotype.Random(e.rng, e.cfg.NumGenes)}
	}
	if err := e.evaluate(pop); err != nil {
		return nil, err
	}
	e.rankAndCrowd(pop)

	cut := genotype.CutPoint(e.cfg.NumGenes)

	for gen := 1; gen <= e.cfg.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			front := nonDominatedSort(pop)[0]
			return front, fmt.Errorf("evo: %w", model.ErrCancelled)
		default:
		}

		offspring := e.produceOffspring(pop, cut, gen)
		if err := e.evaluate(offspring); err != nil {
			return nil, err
		}

		union := make([]*genotype.Chromosome, 0, len(pop)+len(offspring))
		union = append(union, pop...)
		union = append(union, offspring...)

		fronts := nonDominatedSort(union)
		for _, front := range fronts {
			assignCrowding(front)
		}
		pop = nextGeneration(fronts, e.cfg.PopSize)

		if e.onProgress != nil {
			e.onProgress(Progress{Generation: gen, PopulationSize: len(pop), FrontSize: len(fronts[0])})
		}
	}

	finalFronts := nonDominatedSort(pop)
	return finalFronts[0], nil
}

// evaluate decodes every not-yet-evaluated chromosome in chroms. With
// Workers <= 1 it does so sequentially; otherwise it fans the pending
// chromosomes out over a bounded worker pool of jobs and results
// channels, since Factory.Decode is cache-coalesced and safe for
// concurrent callers.
func (e *Engine) evaluate(chroms []*genotype.Chromosome) error {
	pending := make([]*genotype.Chromosome, 0, len(chroms))
	for _, c := range chroms {
		if !c.Evaluated() {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	workers := e.cfg.Workers
	if workers > len(pending) {
		workers = len(pending)
	}
	if workers <= 1 {
		for _, c := range pending {
			if err := e.evaluateOne(c); err != nil {
				return err
			}
		}
		return nil
	}

	jobs := make(chan *genotype.Chromosome)
	errs := make(chan error, len(pending))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				errs <- e.evaluateOne(c)
			}
		}()
	}
	for _, c := range pending {
		jobs <- c
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) evaluateOne(c *genotype.Chromosome) error {
	entry, err := e.factory.Decode(c.Gene)
	if err != nil {
		return err
	}
	if e.cfg.UseThreeObjectives {
		c.Obj = []float64{float64(entry.NumDoors), entry.Iterations, entry.Distance}
	} else {
		c.Obj = []float64{float64(entry.NumDoors), entry.Distance}
	}
	return nil
}

func (e *Engine) produceOffspring(pop []*genotype.Chromosome, cut int, generation int) []*genotype.Chromosome {
	offspring := make([]*genotype.Chromosome, 0, e.cfg.PopSize)
	for len(offspring) < e.cfg.PopSize {
		p1 := e.tournamentSelect(pop)
		p2 := e.tournamentSelect(pop)

		var g1, g2 genotype.Gene
		if e.rng.Float64() < e.cfg.CrossoverRate {
			g1, g2 = genotype.Crossover(p1.Gene, p2.Gene, cut)
		} else {
			g1, g2 = p1.Gene.Clone(), p2.Gene.Clone()
		}
		if e.rng.Float64() < e.cfg.MutationRate {
			g1 = genotype.Mutate(e.rng, g1)
		}
		if e.rng.Float64() < e.cfg.MutationRate {
			g2 = genotype.Mutate(e.rng, g2)
		}

		offspring = append(offspring,
			&genotype.Chromosome{Generation: uint32(generation), Gene: g1},
			&genotype.Chromosome{Generation: uint32(generation), Gene: g2},
		)
	}
	return offspring[:e.cfg.PopSize]
}

func (e *Engine) tournamentSelect(pop []*genotype.Chromosome) *genotype.Chromosome {
	a := pop[e.rng.Intn(len(pop))]
	b := pop[e.rng.Intn(len(pop))]
	if a.TournamentBetter(b) {
		return a
	}
	return b
}

func (e *Engine) rankAndCrowd(pop []*genotype.Chromosome) {
	fronts := nonDominatedSort(pop)
	for _, front := range fronts {
		assignCrowding(front)
	}
}

// nextGeneration builds population P' of size popSize: whole fronts are
// added while they fit; the first front that would overflow is sorted by
// crowding distance descending and truncated.
func nextGeneration(fronts [][]*genotype.Chromosome, popSize int) []*genotype.Chromosome {
	next := make([]*genotype.Chromosome, 0, popSize)
	for _, front := range fronts {
		if len(next)+len(front) <= popSize {
			next = append(next, front...)
			continue
		}
		remaining := popSize - len(next)
		sort.Slice(front, func(a, b int) bool { return front[a].Crowding > front[b].Crowding })
		next = append(next, front[:remaining]...)
		break
	}
	return next
}
