package genotype

import "math"

// Chromosome is one candidate solution in the NSGA-II population. Obj is set once Factory has evaluated Gene; Rank and Crowding are
// assigned fresh every generation by the non-dominated sort and crowding
// pass and must not be trusted across generations.
type Chromosome struct {
	Generation uint32
	Gene       Gene
	Obj        []float64
	Rank       int
	Crowding   float64
}

// Evaluated reports whether Factory has already filled in Obj.
func (c *Chromosome) Evaluated() bool {
	return c.Obj != nil
}

// Dominates reports whether c dominates other in the Pareto sense: every
// objective of c is <= the corresponding objective of other, and at least
// one is strictly less.
func (c *Chromosome) Dominates(other *Chromosome) bool {
	strictlyBetter := false
	for i := range c.Obj {
		if c.Obj[i] > other.Obj[i] {
			return false
		}
		if c.Obj[i] < other.Obj[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// TournamentBetter reports whether c wins a binary tournament against
// other: lower rank wins; on a rank tie, higher crowding distance wins.
func (c *Chromosome) TournamentBetter(other *Chromosome) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Crowding > other.Crowding
}

// InfiniteCrowding is the crowding distance assigned to front-boundary
// chromosomes for each objective.
const InfiniteCrowding = math.MaxFloat64
