// Package bruteforce is the alternative search driver: it
// enumerates every candidate gene exhaustively instead of searching with
// NSGA-II, and returns the Pareto front over the full evaluation.
package bruteforce

import (
	"fmt"
	"sort"

	"evacsim/internal/evo"
	"evacsim/internal/genotype"
	"evacsim/internal/model"
)

// Run evaluates every one of the 2^numGenes gene vectors via factory and
// returns the Pareto front, sorted by num_doors ascending then distance
// ascending. numGenes above model.MaxDoors is refused with
// model.ErrTooLarge before any evaluation runs.
func Run(factory *evo.Factory, numGenes int, useThreeObjectives bool) ([]*genotype.Chromosome, error) {
	if numGenes > model.MaxDoors {
		return nil, fmt.Errorf("bruteforce: %w: %d candidate doors exceeds max %d", model.ErrTooLarge, numGenes, model.MaxDoors)
	}
	if numGenes < 0 {
		return nil, fmt.Errorf("bruteforce: %w: negative candidate door count", model.ErrInvalidConfig)
	}

	total := 1 << uint(numGenes)
	all := make([]*genotype.Chromosome, total)
	distances := make([]float64, total)

	for i := 0; i < total; i++ {
		gene := geneFromInt(i, numGenes)
		entry, err := factory.Decode(gene)
		if err != nil {
			return nil, err
		}
		c := &genotype.Chromosome{Gene: gene}
		if useThreeObjectives {
			c.Obj = []float64{float64(entry.NumDoors), entry.Iterations, entry.Distance}
		} else {
			c.Obj = []float64{float64(entry.NumDoors), entry.Distance}
		}
		all[i] = c
		distances[i] = entry.Distance
	}

	frontIdx := paretoFront(all)
	sort.Slice(frontIdx, func(a, b int) bool {
		ia, ib := frontIdx[a], frontIdx[b]
		na, nb := all[ia].Gene.PopCount(), all[ib].Gene.PopCount()
		if na != nb {
			return na < nb
		}
		return distances[ia] < distances[ib]
	})

	front := make([]*genotype.Chromosome, len(frontIdx))
	for k, idx := range frontIdx {
		front[k] = all[idx]
	}
	return front, nil
}

// geneFromInt renders i's low numGenes bits as a Gene, bit b of i
// mapping to gene position b.
func geneFromInt(i, numGenes int) genotype.Gene {
	g := make(genotype.Gene, numGenes)
	for b := 0; b < numGenes; b++ {
		g[b] = (i>>uint(b))&1 == 1
	}
	return g
}

// paretoFront returns the indices of all non-dominated chromosomes in
// all, via pairwise dominance.
func paretoFront(all []*genotype.Chromosome) []int {
	var front []int
	for i, c := range all {
		dominated := false
		for j, other := range all {
			if i == j {
				continue
			}
			if other.Dominates(c) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}
