package evo

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"evacsim/internal/genotype"
)

// nonDominatedSort partitions pop into fronts F1, F2, ... by Pareto
// dominance, assigning each chromosome's Rank as a side
// effect. The O(N^2*m) comparison loop and the front-peeling queue both
// iterate in population-index order, so ties are resolved deterministically
// by chromosome index.
func nonDominatedSort(pop []*genotype.Chromosome) [][]*genotype.Chromosome {
	n := len(pop)
	dominates := make([][]int, n)
	dominatedCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch {
			case pop[i].Dominates(pop[j]):
				dominates[i] = append(dominates[i], j)
			case pop[j].Dominates(pop[i]):
				dominatedCount[i]++
			}
		}
	}

	var frontsIdx [][]int
	current := make([]int, 0)
	for i := 0; i < n; i++ {
		if dominatedCount[i] == 0 {
			current = append(current, i)
		}
	}

	rank := 0
	for len(current) > 0 {
		for _, i := range current {
			pop[i].Rank = rank
		}
		frontsIdx = append(frontsIdx, current)

		var next []int
		for _, i := range current {
			for _, j := range dominates[i] {
				dominatedCount[j]--
				if dominatedCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
		rank++
	}

	fronts := make([][]*genotype.Chromosome, len(frontsIdx))
	for fi, idxs := range frontsIdx {
		front := make([]*genotype.Chromosome, len(idxs))
		for k, idx := range idxs {
			front[k] = pop[idx]
		}
		fronts[fi] = front
	}
	return fronts
}

// assignCrowding computes each chromosome's crowding distance within its
// front. Boundary elements for any objective get
// genotype.InfiniteCrowding (math.MaxFloat64) and never accumulate
// further contributions, matching the standard NSGA-II
// definition. front is reordered in place by each objective in turn; its
// final order is not meaningful to callers.
func assignCrowding(front []*genotype.Chromosome) {
	n := len(front)
	if n == 0 {
		return
	}
	for _, c := range front {
		c.Crowding = 0
	}
	if n <= 2 {
		for _, c := range front {
			c.Crowding = genotype.InfiniteCrowding
		}
		return
	}

	numObj := len(front[0].Obj)
	for m := 0; m < numObj; m++ {
		sort.Slice(front, func(a, b int) bool { return front[a].Obj[m] < front[b].Obj[m] })

		values := make([]float64, n)
		for i, c := range front {
			values[i] = c.Obj[m]
		}
		spread := floats.Max(values) - floats.Min(values)

		front[0].Crowding = genotype.InfiniteCrowding
		front[n-1].Crowding = genotype.InfiniteCrowding
		for i := 1; i < n-1; i++ {
			if front[i].Crowding == genotype.InfiniteCrowding {
				continue
			}
			if spread == 0 {
				continue // 0/0 contributes 0
			}
			front[i].Crowding += (front[i+1].Obj[m] - front[i-1].Obj[m]) / spread
		}
	}
}
