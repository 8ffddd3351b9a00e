// Package genotype holds the Gene/Chromosome representation and variation
// operators (cut-point crossover, bit-flip mutation) that the NSGA-II
// engine and brute-force enumerator both build on.
package genotype

import "math/rand"

// Gene is a fixed-length selection over candidate DoorSlots: position i is
// true iff slot i is active.
type Gene []bool

// Random draws a Gene of length n with each bit independently true with
// probability 0.5.
func Random(rng *rand.Rand, n int) Gene {
	g := make(Gene, n)
	for i := range g {
		g[i] = rng.Float64() < 0.5
	}
	return g
}

// Clone returns an independent copy.
func (g Gene) Clone() Gene {
	out := make(Gene, len(g))
	copy(out, g)
	return out
}

// PopCount returns the number of active bits.
func (g Gene) PopCount() int {
	n := 0
	for _, b := range g {
		if b {
			n++
		}
	}
	return n
}

// Equal reports bit-for-bit equality, used by the cache key and by tests
// comparing Pareto fronts.
func (g Gene) Equal(other Gene) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// CutPoint returns floor(0.3*n), the fixed crossover cut index for genes
// of length n. It is computed once per length and reused for
// every crossover call on genes of that length — not re-derived per call.
func CutPoint(n int) int {
	return int(0.3 * float64(n))
}

// Crossover swaps a and b's suffixes from cut onward, producing two
// offspring: offspring[0] matches a on [0,cut) and b on [cut,n); offspring
// [1] is the complement.
func Crossover(a, b Gene, cut int) (Gene, Gene) {
	n := len(a)
	child1 := make(Gene, n)
	child2 := make(Gene, n)
	copy(child1[:cut], a[:cut])
	copy(child1[cut:], b[cut:])
	copy(child2[:cut], b[:cut])
	copy(child2[cut:], a[cut:])
	return child1, child2
}

// bitFlipProb is the per-bit flip probability applied once mutation has
// been triggered for a gene.
const bitFlipProb = 0.1

// Mutate returns a copy of g with each bit independently flipped with
// probability bitFlipProb. Callers gate the call itself on the outer
// mutation probability µ; Mutate always flips at the inner rate once
// called.
func Mutate(rng *rand.Rand, g Gene) Gene {
	out := g.Clone()
	for i := range out {
		if rng.Float64() < bitFlipProb {
			out[i] = !out[i]
		}
	}
	return out
}
