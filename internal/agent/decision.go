package agent

import (
	"math"
	"math/rand"

	"evacsim/internal/fields"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

// Candidate is one cell the individual could move to this sub-step, with
// its attraction score already computed.
type Candidate struct {
	Row, Col int
	Dir      model.Direction
	Stay     bool
	Score    float64
}

// Fields bundles the four maps an individual senses. It never owns them —
// the enclosing Scenario does.
type Fields struct {
	Structure *mapio.StructureMap
	Wall      *fields.WallMap
	Static    *fields.StaticMap
	Dynamic   *fields.DynamicMap
	Crowd     *fields.CrowdMap
}

// Candidates returns the individual's allowed cells this sub-step, in the
// fixed 8-neighborhood traversal order followed by "stay", with each
// cell's attraction score already computed. A neighbor is
// disallowed when it is out of bounds, its structure code is
// Wall/Object/Void, or it is occupied by another individual; the current
// cell is always allowed.
//
// Attraction deviates from literal sign on the static-field
// term: StaticMap is explicitly a *distance* to the nearest
// door (seeded at 1, growing outward), so a positive KS weight on
// +staticField would push individuals away from doors instead of toward
// them. The static term is applied with a negated sign (-KS·static) so
// positive KS pulls individuals downhill toward lower distance, matching
// the exp(-ks*distance) floor-field convention evacuation models use.
// The wall term keeps the opposite sign (exp(+kw*wallDistance)): WallMap
// is also a distance (from the nearest wall), so +KW rewards standing
// farther from walls.
func (ind *Individual) Candidates(f Fields) []Candidate {
	candidates := make([]Candidate, 0, 9)
	for d := model.Direction(0); d < 8; d++ {
		r, c := ind.Row+model.DRow[d], ind.Col+model.DCol[d]
		if !f.Structure.InBounds(r, c) {
			continue
		}
		switch f.Structure.NormalizedAt(r, c) {
		case model.Wall, model.Object, model.Void:
			continue
		}
		if !f.Crowd.IsEmpty(r, c) {
			continue
		}
		candidates = append(candidates, Candidate{
			Row: r, Col: c, Dir: d,
			Score: ind.attraction(f, r, c, d),
		})
	}
	candidates = append(candidates, Candidate{
		Row: ind.Row, Col: ind.Col, Stay: true,
		Score: ind.attraction(f, ind.Row, ind.Col, 0),
	})
	return candidates
}

func (ind *Individual) attraction(f Fields, r, c int, dir model.Direction) float64 {
	inertia := 0.0
	if last, ok := ind.LastDirection(); ok && last == dir {
		inertia = 1
	}
	return -ind.KS*f.Static.Value(r, c) + ind.KW*f.Wall.Value(r, c) - ind.KD*f.Dynamic.Value(r, c) + ind.KI*inertia
}

// Softmax samples one candidate with probability proportional to
// exp(score). Ties in the sampled value resolve to the
// earliest candidate in traversal order, since candidates are scanned in
// that fixed order while accumulating probability mass.
func Softmax(rng *rand.Rand, candidates []Candidate) Candidate {
	maxScore := candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		w := math.Exp(c.Score - maxScore)
		weights[i] = w
		total += w
	}

	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

// Best returns the highest-scoring candidate, earliest in traversal order
// on ties. Used when a losing individual in a collision must re-evaluate
// deterministically rather than re-sample.
func Best(candidates []Candidate) Candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}
