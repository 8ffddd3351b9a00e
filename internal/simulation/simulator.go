package simulation

import (
	"math/rand"
	"sort"

	"evacsim/internal/agent"
	"evacsim/internal/fields"
	"evacsim/internal/model"
)

// Run executes one simulation over scenario using simulationRNG to drive
// every movement choice.
// CrowdMap, DynamicMap, and every individual's mutable state (position,
// evacuated flag, steps, distance, last direction) are built fresh here —
// only WallMap, StaticMap, and the initial placements carried on scenario
// survive across simulation seeds.
func Run(scenario *Scenario, simulationRNG *rand.Rand) model.SimResult {
	rows, cols := scenario.Structure.Rows(), scenario.Structure.Cols()
	crowd := fields.NewCrowdMap(rows, cols)
	individuals := make([]*agent.Individual, len(scenario.placements))
	for i, p := range scenario.placements {
		crowd.Place(i, p.row, p.col)
		individuals[i] = agent.New(p.label, p.row, p.col, p.speed, p.ks, p.kw, p.kd, p.ki)
	}

	dynamic := fields.NewDynamicMap(rows, cols)
	f := agent.Fields{Structure: scenario.Structure, Wall: scenario.Wall, Static: scenario.Static, Dynamic: dynamic, Crowd: crowd}

	iteration := 0
	for {
		if allEvacuated(individuals) {
			return model.SimResult{Iterations: iteration, TotalDistance: totalDistance(individuals), EvacuatedCount: len(individuals), Capped: false}
		}
		if iteration >= model.MaxIterations {
			return model.SimResult{Iterations: iteration, TotalDistance: totalDistance(individuals), EvacuatedCount: countEvacuated(individuals), Capped: true}
		}

		dynamic.Decay(model.DiffusionDecayAlfa)
		dynamic.Diffuse(model.DiffusionDecaySigma)

		priorPositions := collectPositions(individuals)
		stepIteration(individuals, f, simulationRNG)
		dynamic.Deposit(priorPositions)

		iteration++
	}
}

// stepIteration moves every not-yet-evacuated individual up to its speed
// sub-steps. Sub-steps are interleaved across
// individuals — all individuals tentatively choose a target for sub-step
// k before any of them commits — so that the collision-resolution rule
// (first claim in ascending-staticField order wins; losers re-evaluate
// deterministically) has contested targets to resolve.
func stepIteration(individuals []*agent.Individual, f agent.Fields, rng *rand.Rand) {
	maxSpeed := 0
	for _, ind := range individuals {
		if ind.Speed > maxSpeed {
			maxSpeed = ind.Speed
		}
	}

	for substep := 0; substep < maxSpeed; substep++ {
		order := movementOrder(individuals, substep, f.Static)
		if len(order) == 0 {
			break
		}

		tentative := make(map[int]agent.Candidate, len(order))
		for _, idx := range order {
			tentative[idx] = agent.Softmax(rng, individuals[idx].Candidates(f))
		}

		claimed := make(map[[2]int]bool, len(order))
		for _, idx := range order {
			ind := individuals[idx]
			pick := tentative[idx]
			if !pick.Stay && claimed[[2]int{pick.Row, pick.Col}] {
				pick = agent.Best(ind.Candidates(f))
			}

			moved := pick.Row != ind.Row || pick.Col != ind.Col
			onDoor := f.Structure.NormalizedAt(pick.Row, pick.Col) == model.Door
			switch {
			case onDoor:
				// An evacuated individual leaves the grid: both its previous
				// cell and the door cell are left empty on the CrowdMap.
				f.Crowd.Move(fields.EmptyOccupant, ind.Row, ind.Col, pick.Row, pick.Col)
			case moved:
				f.Crowd.Move(idx, ind.Row, ind.Col, pick.Row, pick.Col)
			}
			if moved {
				claimed[[2]int{pick.Row, pick.Col}] = true
			}
			ind.Commit(pick.Row, pick.Col, pick.Dir, moved, onDoor)
		}
	}
}

// movementOrder returns the indices of individuals still eligible for
// sub-step `substep` — not yet evacuated, and with enough speed budget —
// sorted by ascending staticField at their current cell, ties broken by
// index.
func movementOrder(individuals []*agent.Individual, substep int, static *fields.StaticMap) []int {
	var order []int
	for i, ind := range individuals {
		if !ind.Evacuated && substep < ind.Speed {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		sa, sb := static.Value(individuals[ia].Row, individuals[ia].Col), static.Value(individuals[ib].Row, individuals[ib].Col)
		if sa != sb {
			return sa < sb
		}
		return ia < ib
	})
	return order
}

func collectPositions(individuals []*agent.Individual) [][2]int {
	positions := make([][2]int, 0, len(individuals))
	for _, ind := range individuals {
		if !ind.Evacuated {
			positions = append(positions, [2]int{ind.Row, ind.Col})
		}
	}
	return positions
}

func allEvacuated(individuals []*agent.Individual) bool {
	for _, ind := range individuals {
		if !ind.Evacuated {
			return false
		}
	}
	return true
}

func countEvacuated(individuals []*agent.Individual) int {
	n := 0
	for _, ind := range individuals {
		if ind.Evacuated {
			n++
		}
	}
	return n
}

func totalDistance(individuals []*agent.Individual) float64 {
	total := 0.0
	for _, ind := range individuals {
		total += ind.Distance
	}
	return total
}
