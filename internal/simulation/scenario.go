// Package simulation composes the floor fields and individual set into a
// Scenario and drives one Simulator run over it.
package simulation

import (
	"fmt"
	"math/rand"

	"evacsim/internal/fields"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

// placement is one individual instance's fixed starting parameters,
// flattened out of an model.IndividualSpec's Amount.
type placement struct {
	label          string
	row, col       int
	speed          int
	ks, kw, kd, ki float64
}

// Scenario bundles the maps and individual placements for one set of
// active doors. WallMap and StaticMap, along with
// each individual's initial cell, are fixed once at Build time using the
// scenario RNG; CrowdMap, DynamicMap, and per-individual movement state
// are rebuilt fresh by the Simulator for every simulation seed.
type Scenario struct {
	Structure *mapio.StructureMap
	Doors     []model.DoorSlot
	Wall      *fields.WallMap
	Static    *fields.StaticMap

	placements []placement
}

// Build constructs a Scenario for the given candidate door slots, gene
// (selecting which slots are active), and individual specs, using
// scenarioRNG to drive random placement only — never movement choices,
// per stream-separation rule (rngstream.Streams.Scenario).
//
// A gene with zero active doors still produces a valid Scenario; Factory
// is responsible for short-circuiting that case before ever
// calling Build, since StaticMap has no seed to propagate from.
func Build(structure *mapio.StructureMap, candidates []model.DoorSlot, gene []bool, specs []model.IndividualSpec, scenarioRNG *rand.Rand) (*Scenario, error) {
	if len(gene) != len(candidates) {
		return nil, fmt.Errorf("simulation: %w: gene length %d does not match %d candidate door slots", model.ErrInvalidConfig, len(gene), len(candidates))
	}

	var active []model.DoorSlot
	for i, on := range gene {
		if on {
			active = append(active, candidates[i])
		}
	}

	regenerated := mapio.Regenerate(structure, active)
	wall := fields.DeriveWallMap(regenerated)

	var doorCells [][2]int
	for _, slot := range active {
		doorCells = append(doorCells, slot.Cells()...)
	}
	static := fields.DeriveStaticMap(regenerated, doorCells)

	placements, err := placeIndividuals(regenerated, scenarioRNG, specs)
	if err != nil {
		return nil, err
	}

	return &Scenario{Structure: regenerated, Doors: active, Wall: wall, Static: static, placements: placements}, nil
}

func placeIndividuals(m *mapio.StructureMap, rng *rand.Rand, specs []model.IndividualSpec) ([]placement, error) {
	occupied := fields.NewCrowdMap(m.Rows(), m.Cols())
	var out []placement
	idx := 0
	for _, spec := range specs {
		if spec.Amount <= 0 {
			return nil, fmt.Errorf("simulation: %w: individual %q has non-positive amount %d", model.ErrInvalidConfig, spec.Label, spec.Amount)
		}
		if len(spec.Positions) != 0 && len(spec.Positions) != spec.Amount {
			return nil, fmt.Errorf("simulation: %w: individual %q has %d positions for amount %d", model.ErrInvalidConfig, spec.Label, len(spec.Positions), spec.Amount)
		}
		for i := 0; i < spec.Amount; i++ {
			var row, col int
			if len(spec.Positions) != 0 {
				row, col = spec.Positions[i][0], spec.Positions[i][1]
				if !m.InBounds(row, col) || !occupied.IsEmpty(row, col) {
					return nil, fmt.Errorf("simulation: %w: individual %q position %d is out of bounds or occupied", model.ErrInvalidConfig, spec.Label, i)
				}
				if err := occupied.Place(idx, row, col); err != nil {
					return nil, err
				}
			} else {
				var err error
				row, col, err = occupied.PlaceRandom(rng, m, idx)
				if err != nil {
					return nil, fmt.Errorf("simulation: %w", err)
				}
			}
			out = append(out, placement{
				label: spec.Label, row: row, col: col, speed: spec.Speed,
				ks: spec.KS, kw: spec.KW, kd: spec.KD, ki: spec.KI,
			})
			idx++
		}
	}
	return out, nil
}
