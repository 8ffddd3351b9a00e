package fields

import (
	"fmt"
	"math/rand"

	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

// EmptyOccupant marks a CrowdMap cell with no individual on it.
const EmptyOccupant = -1

// CrowdMap tracks which individual occupies which cell.
// Invariant: at most one individual occupies any cell at any instant.
type CrowdMap struct {
	rows, cols int
	occupants  []int
}

// NewCrowdMap allocates an all-empty CrowdMap of the given dimensions.
func NewCrowdMap(rows, cols int) *CrowdMap {
	occupants := make([]int, rows*cols)
	for i := range occupants {
		occupants[i] = EmptyOccupant
	}
	return &CrowdMap{rows: rows, cols: cols, occupants: occupants}
}

func (cm *CrowdMap) idx(r, c int) int { return r*cm.cols + c }

// IsEmpty reports whether (r,c) has no occupant.
func (cm *CrowdMap) IsEmpty(r, c int) bool {
	return cm.occupants[cm.idx(r, c)] == EmptyOccupant
}

// OccupantAt returns the individual index at (r,c), or EmptyOccupant.
func (cm *CrowdMap) OccupantAt(r, c int) int {
	return cm.occupants[cm.idx(r, c)]
}

// Place sets individual idx's position directly, failing with
// model.ErrOverlap if the cell is already occupied.
func (cm *CrowdMap) Place(idx, r, c int) error {
	if !cm.IsEmpty(r, c) {
		return fmt.Errorf("fields: crowd map: %w at (%d,%d)", model.ErrOverlap, r, c)
	}
	cm.occupants[cm.idx(r, c)] = idx
	return nil
}

// Move atomically clears (fromR,fromC) and occupies (toR,toC) with idx.
// Callers must have already confirmed the destination is free (or is the
// individual's own current cell).
func (cm *CrowdMap) Move(idx, fromR, fromC, toR, toC int) {
	cm.occupants[cm.idx(fromR, fromC)] = EmptyOccupant
	cm.occupants[cm.idx(toR, toC)] = idx
}

// PlaceRandom places individual idx on a uniformly random Empty,
// unoccupied cell, using rng (the scenario RNG, never the simulation
// RNG — RNG stream separation). Fails with model.ErrOverlap if
// the structure map has no free cell left.
func (cm *CrowdMap) PlaceRandom(rng *rand.Rand, m *mapio.StructureMap, idx int) (row, col int, err error) {
	var candidates [][2]int
	for r := 0; r < cm.rows; r++ {
		for c := 0; c < cm.cols; c++ {
			if m.NormalizedAt(r, c) == model.Empty && cm.IsEmpty(r, c) {
				candidates = append(candidates, [2]int{r, c})
			}
		}
	}
	if len(candidates) == 0 {
		return 0, 0, fmt.Errorf("fields: crowd map: %w: no free cell for individual %d", model.ErrOverlap, idx)
	}
	pick := candidates[rng.Intn(len(candidates))]
	if err := cm.Place(idx, pick[0], pick[1]); err != nil {
		return 0, 0, err
	}
	return pick[0], pick[1], nil
}
