package model

import (
	"encoding/json"
	"fmt"
)

// Direction of a DoorSlot run.
type SlotDirection int

const (
	Horizontal SlotDirection = iota
	Vertical
)

func (d SlotDirection) String() string {
	if d == Vertical {
		return "V"
	}
	return "H"
}

// MarshalJSON renders SlotDirection as "H"/"V" rather than a bare int,
// so Result JSON stays readable without the caller needing the enum.
func (d SlotDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *SlotDirection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "V":
		*d = Vertical
	case "H":
		*d = Horizontal
	default:
		return fmt.Errorf("model: unknown door slot direction %q", s)
	}
	return nil
}

// DoorSlot is a maximal run of adjacent Door cells in one row or column,
// anchored at its top-most/left-most cell.
type DoorSlot struct {
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Size      int           `json:"size"`
	Direction SlotDirection `json:"direction"`
}

// Cells enumerates the grid coordinates covered by the slot, in slot order.
func (s DoorSlot) Cells() [][2]int {
	cells := make([][2]int, s.Size)
	for i := 0; i < s.Size; i++ {
		if s.Direction == Vertical {
			cells[i] = [2]int{s.Row + i, s.Col}
		} else {
			cells[i] = [2]int{s.Row, s.Col + i}
		}
	}
	return cells
}

// IndividualSpec describes one named class of pedestrian before placement —
// the "caracterizations" entry of individuals descriptor.
type IndividualSpec struct {
	Label  string   `json:"label"`
	Amount int      `json:"amount"`
	Speed  int      `json:"speed"`
	KS     float64  `json:"ks"`
	KW     float64  `json:"kw"`
	KD     float64  `json:"kd"`
	KI     float64  `json:"ki"`
	Color  [3]uint8 `json:"color,omitempty"`
	// Positions, if non-nil, is the fixed starting cell for every individual
	// of this spec in order. If nil, the scenario RNG picks a uniformly
	// random empty, unoccupied cell per individual.
	Positions [][2]int `json:"positions,omitempty"`
}

// SimResult is the logical outcome of one Simulator run.
type SimResult struct {
	Iterations     int     `json:"iterations"`
	TotalDistance  float64 `json:"total_distance"`
	EvacuatedCount int     `json:"evacuated_count"`
	Capped         bool    `json:"capped"`
}

// Result is one member of a returned Pareto front.
type Result struct {
	Gene                 []bool     `json:"gene"`
	DoorPositionsGrouped []DoorSlot `json:"door_positions_grouped"`
	Objectives           []float64  `json:"objectives"`
	NumDoors             int        `json:"num_doors"`
	Iterations           float64    `json:"iterations"`
	Distance             float64    `json:"distance"`
	Generation           uint32     `json:"generation"`
}
