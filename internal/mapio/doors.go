package mapio

import "evacsim/internal/model"

// DiscoverSlots finds the candidate DoorSlots in m.
//
// Horizontal runs of two or more adjacent Door cells in a row are claimed
// first; vertical runs of two or more adjacent Door cells in a column are
// then claimed from whatever Door cells remain. Any Door cell claimed by
// neither — an isolated cell, or one that is the lone member of a run in
// both directions — becomes its own horizontal slot of size 1, per the
// "size 1 qualifies as H by convention" rule.
//
// This is the open tie-break flags: when a cell could belong to
// either a horizontal or a vertical run, horizontal wins because it is
// claimed first. Reordering these two scans changes which slots are
// discovered for maps with overlapping runs — see
// TestDiscoverSlotsHorizontalTieBreak in mapio_test.go.
func DiscoverSlots(m *StructureMap) []model.DoorSlot {
	claimed := make([][]bool, m.rows)
	for r := range claimed {
		claimed[r] = make([]bool, m.cols)
	}

	var slots []model.DoorSlot

	// Horizontal runs, row-major, length >= 2.
	for r := 0; r < m.rows; r++ {
		c := 0
		for c < m.cols {
			if m.NormalizedAt(r, c) != model.Door {
				c++
				continue
			}
			start := c
			for c < m.cols && m.NormalizedAt(r, c) == model.Door {
				c++
			}
			size := c - start
			if size >= 2 {
				slots = append(slots, model.DoorSlot{Row: r, Col: start, Size: size, Direction: model.Horizontal})
				for j := start; j < c; j++ {
					claimed[r][j] = true
				}
			}
		}
	}

	// Vertical runs, column-major, over whatever is left, length >= 2.
	for c := 0; c < m.cols; c++ {
		r := 0
		for r < m.rows {
			if m.NormalizedAt(r, c) != model.Door || claimed[r][c] {
				r++
				continue
			}
			start := r
			for r < m.rows && m.NormalizedAt(r, c) == model.Door && !claimed[r][c] {
				r++
			}
			size := r - start
			if size >= 2 {
				slots = append(slots, model.DoorSlot{Row: start, Col: c, Size: size, Direction: model.Vertical})
				for i := start; i < r; i++ {
					claimed[i][c] = true
				}
			}
		}
	}

	// Leftover isolated Door cells, row-major, size-1 horizontal by convention.
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.NormalizedAt(r, c) == model.Door && !claimed[r][c] {
				slots = append(slots, model.DoorSlot{Row: r, Col: c, Size: 1, Direction: model.Horizontal})
				claimed[r][c] = true
			}
		}
	}

	return slots
}

// Regenerate rebuilds map text from the original text plus a chosen subset
// of active slots. It never edits characters in place: every Door cell in
// the original is cleared to Empty and the active slots' cells are
// written fresh.
func Regenerate(original *StructureMap, active []model.DoorSlot) *StructureMap {
	return original.WithDoors(active)
}
