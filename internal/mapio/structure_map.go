// Package mapio parses the text grid format into a StructureMap,
// discovers candidate DoorSlots, and regenerates map text from a chosen
// subset of slots. It owns the only place in the module that touches map
// characters directly; every other package works with model.Cell values.
package mapio

import (
	"fmt"
	"strings"

	"evacsim/internal/model"
)

// StructureMap is the immutable parsed grid of terrain codes.
type StructureMap struct {
	rows int
	cols int
	grid [][]model.Cell
}

// Load parses one row per newline-terminated line, one ASCII digit per
// cell. It fails with model.ErrInvalidMap when rows have inconsistent width
// or the input has no rows at all.
func Load(text string) (*StructureMap, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("mapio: %w: empty map", model.ErrInvalidMap)
	}

	grid := make([][]model.Cell, len(lines))
	width := -1
	for i, line := range lines {
		if len(line) == 0 {
			return nil, fmt.Errorf("mapio: %w: row %d is empty", model.ErrInvalidMap, i)
		}
		if width == -1 {
			width = len(line)
		} else if len(line) != width {
			return nil, fmt.Errorf("mapio: %w: row %d has width %d, want %d", model.ErrInvalidMap, i, len(line), width)
		}
		row := make([]model.Cell, len(line))
		for j, ch := range line {
			row[j] = decodeCell(ch)
		}
		grid[i] = row
	}

	return &StructureMap{rows: len(grid), cols: width, grid: grid}, nil
}

// splitLines trims a single optional trailing newline and splits on "\n",
// tolerating "\r\n" line endings.
func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight(l, "\r"))
	}
	return lines
}

// decodeCell maps the mandatory ASCII codes; anything else is accepted
// here (the loader is permissive) but downstream derivations still run it
// through model.Normalize, per "tolerated at downstream layers".
func decodeCell(ch rune) model.Cell {
	switch ch {
	case '0':
		return model.Empty
	case '1':
		return model.Wall
	case '2':
		return model.Door
	case '3':
		return model.Object
	case '4':
		return model.Void
	default:
		return model.Cell(int(ch)) // preserved raw; Normalize() folds it to Empty downstream
	}
}

func (m *StructureMap) Rows() int { return m.rows }
func (m *StructureMap) Cols() int { return m.cols }

// At returns the raw (un-normalized) cell code at (r,c).
func (m *StructureMap) At(r, c int) model.Cell {
	return m.grid[r][c]
}

// NormalizedAt returns model.Normalize(At(r,c)).
func (m *StructureMap) NormalizedAt(r, c int) model.Cell {
	return model.Normalize(m.grid[r][c])
}

// InBounds reports whether (r,c) is a valid cell coordinate.
func (m *StructureMap) InBounds(r, c int) bool {
	return r >= 0 && r < m.rows && c >= 0 && c < m.cols
}

// WithDoors returns a copy of the map with exactly the given slots marked
// Door and every other Door cell cleared to Empty — the regeneration step
// of It never edits the original's backing slices.
func (m *StructureMap) WithDoors(slots []model.DoorSlot) *StructureMap {
	grid := make([][]model.Cell, m.rows)
	for r := range grid {
		row := make([]model.Cell, m.cols)
		for c := 0; c < m.cols; c++ {
			if m.grid[r][c] == model.Door {
				row[c] = model.Empty
			} else {
				row[c] = m.grid[r][c]
			}
		}
		grid[r] = row
	}
	for _, slot := range slots {
		for _, cell := range slot.Cells() {
			grid[cell[0]][cell[1]] = model.Door
		}
	}
	return &StructureMap{rows: m.rows, cols: m.cols, grid: grid}
}

// Text renders the map back to its character format. Active Door cells
// emit '2'; every other recognized code renders to its digit; any
// surviving unrecognized code renders as '0' (normalized), since the text
// format is defined only over the five mandatory codes.
func (m *StructureMap) Text() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			b.WriteByte(encodeCell(m.grid[r][c]))
		}
		if r < m.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func encodeCell(c model.Cell) byte {
	switch c {
	case model.Wall:
		return '1'
	case model.Door:
		return '2'
	case model.Object:
		return '3'
	case model.Void:
		return '4'
	default:
		return '0'
	}
}
