// Package fields implements the per-cell floor fields a Scenario owns:
// WallMap, StaticMap, DynamicMap, and the CrowdMap occupancy grid. Every
// grid here is exclusively owned by one Scenario; none of these types is
// safe to share across goroutines.
package fields

import "evacsim/internal/model"

// grid is the shared float64 backing store every field type wraps. It
// guarantees every row has exactly cols entries regardless of what the
// source StructureMap contained.
type grid struct {
	rows, cols int
	values     []float64
}

func newGrid(rows, cols int) grid {
	return grid{rows: rows, cols: cols, values: make([]float64, rows*cols)}
}

func (g *grid) idx(r, c int) int { return r*g.cols + c }

func (g *grid) at(r, c int) float64 { return g.values[g.idx(r, c)] }

func (g *grid) set(r, c int, v float64) { g.values[g.idx(r, c)] = v }

func (g *grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Row returns a defensive copy of row r, always of length Cols().
func (g *grid) row(r int) []float64 {
	out := make([]float64, g.cols)
	copy(out, g.values[r*g.cols:(r+1)*g.cols])
	return out
}

// neighbors8 visits the 8-neighborhood of (r,c) in the fixed traversal
// order model.DRow/model.DCol define, calling fn with the neighbor
// coordinates and whether the step is diagonal. Out-of-bounds neighbors
// are skipped.
func neighbors8(rows, cols, r, c int, fn func(nr, nc int, diagonal bool)) {
	for d := 0; d < 8; d++ {
		nr, nc := r+model.DRow[d], c+model.DCol[d]
		if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
			continue
		}
		fn(nr, nc, model.IsDiagonal(model.Direction(d)))
	}
}
