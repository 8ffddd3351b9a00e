package fields

import (
	"container/heap"

	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

// WallMap holds, per cell, the weighted distance to the nearest Wall or
// Object cell. Wall/Object cells themselves hold 0.
//
// Propagation only steps through cells that are Empty or Door
// (Wall/Object/Void are not traversable), using a multi-source
// shortest-path expansion from every Wall/Object cell. This derivation
// runs a multi-source Dijkstra with a row-major tie-break, the same
// determinism rule StaticMap applies, for consistency between the two.
type WallMap struct {
	grid
}

// DeriveWallMap builds a WallMap from m. Cells whose normalized code is
// anything other than Wall/Object/Empty/Door (i.e. Void, or anything
// Normalize would fold to Empty but that is never reached because it
// never borders a traversable cell) simply keep the zero value — the
// unconditional "append EMPTY" fallback calls out as the fix
// for the historical short-row bug.
func DeriveWallMap(m *mapio.StructureMap) *WallMap {
	rows, cols := m.Rows(), m.Cols()
	wm := &WallMap{grid: newGrid(rows, cols)}

	pq := &cellHeap{}
	visited := make([]bool, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if code := m.NormalizedAt(r, c); code == model.Wall || code == model.Object {
				heap.Push(pq, cellDist{row: r, col: c, dist: 0})
			}
		}
	}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(cellDist)
		idx := cur.row*cols + cur.col
		if visited[idx] {
			continue
		}
		visited[idx] = true
		wm.set(cur.row, cur.col, cur.dist)

		neighbors8(rows, cols, cur.row, cur.col, func(nr, nc int, diagonal bool) {
			code := m.NormalizedAt(nr, nc)
			if code != model.Empty && code != model.Door {
				return
			}
			if visited[nr*cols+nc] {
				return
			}
			step := 1.0
			if diagonal {
				step = model.DistanceMultiplier
			}
			heap.Push(pq, cellDist{row: nr, col: nc, dist: cur.dist + step})
		})
	}

	return wm
}

// Value returns the wall-influence scalar at (r,c).
func (wm *WallMap) Value(r, c int) float64 { return wm.at(r, c) }

// Row returns a defensive copy of row r.
func (wm *WallMap) Row(r int) []float64 { return wm.row(r) }
