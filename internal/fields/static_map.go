package fields

import (
	"container/heap"

	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

// StaticMap is the floor field: the least weighted distance from each
// reachable cell to the nearest active Door. Cells
// blocked entirely by Wall/Object/Void carry the model.SWall sentinel.
// Cells that are traversable but unreachable from any active Door (e.g.
// an enclosed pocket with no open door) carry model.SUnreached.
type StaticMap struct {
	grid
}

// SUnreached marks a traversable cell with no path to any active Door.
// This is distinct from model.SWall, which marks a cell that is never a
// path candidate at all.
const SUnreached = -2.0

// DeriveStaticMap builds a StaticMap for the given active Door cells.
// doors must already reflect the gene-selected subset.
func DeriveStaticMap(m *mapio.StructureMap, doorCells [][2]int) *StaticMap {
	rows, cols := m.Rows(), m.Cols()
	sm := &StaticMap{grid: newGrid(rows, cols)}

	blocked := make([]bool, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch m.NormalizedAt(r, c) {
			case model.Wall, model.Object, model.Void:
				blocked[r*cols+c] = true
				sm.set(r, c, model.SWall)
			default:
				sm.set(r, c, SUnreached)
			}
		}
	}

	pq := &cellHeap{}
	for _, d := range doorCells {
		r, c := d[0], d[1]
		if r < 0 || r >= rows || c < 0 || c >= cols || blocked[r*cols+c] {
			continue
		}
		heap.Push(pq, cellDist{row: r, col: c, dist: 1})
	}

	visited := make([]bool, rows*cols)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(cellDist)
		idx := cur.row*cols + cur.col
		if visited[idx] {
			continue
		}
		visited[idx] = true
		sm.set(cur.row, cur.col, cur.dist)

		neighbors8(rows, cols, cur.row, cur.col, func(nr, nc int, diagonal bool) {
			nidx := nr*cols + nc
			if blocked[nidx] || visited[nidx] {
				return
			}
			step := 1.0
			if diagonal {
				step = model.DistanceMultiplier
			}
			heap.Push(pq, cellDist{row: nr, col: nc, dist: cur.dist + step})
		})
	}

	return sm
}

// Value returns the floor-field value at (r,c).
func (sm *StaticMap) Value(r, c int) float64 { return sm.at(r, c) }

// Row returns a defensive copy of row r.
func (sm *StaticMap) Row(r int) []float64 { return sm.row(r) }

// Blocked reports whether (r,c) holds the SWall sentinel.
func (sm *StaticMap) Blocked(r, c int) bool { return sm.at(r, c) == model.SWall }
