package fields

import "evacsim/internal/model"

// DynamicMap holds the decaying, diffusing pedestrian trail field. All cells start at 0; every simulator step calls Decay then
// Diffuse then Deposit, in that order.
type DynamicMap struct {
	grid
}

// NewDynamicMap allocates a zeroed DynamicMap of the given dimensions.
func NewDynamicMap(rows, cols int) *DynamicMap {
	return &DynamicMap{grid: newGrid(rows, cols)}
}

// Decay multiplies every cell by (1 - alfa).
func (dm *DynamicMap) Decay(alfa float64) {
	factor := 1 - alfa
	for i := range dm.values {
		dm.values[i] *= factor
	}
}

// Diffuse moves each cell a sigma-fraction of the way toward the mean of
// its 8-neighborhood.
func (dm *DynamicMap) Diffuse(sigma float64) {
	next := make([]float64, len(dm.values))
	for r := 0; r < dm.rows; r++ {
		for c := 0; c < dm.cols; c++ {
			sum, count := 0.0, 0
			neighbors8(dm.rows, dm.cols, r, c, func(nr, nc int, _ bool) {
				sum += dm.at(nr, nc)
				count++
			})
			cur := dm.at(r, c)
			if count == 0 {
				next[dm.idx(r, c)] = cur
				continue
			}
			mean := sum / float64(count)
			next[dm.idx(r, c)] = cur + sigma*(mean-cur)
		}
	}
	dm.values = next
}

// Deposit increments the trail at each of the given previous positions by
// one — called once per simulator step, after individuals have moved.
func (dm *DynamicMap) Deposit(positions [][2]int) {
	for _, p := range positions {
		dm.set(p[0], p[1], dm.at(p[0], p[1])+1)
	}
}

// Step runs the full decay/diffuse/deposit cycle for one simulator
// iteration, in the order requires.
func (dm *DynamicMap) Step(positions [][2]int) {
	dm.Decay(model.DiffusionDecayAlfa)
	dm.Diffuse(model.DiffusionDecaySigma)
	dm.Deposit(positions)
}

// Value returns the trail value at (r,c).
func (dm *DynamicMap) Value(r, c int) float64 { return dm.at(r, c) }

// Row returns a defensive copy of row r.
func (dm *DynamicMap) Row(r int) []float64 { return dm.row(r) }
