package fields

// cellDist is one entry in the multi-source shortest-path frontier shared
// by WallMap and StaticMap derivation.
type cellDist struct {
	row, col int
	dist     float64
}

// cellHeap is a container/heap.Interface min-heap over cellDist, ordered
// by distance and then by row-major position so that ties resolve
// deterministically.
type cellHeap []cellDist

func (h cellHeap) Len() int { return len(h) }

func (h cellHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	if h[i].row != h[j].row {
		return h[i].row < h[j].row
	}
	return h[i].col < h[j].col
}

func (h cellHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cellHeap) Push(x any) { *h = append(*h, x.(cellDist)) }

func (h *cellHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
