package game

import "github.com/vovakirdan/pico-snake/internal/core"

// body is the snake as a fixed-capacity ring buffer, head first, with an
// occupancy bitmap for O(1) membership tests. Both are sized to the grid once.
type body struct {
	cells []core.Point
	occ   []bool
	head  int // index of segment 0 in cells
	n     int
	w     int
}

func newBody(w, h int) body {
	return body{
		cells: make([]core.Point, w*h),
		occ:   make([]bool, w*h),
		w:     w,
	}
}

func (b *body) len() int {
	return b.n
}

// at returns segment i, where 0 is the head.
func (b *body) at(i int) core.Point {
	return b.cells[(b.head+i)%len(b.cells)]
}

func (b *body) front() core.Point {
	return b.at(0)
}

func (b *body) back() core.Point {
	return b.at(b.n - 1)
}

func (b *body) contains(p core.Point) bool {
	return b.occ[p.Y*b.w+p.X]
}

func (b *body) pushFront(p core.Point) {
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = p
	b.occ[p.Y*b.w+p.X] = true
	b.n++
}

func (b *body) popBack() core.Point {
	p := b.back()
	b.occ[p.Y*b.w+p.X] = false
	b.n--
	return p
}

func (b *body) clear() {
	for i := range b.occ {
		b.occ[i] = false
	}
	b.head = 0
	b.n = 0
}
