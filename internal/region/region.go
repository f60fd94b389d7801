// Package region grows connected, irregular blobs of grid cells. The
// asteroid builder places one static block per cell.
package region

import "github.com/playground/spacesim/internal/rng"

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int32
}

func (c Cell) neighbours() [4]Cell {
	return [4]Cell{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
}

// Blueprint is a set of unique cells, every one 4-connected to Origin.
// Cells come back in the order they were accepted. Immutable once built.
type Blueprint struct {
	origin Cell
	cells  []Cell
	index  map[Cell]struct{}
}

func (b Blueprint) Origin() Cell { return b.origin }
func (b Blueprint) Len() int     { return len(b.cells) }

// Cells returns a copy of the cells in acceptance order.
func (b Blueprint) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

func (b Blueprint) Contains(c Cell) bool {
	_, ok := b.index[c]
	return ok
}

// Bounds returns the inclusive bounding box of the blueprint.
func (b Blueprint) Bounds() (min, max Cell) {
	if len(b.cells) == 0 {
		return b.origin, b.origin
	}
	min, max = b.cells[0], b.cells[0]
	for _, c := range b.cells[1:] {
		min.X, max.X = minI(min.X, c.X), maxI(max.X, c.X)
		min.Y, max.Y = minI(min.Y, c.Y), maxI(max.Y, c.Y)
	}
	return min, max
}

// Connected reports whether every cell is reachable from the origin through
// axis-aligned steps inside the blueprint.
func (b Blueprint) Connected() bool {
	if len(b.cells) == 0 {
		return true
	}
	if !b.Contains(b.origin) {
		return false
	}
	seen := map[Cell]struct{}{b.origin: {}}
	queue := []Cell{b.origin}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.neighbours() {
			if _, ok := seen[n]; ok || !b.Contains(n) {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return len(seen) == len(b.cells)
}

// Generate grows a blob of target cells around (0,0).
func Generate(target int, src rng.Source) Blueprint {
	return GenerateIn(Cell{}, target, src, nil)
}

// GenerateIn grows a blob of up to target cells around origin. allowed, when
// non-nil, limits which cells may be accepted; a fenced-in region stops short
// of target once nothing reachable is left, which is a valid result.
//
// Growth picks a random frontier cell, tries its four neighbours in shuffled
// order and accepts the first free one. A frontier cell with no free
// neighbour is swap-removed for good.
func GenerateIn(origin Cell, target int, src rng.Source, allowed func(Cell) bool) Blueprint {
	bp := Blueprint{
		origin: origin,
		cells:  make([]Cell, 0, max(target, 1)),
		index:  make(map[Cell]struct{}, max(target, 1)),
	}
	bp.add(origin)
	frontier := []Cell{origin}

	for len(bp.cells) < target && len(frontier) > 0 {
		idx := src.IntN(len(frontier))
		ns := frontier[idx].neighbours()
		src.Shuffle(len(ns), func(i, j int) { ns[i], ns[j] = ns[j], ns[i] })

		found := false
		for _, n := range ns {
			if bp.Contains(n) || (allowed != nil && !allowed(n)) {
				continue
			}
			bp.add(n)
			frontier = append(frontier, n)
			found = true
			break
		}
		if !found {
			last := len(frontier) - 1
			frontier[idx] = frontier[last]
			frontier = frontier[:last]
		}
	}
	return bp
}

func (b *Blueprint) add(c Cell) {
	b.cells = append(b.cells, c)
	b.index[c] = struct{}{}
}

func minI(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
