package world

import (
	"math"
	"slices"

	"github.com/playground/spacesim/internal/core/ecs"
)

// Grid is a uniform cell broadphase for solid colliders. Cell size must be
// at least the sum of the largest sensor and target half extents so a 3x3
// neighbourhood covers every possible contact.
// Only the game loop goroutine touches it.
type Grid struct {
	cellSize float64
	cells    map[cellKey]map[ecs.EntityID]struct{}
}

type cellKey struct {
	cx, cy int32
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 128
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

func (g *Grid) key(x, y float64) cellKey {
	return cellKey{
		cx: int32(math.Floor(x / g.cellSize)),
		cy: int32(math.Floor(y / g.cellSize)),
	}
}

// Add places an entity into the grid.
func (g *Grid) Add(id ecs.EntityID, x, y float64) {
	k := g.key(x, y)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes an entity out of the grid.
func (g *Grid) Remove(id ecs.EntityID, x, y float64) {
	k := g.key(x, y)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an entity's cell when its position changes.
func (g *Grid) Move(id ecs.EntityID, oldX, oldY, newX, newY float64) {
	if g.key(oldX, oldY) == g.key(newX, newY) {
		return
	}
	g.Remove(id, oldX, oldY)
	g.Add(id, newX, newY)
}

// Nearby returns the entities in the 3x3 neighbourhood of cells around the
// position, in ascending id order. Caller does the exact overlap test.
func (g *Grid) Nearby(x, y float64) []ecs.EntityID {
	c := g.key(x, y)
	var result []ecs.EntityID
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for id := range g.cells[cellKey{cx: c.cx + dx, cy: c.cy + dy}] {
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}

// Len returns the number of tracked entities.
func (g *Grid) Len() int {
	n := 0
	for _, cell := range g.cells {
		n += len(cell)
	}
	return n
}
