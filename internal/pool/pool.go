// Package pool recycles handles of short-lived simulation objects.
package pool

import "github.com/playground/spacesim/internal/core/ecs"

// Kind tags a pool with the category of object it serves. Implementations
// are zero-size marker types; the type parameter keeps a bullet pool and a
// block pool from ever being mixed up at compile time.
type Kind interface {
	KindName() string
}

// Pool is a LIFO stack of inactive handles of one Kind.
//
// Precondition for Release: the object has already been hidden and its body
// disabled, and it is not already in this or any other pool. Releasing the
// same handle twice without an Acquire in between is a caller bug; the pool
// does not check for it so Release stays a plain append.
//
// Not safe for concurrent use. Only the game loop touches pools.
type Pool[K Kind] struct {
	items []ecs.EntityID
}

// NewPool returns an empty pool with room for capacity handles.
func NewPool[K Kind](capacity int) *Pool[K] {
	return &Pool[K]{items: make([]ecs.EntityID, 0, capacity)}
}

// Acquire pops the most recently released handle. It does not reactivate
// the object.
func (p *Pool[K]) Acquire() (ecs.EntityID, bool) {
	n := len(p.items)
	if n == 0 {
		return 0, false
	}
	id := p.items[n-1]
	p.items = p.items[:n-1]
	return id, true
}

// Release pushes an inactive handle.
func (p *Pool[K]) Release(id ecs.EntityID) {
	p.items = append(p.items, id)
}

func (p *Pool[K]) IsEmpty() bool { return len(p.items) == 0 }

func (p *Pool[K]) Len() int { return len(p.items) }

// Kind returns the marker's name, for logs and run records.
func (p *Pool[K]) Kind() string {
	var k K
	return k.KindName()
}
