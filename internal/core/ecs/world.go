package ecs

// World is the object table. It owns the entity pool, the component registry,
// and a deferred destruction queue flushed by CleanupSystem each tick.
//
// Pools of recyclable objects never destroy through the World: a pooled handle
// keeps its components and only toggles visibility and physics.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice in one tick is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, dup := w.queued[id]; dup {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending reports whether id is queued for destruction this tick.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Returns how many entities were actually destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		if w.pool.Destroy(id) {
			n++
		}
		delete(w.queued, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
