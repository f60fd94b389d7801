package ecs

import "slices"

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
		return
	}
	for id, b := range sb.data {
		if a, ok := sa.data[id]; ok {
			fn(id, a, b)
		}
	}
}

// Sorted2 is Each2 in ascending id order. Systems whose output feeds the
// random source or the event bus use it so a seeded run replays exactly.
func Sorted2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	small := sa.IDs()
	if sb.Len() < sa.Len() {
		small = sb.IDs()
	}
	for _, id := range small {
		a, okA := sa.data[id]
		b, okB := sb.data[id]
		if okA && okB {
			fn(id, a, b)
		}
	}
}

// Sorted3 visits entities holding A, B and C in ascending id order.
func Sorted3[A, B, C any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], sc *PtrComponentStore[C], fn func(EntityID, *A, *B, *C)) {
	ids := sa.IDs()
	if sb.Len() < len(ids) {
		ids = sb.IDs()
	}
	if sc.Len() < len(ids) {
		ids = sc.IDs()
	}
	for _, id := range ids {
		a, okA := sa.data[id]
		b, okB := sb.data[id]
		c, okC := sc.data[id]
		if okA && okB && okC {
			fn(id, a, b, c)
		}
	}
}

func sortIDs(ids []EntityID) {
	slices.Sort(ids)
}
