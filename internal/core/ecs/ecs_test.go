package ecs

import "testing"

type testPosition struct{ X, Y float64 }
type testTag struct{}

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero handle")
	}
	if !p.Alive(a) {
		t.Fatalf("%s should be alive", a)
	}
	if !p.Destroy(a) {
		t.Fatal("destroy of live entity should succeed")
	}
	if p.Alive(a) {
		t.Fatal("destroyed handle still alive")
	}
	if p.Destroy(a) {
		t.Fatal("double destroy must report false")
	}

	b := p.Create()
	if b.Index() != a.Index() {
		t.Errorf("slot not recycled: got index %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Errorf("generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
	if p.Alive(a) || !p.Alive(b) {
		t.Error("stale handle must not alias the new occupant")
	}
	if p.Count() != 1 {
		t.Errorf("Count = %d, want 1", p.Count())
	}
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	pos := NewStore[testPosition](w.Registry())
	tag := NewStore[testTag](w.Registry())

	id := w.CreateEntity()
	pos.Set(id, &testPosition{X: 1})
	tag.Set(id, &testTag{})

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if !w.Alive(id) || !w.Pending(id) {
		t.Fatal("entity must stay alive until the queue is flushed")
	}
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Fatalf("flushed %d entities, want 1", n)
	}
	if w.Alive(id) || pos.Has(id) || tag.Has(id) {
		t.Error("flush must remove the entity and every component")
	}
}

func TestSortedQueries(t *testing.T) {
	w := NewWorld()
	pos := NewStore[testPosition](w.Registry())
	tag := NewStore[testTag](w.Registry())

	var tagged []EntityID
	for i := 0; i < 10; i++ {
		id := w.CreateEntity()
		pos.Set(id, &testPosition{X: float64(i)})
		if i%2 == 0 {
			tag.Set(id, &testTag{})
			tagged = append(tagged, id)
		}
	}

	var seen []EntityID
	Sorted2(pos, tag, func(id EntityID, _ *testPosition, _ *testTag) {
		seen = append(seen, id)
	})
	if len(seen) != len(tagged) {
		t.Fatalf("visited %d entities, want %d", len(seen), len(tagged))
	}
	for i := range seen {
		if seen[i] != tagged[i] {
			t.Errorf("seen[%d] = %s, want %s", i, seen[i], tagged[i])
		}
	}

	count := 0
	Each2(pos, tag, func(EntityID, *testPosition, *testTag) { count++ })
	if count != len(tagged) {
		t.Errorf("Each2 visited %d, want %d", count, len(tagged))
	}
}
