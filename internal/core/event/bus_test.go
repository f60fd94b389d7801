package event

import (
	"testing"

	"github.com/playground/spacesim/internal/core/ecs"
)

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []ecs.EntityID
	Subscribe(b, func(ev LeftPlayArea) { got = append(got, ev.Entity) })

	Emit(b, LeftPlayArea{Entity: 7})
	if n := b.DispatchAll(); n != 0 {
		t.Fatalf("dispatched %d events before swap, want 0", n)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 1 {
		t.Fatalf("dispatched %d events, want 1", n)
	}
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("handler saw %v, want [7]", got)
	}

	b.SwapBuffers()
	if n := b.DispatchAll(); n != 0 {
		t.Errorf("events replayed on a later tick: %d", n)
	}
}

func TestBusHandlerEmitsForNextTick(t *testing.T) {
	b := NewBus()
	var damaged int
	Subscribe(b, func(ev Collision) {
		Emit(b, Damaged{Target: ev.Target, Amount: 10})
	})
	Subscribe(b, func(Damaged) { damaged++ })

	Emit(b, Collision{Sensor: 1, Target: 2})
	b.SwapBuffers()
	b.DispatchAll()
	if damaged != 0 {
		t.Fatal("chained event must not be delivered in the same tick")
	}
	if b.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", b.Pending())
	}
	b.SwapBuffers()
	b.DispatchAll()
	if damaged != 1 {
		t.Errorf("damaged = %d, want 1", damaged)
	}
}

func TestBusOrderIsStable(t *testing.T) {
	b := NewBus()
	var trace []string
	Subscribe(b, func(Collision) { trace = append(trace, "collision") })
	Subscribe(b, func(LeftPlayArea) { trace = append(trace, "left") })

	Emit(b, LeftPlayArea{Entity: 1})
	Emit(b, Collision{Sensor: 2})
	Emit(b, Collision{Sensor: 3})
	b.SwapBuffers()
	b.DispatchAll()

	want := []string{"collision", "collision", "left"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %s, want %s", i, trace[i], want[i])
		}
	}
}
