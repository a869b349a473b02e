package asvswarm

import "testing"

func TestEmptyWaypointListIsDone(t *testing.T) {
	w := NewWaypointList(nil)
	if !w.Done() {
		t.Fatal("empty waypoint list should be immediately Done")
	}
	if _, ok := w.Current(); ok {
		t.Fatal("Current() should report false on an empty list")
	}
}

func TestWaypointListAdvancesOnProximity(t *testing.T) {
	w := NewWaypointList([]Vec3{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if w.Advance(Vec3{X: 0, Y: waypointProximityMargin + 1}) {
		t.Fatal("should not advance when outside the proximity margin")
	}
	if !w.Advance(Vec3{X: 0, Y: waypointProximityMargin - 1}) {
		t.Fatal("should advance when within the proximity margin")
	}
	if w.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", w.Index())
	}
	wp, ok := w.Current()
	if !ok || wp.X != 100 {
		t.Fatalf("Current() = %+v, %v; want (100,0), true", wp, ok)
	}
}

func TestWaypointListDoneAfterLast(t *testing.T) {
	w := NewWaypointList([]Vec3{{X: 0, Y: 0}})
	w.Advance(Vec3{})
	if !w.Done() {
		t.Fatal("list should be Done after advancing past the last waypoint")
	}
	if w.Advance(Vec3{}) {
		t.Fatal("Advance on a Done list should return false")
	}
}

func TestWaypointListLen(t *testing.T) {
	w := NewWaypointList([]Vec3{{}, {}, {}})
	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}
}
