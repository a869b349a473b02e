package asvswarm

import (
	"testing"
)

func buildSimASV(t *testing.T, id string) (*ASV, *Controller) {
	t.Helper()
	asv, err := NewASV(id, testSpec(), Vec3{}, Attitude{}, 40)
	if err != nil {
		t.Fatal(err)
	}
	asv.Thrusters = make([]Thruster, 4)
	ctrl, err := NewController(asv)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.SetGainsPosition(2, 0, 0)
	ctrl.SetGainsHeading(2, 0, 0)
	return asv, ctrl
}

func TestNewSimulationRejectsNonPositiveStep(t *testing.T) {
	if _, err := NewSimulation(TimeSynchronised, 0); err == nil {
		t.Fatal("expected error for non-positive step size")
	}
}

func TestSimulationSetWaypointsUnknownASV(t *testing.T) {
	sim, err := NewSimulation(TimeSynchronised, 40)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewASV("foreign", testSpec(), Vec3{}, Attitude{}, 40)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.SetWaypoints(foreign, nil); err == nil {
		t.Fatal("expected NullHandle error for an ASV not part of the simulation")
	}
}

func TestRunATimestepStopsWhenDone(t *testing.T) {
	asv, ctrl := buildSimASV(t, "a1")
	sim, err := NewSimulation(TimeSynchronised, 40)
	if err != nil {
		t.Fatal(err)
	}
	sim.AddASV(asv, ctrl)
	if err := sim.SetWaypoints(asv, []Vec3{{X: 1, Y: 1}}); err != nil {
		t.Fatal(err)
	}

	running := sim.RunATimestep()
	if running > 1 {
		t.Fatalf("running = %d, expected at most 1 node", running)
	}

	// Drive until the proximity margin is satisfied or a generous step
	// budget is exhausted.
	for i := 0; i < 10000 && sim.RunATimestep() > 0; i++ {
	}
	if got := sim.RunATimestep(); got != 0 {
		t.Fatalf("running = %d after the waypoint was reached, want 0", got)
	}
}

func TestRunUpToTimeRespectsDeadline(t *testing.T) {
	asv, ctrl := buildSimASV(t, "a1")
	sim, err := NewSimulation(TimeSynchronised, 40)
	if err != nil {
		t.Fatal(err)
	}
	sim.AddASV(asv, ctrl)
	sim.SetWaypoints(asv, []Vec3{{X: 1000, Y: 1000}})

	dir := t.TempDir()
	if err := sim.RunUpToTime(1, dir); err != nil {
		t.Fatal(err)
	}
	if asv.Time() < 1 {
		t.Errorf("expected ASV to reach deadline, time=%g", asv.Time())
	}
}

func TestGetASVPositionAtUnknownASV(t *testing.T) {
	sim, err := NewSimulation(TimeSynchronised, 40)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewASV("foreign", testSpec(), Vec3{}, Attitude{}, 40)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.GetASVPositionAt(foreign, 0); err == nil {
		t.Fatal("expected NullHandle error for an ASV not part of the simulation")
	}
}
