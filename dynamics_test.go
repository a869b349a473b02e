package asvswarm

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestEncounterFrequencyHeadSeaIncreasesFrequency(t *testing.T) {
	f := encounterFrequency(0.5, 2, 0)
	if f >= 0.5 {
		t.Errorf("following-sea encounter frequency (mu=0) should be lower than source frequency, got %g", f)
	}
	f = encounterFrequency(0.5, 2, math.Pi)
	if f <= 0.5 {
		t.Errorf("head-sea encounter frequency (mu=pi) should be higher than source frequency, got %g", f)
	}
}

func TestComputeHullMatricesPositive(t *testing.T) {
	m := computeHullMatrices(testSpec())
	for _, v := range m.mass.Array() {
		if v <= 0 {
			t.Errorf("mass matrix entries must be positive: %+v", m.mass)
		}
	}
	if m.stiff.Heave <= 0 || m.stiff.Roll <= 0 || m.stiff.Pitch <= 0 {
		t.Errorf("stiffness matrix entries must be positive: %+v", m.stiff)
	}
	if m.stiff.Surge != 0 || m.stiff.Sway != 0 || m.stiff.Yaw != 0 {
		t.Errorf("surge/sway/yaw have no hydrostatic stiffness: %+v", m.stiff)
	}
}

func TestComputePressureTableRange(t *testing.T) {
	sea, err := NewSeaSurface(2, 0, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	table, err := computePressureTable(testSpec(), sea)
	if err != nil {
		t.Fatal(err)
	}
	if table.freqMax <= table.freqMin {
		t.Errorf("expected freqMax > freqMin, got [%g, %g]", table.freqMin, table.freqMax)
	}
	for i, e := range table.entries {
		if e <= 0 {
			t.Errorf("pressure table entry %d should be positive, got %g", i, e)
		}
	}
}

func newTestASV(t *testing.T) *ASV {
	t.Helper()
	asv, err := NewASV("test", testSpec(), Vec3{}, Attitude{}, 40)
	if err != nil {
		t.Fatal(err)
	}
	return asv
}

func TestASVStepRejectsNonPositiveDt(t *testing.T) {
	asv := newTestASV(t)
	if err := asv.Step(StepInput{}, 0); err == nil {
		t.Fatal("expected error for non-positive dt")
	}
}

func TestASVStepRejectsExcessiveRudderAngle(t *testing.T) {
	asv := newTestASV(t)
	before := asv.t
	err := asv.Step(StepInput{UseRudder: true, RudderAngle: math.Pi}, 40)
	if err == nil {
		t.Fatal("expected error for rudder angle exceeding +/- pi/2")
	}
	if asv.t != before {
		t.Error("a rejected step must not mutate ASV state")
	}
}

func TestASVStepStillWaterNoWaveForce(t *testing.T) {
	asv := newTestASV(t)
	if err := asv.Step(StepInput{}, 40); err != nil {
		t.Fatal(err)
	}
	if asv.FWave != (DOF6{}) {
		t.Errorf("F_wave should be zero in still water, got %+v", asv.FWave)
	}
}

func TestASVStepAdvancesClock(t *testing.T) {
	asv := newTestASV(t)
	for i := 0; i < 5; i++ {
		if err := asv.Step(StepInput{}, 40); err != nil {
			t.Fatal(err)
		}
	}
	if !floats.EqualWithinAbs(asv.Time(), 0.2, 1e-9) {
		t.Errorf("Time() after 5 steps of 40ms = %g, want 0.2", asv.Time())
	}
}

func TestASVStepThrusterDrivesSurge(t *testing.T) {
	asv := newTestASV(t)
	asv.Thrusters = []Thruster{NewThruster(Vec3{X: -1})}
	asv.Thrusters[0].SetThrust(Vec3{}, 20)

	if err := asv.Step(StepInput{}, 40); err != nil {
		t.Fatal(err)
	}
	if asv.V.Surge <= 0 {
		t.Errorf("forward thrust should produce positive surge velocity, got %g", asv.V.Surge)
	}
}

func TestASVStepRestoringOpposesHeaveDisplacement(t *testing.T) {
	asv := newTestASV(t)
	asv.COG.Z = 1
	f := asv.restoringForce()
	if f.Heave >= 0 {
		t.Errorf("restoring force should push a displaced-up COG back down, got %g", f.Heave)
	}
}

func TestASVStepSpectrumOutOfRangeStopsFurtherStepping(t *testing.T) {
	asv := newTestASV(t)
	sea, err := NewSeaSurface(2, 0, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := asv.BindSeaSurface(sea); err != nil {
		t.Fatal(err)
	}
	// Force the encounter-frequency lookup out of range: the sea's component
	// frequencies are a fraction of a Hz, far below this shifted table span.
	asv.pressure.freqMin = 1000
	asv.pressure.freqMax = 1001

	err = asv.Step(StepInput{}, 40)
	if err == nil {
		t.Fatal("expected SpectrumOutOfRange error")
	}
	if asv.LastError() == nil {
		t.Fatal("expected LastError to be set")
	}
}
