package asvswarm

import (
	"testing"
)

func TestNewSeaSurfaceRejectsInvalidInputs(t *testing.T) {
	if _, err := NewSeaSurface(0, 0, 1, 7); err == nil {
		t.Fatal("expected error for non-positive significant wave height")
	}
	if _, err := NewSeaSurface(2, 0, 1, 4); err == nil {
		t.Fatal("expected error for even component count")
	}
	if _, err := NewSeaSurface(2, 0, 1, 1); err == nil {
		t.Fatal("expected error for component count below 3")
	}
}

func TestNewSeaSurfaceComponentCount(t *testing.T) {
	sea, err := NewSeaSurface(2, 0, 42, 9)
	if err != nil {
		t.Fatal(err)
	}
	if sea.ComponentCount() != 9 {
		t.Errorf("ComponentCount() = %d, want 9", sea.ComponentCount())
	}
	if len(sea.Components()) != 9 {
		t.Errorf("len(Components()) = %d, want 9", len(sea.Components()))
	}
	if sea.MinFrequency() >= sea.PeakFrequency() || sea.PeakFrequency() >= sea.MaxFrequency() {
		t.Errorf("expected fmin < fpeak < fmax, got %g < %g < %g", sea.MinFrequency(), sea.PeakFrequency(), sea.MaxFrequency())
	}
}

func TestNewSeaSurfaceIsReproducible(t *testing.T) {
	a, err := NewSeaSurface(3, 0.7, 123, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeaSurface(3, 0.7, 123, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Components() {
		ca, cb := a.Components()[i], b.Components()[i]
		if ca.Frequency() != cb.Frequency() || ca.Amplitude() != cb.Amplitude() || ca.Heading() != cb.Heading() {
			t.Fatalf("component %d differs between identically-seeded sea surfaces", i)
		}
	}
}

func TestNewSeaSurfaceDifferentSeedsDiffer(t *testing.T) {
	a, err := NewSeaSurface(3, 0, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeaSurface(3, 0, 2, 7)
	if err != nil {
		t.Fatal(err)
	}
	aPhase, err := a.Components()[0].Phase(Vec3{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	bPhase, err := b.Components()[0].Phase(Vec3{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if aPhase == bPhase {
		t.Error("expected different seeds to produce different component phases")
	}
}

func TestSeaSurfaceElevationNegativeTime(t *testing.T) {
	sea, err := NewSeaSurface(2, 0, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sea.Elevation(Vec3{}, -1); err == nil {
		t.Fatal("expected NegativeTime error")
	}
}
