package asvswarm

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestNilOceanCurrentIsZero(t *testing.T) {
	var c *OceanCurrent
	zonal, meridional := c.Velocity(0, Vec3{})
	if zonal != 0 || meridional != 0 {
		t.Fatalf("nil current should contribute zero velocity, got (%g, %g)", zonal, meridional)
	}
}

func TestOceanCurrentConstantVelocity(t *testing.T) {
	c := NewOceanCurrent(2, 0)
	zonal, meridional := c.Velocity(0, Vec3{})
	if !floats.EqualWithinAbs(zonal, 0, 1e-9) || !floats.EqualWithinAbs(meridional, 2, 1e-9) {
		t.Fatalf("current heading 0 should point due north: got (%g, %g)", zonal, meridional)
	}

	east := NewOceanCurrent(3, math.Pi/2)
	zonal, meridional = east.Velocity(0, Vec3{})
	if !floats.EqualWithinAbs(zonal, 3, 1e-9) || !floats.EqualWithinAbs(meridional, 0, 1e-9) {
		t.Fatalf("current heading pi/2 should point due east: got (%g, %g)", zonal, meridional)
	}
}

func TestNoisyCurrentAddsFluctuation(t *testing.T) {
	c := NewNoisyCurrent(1, 0, 0.5, 99)
	z1, m1 := c.Velocity(0, Vec3{})
	z2, m2 := c.Velocity(0, Vec3{})
	if z1 == z2 && m1 == m2 {
		t.Error("expected stochastic fluctuation to vary across calls")
	}
}

func TestNoisyCurrentZeroStdDevIsConstant(t *testing.T) {
	c := NewNoisyCurrent(1, 0, 0, 7)
	if c.Arbitrary != nil {
		t.Error("zero stddev should not attach a noise source")
	}
}
