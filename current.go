package asvswarm

import (
	"math"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// OceanCurrent models the advecting water current added to an ASV's global
// translation in step 11 of the per-step update. It plays the same role for
// the ASV domain that the teacher's Perturbations type plays for orbital
// propagation: a structured, named contribution (here, a constant current
// field) plus an Arbitrary escape hatch for anything more elaborate.
type OceanCurrent struct {
	// Speed is the current's magnitude in m/s and Direction is measured in
	// radians, positive clockwise from north, matching the wave heading
	// convention (east uses sin, north uses cos).
	Speed, Direction float64

	// Arbitrary, when set, is evaluated at the current simulation time and
	// ASV position and added to the constant (Speed, Direction) component.
	// Used by NewNoisyCurrent to inject stochastic fluctuation.
	Arbitrary func(t float64, pos Vec3) (zonal, meridional float64)
}

// NewOceanCurrent returns a constant-velocity ocean current.
func NewOceanCurrent(speed, direction float64) *OceanCurrent {
	return &OceanCurrent{Speed: speed, Direction: direction}
}

// Velocity returns the (zonal, meridional) current velocity in m/s at the
// given time and position. A nil *OceanCurrent contributes zero velocity.
func (c *OceanCurrent) Velocity(t float64, pos Vec3) (zonal, meridional float64) {
	if c == nil {
		return 0, 0
	}
	s, cs := math.Sincos(c.Direction)
	zonal = c.Speed * s
	meridional = c.Speed * cs
	if c.Arbitrary != nil {
		dz, dm := c.Arbitrary(t, pos)
		zonal += dz
		meridional += dm
	}
	return
}

// NewNoisyCurrent builds a current whose constant (speed, direction)
// component is perturbed by zero-mean Gaussian noise with standard
// deviation stdDev m/s in each of the zonal and meridional directions,
// grounded on the sensor-noise construction in the teacher's station.go
// (distmv.NewNormal with a per-instance seeded *rand.Rand).
func NewNoisyCurrent(speed, direction, stdDev float64, seed int64) *OceanCurrent {
	c := NewOceanCurrent(speed, direction)
	if stdDev <= 0 {
		return c
	}
	src := rand.New(rand.NewSource(seed))
	noise, ok := distmv.NewNormal([]float64{0, 0}, mat64.NewSymDense(2, []float64{
		stdDev * stdDev, 0,
		0, stdDev * stdDev,
	}), src)
	if !ok {
		return c
	}
	c.Arbitrary = func(t float64, pos Vec3) (float64, float64) {
		sample := noise.Rand(nil)
		return sample[0], sample[1]
	}
	return c
}
