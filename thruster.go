package asvswarm

import "math"

// Thruster is a single fixed-position, steerable thrust vector mounted on an
// ASV's hull, used in ThrusterPropulsion mode. Position and Orientation are
// body-frame; Orientation.Y is trim (pitch-like tilt) and Orientation.Z is
// the azimuth (prop angle) the thrust vector decomposes against.
type Thruster struct {
	Position    Vec3
	Orientation Vec3 // Euler angles, radians; only Y and Z are used
	Thrust      float64
}

// NewThruster constructs a thruster at the given body-frame position with
// zero orientation and thrust; callers set Thrust (and Orientation.Z, the
// azimuth) per step via the controller's output.
func NewThruster(position Vec3) Thruster {
	return Thruster{Position: position}
}

// SetThrust sets the orientation (azimuth normalised to [0, 2*PI)) and
// magnitude of this thruster's force vector.
func (t *Thruster) SetThrust(orientation Vec3, magnitude float64) {
	orientation.Z = normalise2PI(orientation.Z)
	t.Orientation = orientation
	t.Thrust = magnitude
}

// force decomposes the thruster's body-frame force and the moment it
// produces about cog, the ASV's body-frame centre of gravity offset.
func (t Thruster) force(cog Vec3) DOF6 {
	fx := t.Thrust * math.Cos(t.Orientation.Z)
	fy := t.Thrust * math.Sin(t.Orientation.Z)
	fz := t.Thrust * math.Sin(t.Orientation.Y)

	x := cog.X - t.Position.X
	y := cog.Y - t.Position.Y
	z := t.Position.Z - cog.Z

	mx := fy*z + fz*y
	my := fx*z + fz*x
	mz := fx*y + fy*x

	return DOF6{Surge: fx, Sway: fy, Heave: fz, Roll: mx, Pitch: my, Yaw: mz}
}
