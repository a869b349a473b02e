package asvswarm

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// Vec3 is a 3-D coordinate or vector in the global east-north-up frame
// (x east, y north, z up; sea level = 0), or, when used for a hull point,
// a body-frame offset in the same handedness.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Norm2D returns the planar (x, y) distance from the origin.
func (v Vec3) Norm2D() float64 {
	return math.Hypot(v.X, v.Y)
}

// DOF6 is the six-tuple rigid-body degree-of-freedom vector: surge, sway,
// heave (linear, along body x/y/z) and roll, pitch, yaw (angular, about
// body x/y/z), following the right-hand rule.
type DOF6 struct {
	Surge, Sway, Heave float64
	Roll, Pitch, Yaw   float64
}

// Array returns the six components in (surge, sway, heave, roll, pitch,
// yaw) order, the indexing used by the constant M/C/K matrices.
func (d DOF6) Array() [6]float64 {
	return [6]float64{d.Surge, d.Sway, d.Heave, d.Roll, d.Pitch, d.Yaw}
}

// dof6FromArray is the inverse of Array.
func dof6FromArray(a [6]float64) DOF6 {
	return DOF6{Surge: a[0], Sway: a[1], Heave: a[2], Roll: a[3], Pitch: a[4], Yaw: a[5]}
}

// Add returns the component-wise sum of two DOF6 vectors.
func (d DOF6) Add(o DOF6) DOF6 {
	return DOF6{
		Surge: d.Surge + o.Surge, Sway: d.Sway + o.Sway, Heave: d.Heave + o.Heave,
		Roll: d.Roll + o.Roll, Pitch: d.Pitch + o.Pitch, Yaw: d.Yaw + o.Yaw,
	}
}

// normalisePI returns the representative of x in (-PI, PI].
func normalisePI(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x <= -math.Pi {
		x += 2 * math.Pi
	} else if x > math.Pi {
		x -= 2 * math.Pi
	}
	return x
}

// normalise2PI returns the representative of x in [0, 2*PI).
func normalise2PI(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}

// norm returns the Euclidean norm of a 3-vector held as []float64, mirroring
// the teacher's vector-as-slice convention for the hot-path math shared with
// mat64-backed computations.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// dot performs the inner product of two equal-length slices.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// rotationZYX returns the rotation matrix R(roll, pitch, yaw) taking a
// body-frame vector to the global frame, built as R = Rz(yaw) Ry(pitch)
// Rx(roll), the composition used to place a body-frame COG offset in global
// coordinates (the ASV invariant cog = origin + R(attitude)*cog_body).
func rotationZYX(roll, pitch, yaw float64) *mat64.Dense {
	sr, cr := math.Sincos(roll)
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)

	return mat64.NewDense(3, 3, []float64{
		cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr,
		sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr,
		-sp, cp * sr, cp * cr,
	})
}

// rotateVec3 applies a 3x3 rotation matrix to a Vec3.
func rotateVec3(r *mat64.Dense, v Vec3) Vec3 {
	in := mat64.NewVector(3, []float64{v.X, v.Y, v.Z})
	var out mat64.Vector
	out.MulVec(r, in)
	return Vec3{out.At(0, 0), out.At(1, 0), out.At(2, 0)}
}

// rotateYaw rotates a body-frame (surge, sway) deflection about the vertical
// axis by yaw radians into the global (east, north) frame, used in step 11 of
// the per-step update. Body forward (surge) maps to the unit vector
// (sin(yaw), cos(yaw)); body lateral (sway) maps to the perpendicular
// (-cos(yaw), sin(yaw)), consistent with heading measured clockwise from
// north.
func rotateYaw(surge, sway, yaw float64) (east, north float64) {
	s, c := math.Sincos(yaw)
	east = surge*s - sway*c
	north = surge*c + sway*s
	return
}
