package asvswarm

import "math"

// pidIntegralDecay is gamma, the exponential decay applied to the running
// integral error (§4.5): e_int <- e + gamma*e_int.
const pidIntegralDecay = 0.9

// maxThrusterThrust is the 5 N capacity of a single thruster.
const maxThrusterThrust = 5.0

// maxRudderAngle bounds the wave-glider rudder command to +/- PI/6.
const maxRudderAngle = math.Pi / 6

// Thruster layout indices matching the four-thruster configuration:
//
//	Fore PS        Fore SB
//	[forePort]-----[foreStbd]
//	[aftPort] -----[aftStbd]
//	Aft PS         Aft SB
const (
	forePort = iota
	foreStbd
	aftPort
	aftStbd
)

// Gains is a single P/I/D gain triple.
type Gains struct {
	P, I, D float64
}

// Controller is a PID waypoint-steering controller bound to one ASV. It
// tracks running position and heading error accumulators (last error,
// exponentially decayed integral, derivative) and maps them to either
// differential thruster thrusts or a rudder angle, depending on the bound
// ASV's propulsion mode.
type Controller struct {
	errChannel

	asv *ASV

	PositionGains Gains
	HeadingGains  Gains

	posError, posErrorIntegral, posErrorPrev   float64
	headError, headErrorIntegral, headErrorPrev float64
}

// NewController constructs a controller bound to asv with all gains and
// error accumulators zeroed.
func NewController(asv *ASV) (*Controller, error) {
	if asv == nil {
		return nil, newErr(NullHandle, "controller requires a non-nil ASV")
	}
	return &Controller{asv: asv}, nil
}

// SetGainsPosition sets the position-error PID gains.
func (c *Controller) SetGainsPosition(p, i, d float64) { c.PositionGains = Gains{p, i, d} }

// SetGainsHeading sets the heading-error PID gains.
func (c *Controller) SetGainsHeading(p, i, d float64) { c.HeadingGains = Gains{p, i, d} }

// ResetErrors zeros the running error accumulators, used between tuning-
// search evaluations so Step's idempotence (Testable Property 6) holds
// across independent short simulations sharing one Controller.
func (c *Controller) ResetErrors() {
	c.posError, c.posErrorIntegral, c.posErrorPrev = 0, 0, 0
	c.headError, c.headErrorIntegral, c.headErrorPrev = 0, 0, 0
}

// Step computes position and heading error against waypoint and returns the
// StepInput to feed into the bound ASV's Step. In ThrusterPropulsion mode it
// also sets thrust directly on the ASV's four thrusters (forePort, foreStbd,
// aftPort, aftStbd, in that order); in WaveGliderPropulsion mode it returns a
// rudder angle clamped to +/- PI/6.
func (c *Controller) Step(waypoint Vec3) StepInput {
	origin := c.asv.Origin
	yaw := c.asv.Attitude.Yaw
	fs, fc := math.Sincos(yaw)
	forward := Vec3{X: fs, Y: fc}

	toWaypoint := waypoint.Sub(origin)
	cross := forward.X*toWaypoint.Y - forward.Y*toWaypoint.X
	dot := forward.X*toWaypoint.X + forward.Y*toWaypoint.Y

	headErr := math.Atan2(cross, dot)
	dist := toWaypoint.Norm2D()
	posErr := dist
	if dot < 0 {
		posErr = -dist
	}

	c.headErrorIntegral = headErr + pidIntegralDecay*c.headErrorIntegral
	headErrDiff := headErr - c.headErrorPrev
	c.headErrorPrev = headErr
	c.headError = headErr

	c.posErrorIntegral = posErr + pidIntegralDecay*c.posErrorIntegral
	posErrDiff := posErr - c.posErrorPrev
	c.posErrorPrev = posErr
	c.posError = posErr

	if c.asv.Mode == WaveGliderPropulsion {
		rudder := c.HeadingGains.P*headErr + c.HeadingGains.I*c.headErrorIntegral + c.HeadingGains.D*headErrDiff
		if rudder > maxRudderAngle {
			rudder = maxRudderAngle
		} else if rudder < -maxRudderAngle {
			rudder = -maxRudderAngle
		}
		return StepInput{UseRudder: true, RudderAngle: rudder}
	}

	headingThrust := c.HeadingGains.P*headErr + c.HeadingGains.I*c.headErrorIntegral + c.HeadingGains.D*headErrDiff
	positionThrust := c.PositionGains.P*posErr + c.PositionGains.I*c.posErrorIntegral + c.PositionGains.D*posErrDiff

	port := positionThrust + headingThrust
	starboard := positionThrust - headingThrust

	maxAbs := math.Max(math.Abs(port), math.Abs(starboard))
	if maxAbs > maxThrusterThrust {
		ratio := maxThrusterThrust / maxAbs
		port *= ratio
		starboard *= ratio
	}

	c.setSideThrust(port, aftPort, forePort)
	c.setSideThrust(starboard, aftStbd, foreStbd)

	return StepInput{UseRudder: false}
}

// setSideThrust assigns a signed side thrust to the aft thruster when
// non-negative, or to the fore thruster (idling the other) when negative,
// per §4.5's "positive sides drive the aft thruster, negative sides drive
// the fore thruster" rule.
func (c *Controller) setSideThrust(thrust float64, aftIndex, foreIndex int) {
	if aftIndex >= len(c.asv.Thrusters) || foreIndex >= len(c.asv.Thrusters) {
		return
	}
	if thrust >= 0 {
		c.asv.Thrusters[aftIndex].SetThrust(Vec3{}, thrust)
		c.asv.Thrusters[foreIndex].SetThrust(Vec3{}, 0)
	} else {
		c.asv.Thrusters[aftIndex].SetThrust(Vec3{}, 0)
		c.asv.Thrusters[foreIndex].SetThrust(Vec3{}, thrust)
	}
}
