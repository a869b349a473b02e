package asvswarm

import "math"

// Wave-glider hydrofoil thrust model constants (§4.4.4), ref: Wang, Tian, Lu,
// Hu & Luo, "Dynamic modeling and simulations of the wave glider".
const (
	gliderHydrofoilCount = 6
	gliderFoilArea       = 0.113 // m^2
	gliderAspectRatio    = 2.0   // lambda
	gliderAttackAngle    = 18.0 * math.Pi / 180.0
	gliderSweepAngle     = 7.0 * math.Pi / 180.0
	gliderCrossFlowCoeff = 0.6 // C_DC
	gliderParasiticDrag  = 0.008
	gliderForceAngle     = 45.0 * math.Pi / 180.0 // alpha_f for propulsive thrust
)

// liftCoefficient returns C_L for the given angle of attack, using the
// wave-glider hydrofoil's fixed aspect ratio and sweep.
func liftCoefficient(attackAngle float64) float64 {
	lambda := gliderAspectRatio
	return (1.8*math.Pi*lambda*attackAngle)/(math.Cos(gliderSweepAngle)*math.Sqrt(lambda*lambda/math.Pow(math.Cos(gliderSweepAngle), 4)+4)+1.8) +
		(gliderCrossFlowCoeff/lambda)*attackAngle*attackAngle
}

// dragCoefficient returns C_D for the given lift coefficient.
func dragCoefficient(cl float64) float64 {
	return gliderParasiticDrag + cl*cl/(0.9*math.Pi*gliderAspectRatio)
}

// gliderThrust computes the wave-glider's surge thrust (from the
// heave-driven hydrofoils) and yaw moment (from the rudder), per §4.4.4.
func gliderThrust(heaveVelocity, surgeVelocity, rudderAngle, tuningFactor, wlLength float64) DOF6 {
	cl := liftCoefficient(gliderAttackAngle)
	cd := dragCoefficient(cl)

	v := heaveVelocity
	liftPerFoil := 0.5 * seaWaterDensity * cl * gliderFoilArea * v * v
	dragPerFoil := 0.5 * seaWaterDensity * cd * gliderFoilArea * v * v
	thrustPerFoil := liftPerFoil*math.Sin(gliderForceAngle) - dragPerFoil*math.Cos(gliderForceAngle)
	surgeThrust := tuningFactor * float64(gliderHydrofoilCount) * thrustPerFoil

	alphaF := math.Abs(rudderAngle)
	vSurge := surgeVelocity
	clRudder := liftCoefficient(gliderAttackAngle)
	liftRudder := 0.5 * seaWaterDensity * clRudder * gliderFoilArea * vSurge * vSurge
	yawMoment := liftRudder * math.Sin(alphaF) * (wlLength / 2)
	if rudderAngle < 0 {
		yawMoment = -yawMoment
	}

	return DOF6{Surge: surgeThrust, Yaw: yawMoment}
}
