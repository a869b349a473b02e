package asvswarm

import "math"

// dragCoefficientScale is C_DS, the flat-plate drag coefficient used for all
// three translational drag terms (§4.4.1).
const dragCoefficientScale = 1.9

// addedMassCoefficient is C_a from DNV-RP-N103 Table A-1.
const addedMassCoefficient = 1.0

// encounterFrequency returns omega_e = f - (f^2/g)*v*cos(mu), the frequency
// at which a vehicle moving at speed v, with the wave arriving at relative
// bearing mu, encounters crests of a wave of source frequency f.
func encounterFrequency(f, v, mu float64) float64 {
	return f - (f*f/gravity)*v*math.Cos(mu)
}

// computeHullMatrices derives the constant diagonal mass, drag-coefficient
// and stiffness matrices of §4.4.1 from an ASV's hull spec, idealising the
// hull as an elliptic cylinder with semi-axes a = Lwl/2, b = Bwl/2 and
// submerged depth c = T.
func computeHullMatrices(spec ASVSpec) hullMatrices {
	a := spec.LWL / 2
	b := spec.BWL / 2
	c := spec.Draft

	mass := spec.Displacement * seaWaterDensity
	addedSurge := seaWaterDensity * addedMassCoefficient * math.Pi * b * b * (2 * a)
	addedSway := seaWaterDensity * addedMassCoefficient * math.Pi * a * a * (2 * b)
	addedHeave := seaWaterDensity * addedMassCoefficient * math.Pi * a * b * c

	M := DOF6{
		Surge: mass + addedSurge,
		Sway:  mass + addedSway,
		Heave: mass + addedHeave,
		// Added rotational inertia intentionally omitted: legacy keeps only
		// the rigid-body moment of inertia for roll/pitch/yaw.
		Roll:  mass * spec.RadiusRoll * spec.RadiusRoll,
		Pitch: mass * spec.RadiusPitch * spec.RadiusPitch,
		Yaw:   mass * spec.RadiusYaw * spec.RadiusYaw,
	}

	cSurge := 0.5 * seaWaterDensity * dragCoefficientScale * spec.BWL * spec.Draft
	cSway := 0.5 * seaWaterDensity * dragCoefficientScale * spec.LWL * spec.Draft
	cHeave := 0.5 * seaWaterDensity * dragCoefficientScale * spec.LWL * spec.BWL
	C := DOF6{
		Surge: cSurge, Sway: cSway, Heave: cHeave,
		Roll: cHeave, Pitch: cHeave, Yaw: cHeave,
	}

	waterplaneArea := math.Pi * a * b
	ixx := (math.Pi / 4) * a * b * b * b
	iyy := (math.Pi / 4) * a * a * a * b
	K := DOF6{
		Heave: waterplaneArea * seaWaterDensity * gravity,
		Roll:  ixx * seaWaterDensity * gravity,
		Pitch: iyy * seaWaterDensity * gravity,
	}

	return hullMatrices{
		mass:  M,
		drag:  C,
		stiff: K,

		waterplaneArea: waterplaneArea,
		transverseArea: (math.Pi / 2) * b * c,
		profileArea:    (math.Pi / 2) * a * c,
		semiAxisA:      a,
		semiAxisB:      b,
	}
}

// computePressureTable builds the unit-wave pressure table of §4.4.2: K
// entries uniformly spaced across the encounter-frequency range derived from
// sea's [f_min, f_max] and spec's max speed, each the pressure amplitude at
// depth T of a unit-height (A = 0.5 m) wave at that frequency.
func computePressureTable(spec ASVSpec, sea *SeaSurface) (pressureTable, error) {
	omegaMin := encounterFrequency(sea.MinFrequency(), 2*spec.MaxSpeed, 0)
	omegaMax := encounterFrequency(sea.MaxFrequency(), 2*spec.MaxSpeed, math.Pi)

	var table pressureTable
	table.freqMin = omegaMin
	table.freqMax = omegaMax

	step := (omegaMax - omegaMin) / float64(pressureTableSize-1)
	for i := 0; i < pressureTableSize; i++ {
		freq := omegaMin + float64(i)*step
		rw, err := NewRegularWave(pressureUnitAmplitude, freq, 0, 0)
		if err != nil {
			return pressureTable{}, newErr(InvalidSpectrum, "unit pressure table entry %d at encounter freq %g: %v", i, freq, err)
		}
		table.entries[i] = rw.PressureAmplitude(spec.Draft)
	}
	return table, nil
}

// StepInput carries the per-step actuation command: either a rudder angle
// (wave-glider mode) or, for thruster mode, nothing — thruster orientation
// and magnitude are set directly on ASV.Thrusters before calling Step,
// mirroring the legacy calling convention where the controller configures
// each thruster and then triggers one dynamics step.
type StepInput struct {
	UseRudder   bool
	RudderAngle float64 // radians, wave-glider mode only
}

// Step advances the ASV by one fixed timestep dtMillis (milliseconds),
// performing the strict, non-reorderable 11-step update of §4.4.3. It
// returns InvalidRudderAngle without mutating state if |RudderAngle| > PI/2
// in wave-glider mode, TimeNotIncremented if dtMillis <= 0, and
// SpectrumOutOfRange if a component wave's encounter frequency falls outside
// the unit-pressure table — the latter aborts the step with F_wave only
// partially accumulated, so callers must stop stepping this ASV once it
// occurs (per §7's propagation policy, this condition is fatal to the ASV's
// run but must not affect other ASVs).
func (a *ASV) Step(in StepInput, dtMillis float64) error {
	if !(dtMillis > 0) {
		return a.setErr(newErr(TimeNotIncremented, "step size must be positive, got %g ms", dtMillis))
	}
	if in.UseRudder && math.Abs(in.RudderAngle) > math.Pi/2 {
		a.logger.Log("level", "critical", "subsys", "control", "message", "invalid rudder angle", "angle", in.RudderAngle, "t", a.t)
		return a.setErr(newErr(InvalidRudderAngle, "rudder angle %g exceeds +/- pi/2", in.RudderAngle))
	}
	a.clearErr()

	dt := dtMillis / 1000

	// 1. Advance clock.
	a.t += dt

	// 2. Wave force.
	if err := a.accumulateWaveForce(dt); err != nil {
		a.logger.Log("level", "critical", "subsys", "dynamics", "message", "encounter frequency outside unit-pressure table", "t", a.t, "error", err)
		return a.setErr(err)
	}

	// 3. Thrust force.
	if in.UseRudder {
		a.FThrust = gliderThrust(a.V.Heave, a.V.Surge, in.RudderAngle, a.GliderTuning, a.Spec.LWL)
	} else {
		var f DOF6
		for _, th := range a.Thrusters {
			f = f.Add(th.force(a.Spec.COG))
		}
		a.FThrust = f
	}

	// 4. Quadratic drag, sign-preserving.
	a.FDrag = diagQuadraticDrag(a.matrices.drag, a.V)

	// 5. Hydrostatic restoring force.
	a.FRestoring = a.restoringForce()

	// 6. Net force.
	a.FNet = a.FWave.Add(a.FThrust).Add(a.FDrag).Add(a.FRestoring)

	// 7. Acceleration.
	a.A = diagDivide(a.FNet, a.matrices.mass)

	// 8. Velocity.
	a.V = a.V.Add(a.A.Scale(dt))

	// 9. Body-frame deflection.
	a.X = a.V.Scale(dt)

	// 10. Attitude update.
	a.Attitude.Yaw = normalise2PI(a.Attitude.Yaw + a.X.Yaw)
	a.Attitude.Roll += a.X.Roll
	a.Attitude.Pitch += a.X.Pitch

	// 11. Global position update.
	a.updatePosition(dt)

	return nil
}

// Scale returns d with every component multiplied by s.
func (d DOF6) Scale(s float64) DOF6 {
	return DOF6{
		Surge: d.Surge * s, Sway: d.Sway * s, Heave: d.Heave * s,
		Roll: d.Roll * s, Pitch: d.Pitch * s, Yaw: d.Yaw * s,
	}
}

// diagDivide performs element-wise division of f by the diagonal of m.
func diagDivide(f, m DOF6) DOF6 {
	return DOF6{
		Surge: f.Surge / m.Surge, Sway: f.Sway / m.Sway, Heave: f.Heave / m.Heave,
		Roll: f.Roll / m.Roll, Pitch: f.Pitch / m.Pitch, Yaw: f.Yaw / m.Yaw,
	}
}

// diagQuadraticDrag returns -c[i]*v[i]*|v[i]| for each component, the
// sign-preserving quadratic drag law of §4.4.3 step 4.
func diagQuadraticDrag(c, v DOF6) DOF6 {
	quad := func(ci, vi float64) float64 { return -ci * vi * math.Abs(vi) }
	return DOF6{
		Surge: quad(c.Surge, v.Surge), Sway: quad(c.Sway, v.Sway), Heave: quad(c.Heave, v.Heave),
		Roll: quad(c.Roll, v.Roll), Pitch: quad(c.Pitch, v.Pitch), Yaw: quad(c.Yaw, v.Yaw),
	}
}

// accumulateWaveForce implements §4.4.3 step 2: the pressure-integrated wave
// excitation force over five sample points on the idealised hull, summed
// across every component wave of the bound sea surface. F_wave is left at
// zero in still water.
func (a *ASV) accumulateWaveForce(dt float64) error {
	var wave DOF6
	if a.sea == nil {
		a.FWave = wave
		return nil
	}

	components := a.sea.Components()
	n := float64(len(components))
	yawSin, yawCos := math.Sincos(a.Attitude.Yaw)
	aLever := a.matrices.semiAxisA / 4
	bLever := a.matrices.semiAxisB / 4

	aft := a.COG.Sub(Vec3{X: aLever * yawSin, Y: aLever * yawCos})
	fore := a.COG.Add(Vec3{X: aLever * yawSin, Y: aLever * yawCos})
	portSide := a.COG.Sub(Vec3{X: bLever * yawCos, Y: -bLever * yawSin})
	starboard := a.COG.Add(Vec3{X: bLever * yawCos, Y: -bLever * yawSin})

	tableStep := (a.pressure.freqMax - a.pressure.freqMin) / float64(pressureTableSize-1)

	for _, c := range components {
		angle := normalise2PI(c.Heading() - a.Attitude.Yaw)
		freq := encounterFrequency(c.Frequency(), a.V.Surge, angle)

		index := int(math.Round((freq - a.pressure.freqMin) / tableStep))
		if index < 0 || index >= pressureTableSize {
			a.FWave = wave
			return newErr(SpectrumOutOfRange, "encounter frequency %g (bin %d) outside unit-pressure table [0,%d)", freq, index, pressureTableSize)
		}
		p := a.pressure.entries[index]

		scale := math.Min(2*c.Amplitude(), a.Spec.Depth) / n

		phaseCOG, err := c.Phase(a.COG, a.t)
		if err != nil {
			return err
		}
		phaseAft, err := c.Phase(aft, a.t)
		if err != nil {
			return err
		}
		phaseFore, err := c.Phase(fore, a.t)
		if err != nil {
			return err
		}
		phasePS, err := c.Phase(portSide, a.t)
		if err != nil {
			return err
		}
		phaseSB, err := c.Phase(starboard, a.t)
		if err != nil {
			return err
		}

		dpLong := p * (math.Cos(phaseFore) - math.Cos(phaseAft))
		dpTrans := p * (math.Cos(phaseSB) - math.Cos(phasePS))

		wave.Heave += scale * (p * math.Cos(phaseCOG)) * a.matrices.waterplaneArea
		wave.Surge += scale * dpLong * a.matrices.transverseArea
		wave.Sway += scale * dpTrans * a.matrices.profileArea
		wave.Roll += scale * dpTrans * (a.matrices.waterplaneArea / 2) * bLever
		wave.Pitch += scale * dpLong * (a.matrices.waterplaneArea / 2) * aLever
		// Yaw wave forcing is constrained to zero by design (§9 design notes).
	}

	a.FWave = wave
	return nil
}

// restoringForce implements §4.4.3 step 5.
func (a *ASV) restoringForce() DOF6 {
	var elevation float64
	if a.sea != nil {
		e, err := a.sea.Elevation(a.COG, a.t)
		if err == nil {
			elevation = e
		}
	}

	stillWaterCOG := a.Spec.COG.Z
	relativeCOG := a.COG.Z - elevation
	dist := stillWaterCOG - relativeCOG
	if dist > a.Spec.Depth {
		dist = a.Spec.Depth
	}
	if dist < -a.Spec.Depth {
		dist = -a.Spec.Depth
	}

	return DOF6{
		Heave: a.matrices.stiff.Heave * dist,
		Roll:  -a.matrices.stiff.Roll * a.Attitude.Roll,
		Pitch: -a.matrices.stiff.Pitch * a.Attitude.Pitch,
	}
}

// updatePosition implements §4.4.3 step 11: translate the body-frame
// deflection into the global frame, add ocean-current advection, then
// recompute the origin position from the updated COG and the cog-offset
// invariant (cog = origin + R(attitude)*cog_body).
func (a *ASV) updatePosition(dt float64) {
	east, north := rotateYaw(a.X.Surge, a.X.Sway, a.Attitude.Yaw)
	zonal, meridional := a.CurrentField.Velocity(a.t, a.COG)

	a.COG.X += east + zonal*dt
	a.COG.Y += north + meridional*dt
	a.COG.Z += a.X.Heave

	r := rotationZYX(a.Attitude.Roll, a.Attitude.Pitch, a.Attitude.Yaw)
	offset := rotateVec3(r, a.Spec.COG)
	a.Origin = a.COG.Sub(offset)
}
