package asvswarm

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// pressureUnitAmplitude is the amplitude (m) of the unit-height wave used to
// populate the unit-wave pressure table: height 1 m, so amplitude 0.5 m.
const pressureUnitAmplitude = 0.5

// pressureTableSize is K, the number of bins in the unit-wave pressure table.
const pressureTableSize = 100

// ASVSpec describes the hull and is fixed for the lifetime of an ASV. Fields
// not named directly in the waterline/draft tuple of spec.md's data model
// (Displacement, the three radii of gyration) are carried here because the
// mass-matrix formulas of §4.4.1 require them; the legacy Asv_specification
// struct (original_source/include/asv.h) carries the same fields.
type ASVSpec struct {
	LWL      float64 // waterline length, m
	BWL      float64 // waterline beam, m
	Depth    float64 // D, m
	Draft    float64 // T, m
	MaxSpeed float64 // m/s

	Displacement float64 // m^3

	RadiusRoll  float64 // roll radius of gyration, m
	RadiusPitch float64 // pitch radius of gyration, m
	RadiusYaw   float64 // yaw radius of gyration, m

	COG Vec3 // centre of gravity offset in body frame
}

func (s ASVSpec) validate() error {
	if !(s.LWL > 0) || !(s.BWL > 0) || !(s.Depth > 0) || !(s.Draft > 0) {
		return newErr(NullHandle, "hull dimensions must be positive, got Lwl=%g Bwl=%g D=%g T=%g", s.LWL, s.BWL, s.Depth, s.Draft)
	}
	if s.Draft > s.Depth {
		return newErr(NullHandle, "draft T=%g exceeds depth D=%g", s.Draft, s.Depth)
	}
	if !(s.MaxSpeed > 0) {
		return newErr(NullHandle, "max speed must be positive, got %g", s.MaxSpeed)
	}
	if !(s.Displacement > 0) {
		return newErr(NullHandle, "displacement must be positive, got %g", s.Displacement)
	}
	return nil
}

// Attitude is the floating attitude of an ASV: roll (heel), pitch (trim) and
// yaw (heading), in radians.
type Attitude struct {
	Roll, Pitch, Yaw float64
}

// PropulsionMode selects which branch of §4.4.3 step 3 an ASV's Step uses.
type PropulsionMode int

const (
	// ThrusterPropulsion sums individually-oriented Thrusters.
	ThrusterPropulsion PropulsionMode = iota
	// WaveGliderPropulsion uses the hydrofoil thrust model of §4.4.4, steered
	// by a rudder angle rather than individual thruster commands.
	WaveGliderPropulsion
)

// hullMatrices holds the diagonal mass, drag-coefficient and stiffness
// matrices of §4.4.1. They never change once computed: all three depend only
// on ASVSpec, which is immutable for the lifetime of an ASV.
type hullMatrices struct {
	mass    DOF6
	drag    DOF6
	stiff   DOF6
	waterplaneArea  float64 // A_wp, used by the wave-force accumulation
	profileArea     float64 // (pi/2)*a*c, beam-profile area used by sway
	transverseArea  float64 // (pi/2)*b*c, transverse area used by surge
	semiAxisA       float64 // a = Lwl/2
	semiAxisB       float64 // b = Bwl/2
}

// pressureTable is the precomputed unit-wave pressure lookup of §4.4.2,
// recomputed in full whenever the bound sea surface changes.
type pressureTable struct {
	freqMin float64
	freqMax float64
	entries [pressureTableSize]float64
}

// ASV is a single 6-DOF simulated vehicle: its fixed hull spec, its dynamic
// state (time, position, attitude, velocity, forces), the constant hull
// matrices and unit-pressure table derived from the spec and the currently
// bound sea surface, and its propulsion hardware (thrusters, or wave-glider
// tuning factor and rudder).
type ASV struct {
	errChannel

	ID   string
	Spec ASVSpec
	Mode PropulsionMode

	Thrusters       []Thruster
	GliderTuning    float64 // wave-glider thrust-model tuning factor
	CurrentField    *OceanCurrent

	sea *SeaSurface

	matrices hullMatrices
	pressure pressureTable

	// Dynamic state (§3 "ASV dynamic state").
	t          float64 // s
	stepMillis float64 // Δt, ms

	Origin Vec3
	COG    Vec3

	Attitude Attitude

	X DOF6 // body-frame deflection this step
	V DOF6 // velocity
	A DOF6 // acceleration

	FWave      DOF6
	FThrust    DOF6
	FDrag      DOF6
	FRestoring DOF6
	FNet       DOF6

	logger kitlog.Logger
}

// ASVLogInit builds the structured logger attached to every ASV, matching
// the teacher's SCLogInit construction (a logfmt logger synchronised on
// stdout, tagged with the owning entity's identifier).
func ASVLogInit(id string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "asv", id)
	return klog
}

// NewASV constructs an ASV bound to spec, with the given initial origin
// position and attitude, step size in milliseconds, and identifier (used for
// logging and telemetry file naming). The ASV starts with no sea surface
// bound (still water) and no propulsion hardware attached; callers set Mode,
// Thrusters/GliderTuning and call BindSeaSurface separately.
func NewASV(id string, spec ASVSpec, initialOrigin Vec3, initialAttitude Attitude, stepMillis float64) (*ASV, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if !(stepMillis > 0) {
		return nil, newErr(TimeNotIncremented, "step size must be positive, got %g ms", stepMillis)
	}

	a := &ASV{
		ID:         id,
		Spec:       spec,
		Mode:       ThrusterPropulsion,
		stepMillis: stepMillis,
		Origin:     initialOrigin,
		Attitude:   initialAttitude,
		logger:     ASVLogInit(id),
	}
	a.matrices = computeHullMatrices(spec)
	a.COG = a.Origin.Add(rotateVec3(rotationZYX(a.Attitude.Roll, a.Attitude.Pitch, a.Attitude.Yaw), spec.COG))
	a.logger.Log("level", "info", "subsys", "asv", "message", "commissioned", "lwl", spec.LWL, "bwl", spec.BWL)
	return a, nil
}

// LogWaypointReached logs a waypoint being reached, matching the teacher's
// status-ticker logging at Mission level (mission.go's LogStatus).
func (a *ASV) LogWaypointReached(index int, total int) {
	a.logger.Log("level", "info", "subsys", "nav", "message", "waypoint reached", "index", index, "of", total, "t", a.t, "cog", a.COG)
}

// LogRunComplete logs the end of this ASV's run, matching the teacher's
// finish-of-propagation log in Mission.Propagate.
func (a *ASV) LogRunComplete() {
	status := "finished"
	if err := a.LastError(); err != nil {
		status = err.Error()
	}
	a.logger.Log("level", "notice", "subsys", "asv", "status", status, "t", a.t, "cog", a.COG)
}

// BindSeaSurface swaps the ASV's sea-surface reference and recomputes the
// unit-wave pressure table against it, per the lifecycle invariant that
// "changing the reference clears the unit-pressure cache and recomputes it"
// (Scenario E exercises this: rebinding to a sea surface with a different
// H_s must change the table's entries, never leave it stale).
func (a *ASV) BindSeaSurface(sea *SeaSurface) error {
	a.sea = sea
	if sea == nil {
		a.pressure = pressureTable{}
		return nil
	}
	table, err := computePressureTable(a.Spec, sea)
	if err != nil {
		return a.setErr(err)
	}
	a.pressure = table
	a.clearErr()
	return nil
}

// SeaSurface returns the currently bound sea surface, or nil in still water.
func (a *ASV) SeaSurface() *SeaSurface { return a.sea }

// Time returns the current simulation time in seconds.
func (a *ASV) Time() float64 { return a.t }
