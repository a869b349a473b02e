package asvswarm

import (
	"math"
	"sync"
	"time"

	"github.com/alitto/pond"

	"github.com/oceanic-sims/asvswarm/integrator"
)

// SchedulingMode selects one of §5's two scheduling modes.
type SchedulingMode int

const (
	// TimeSynchronised spawns one concurrent task per ASV per step and
	// joins a barrier before advancing, required when vehicles interact.
	TimeSynchronised SchedulingMode = iota
	// Independent spawns one long-lived task per ASV that drives it to
	// completion without barriers; faster when vehicles do not interact.
	Independent
)

// simNode is one ASV's entry in a Simulation: its dynamics state, controller,
// waypoint list and telemetry buffer, matching §3's "Simulation entity".
type simNode struct {
	asv        *ASV
	controller *Controller
	waypoints  *WaypointList
	telemetry  *Telemetry
}

// Simulation drives any number of ASVs through time, advancing each one's
// controller and dynamics per the selected scheduling mode, recording
// telemetry samples into a
// per-ASV ring buffer and flushing them to an output directory.
type Simulation struct {
	errChannel

	nodes []*simNode
	mode  SchedulingMode
	dt    float64 // ms
}

// NewSimulation creates a simulation driving the given ASVs, each paired
// with its own controller, at the given scheduling mode and step size.
func NewSimulation(mode SchedulingMode, stepMillis float64, pairs ...struct {
	ASV        *ASV
	Controller *Controller
}) (*Simulation, error) {
	if !(stepMillis > 0) {
		return nil, newErr(TimeNotIncremented, "step size must be positive, got %g ms", stepMillis)
	}
	s := &Simulation{mode: mode, dt: stepMillis}
	for _, p := range pairs {
		s.nodes = append(s.nodes, &simNode{asv: p.ASV, controller: p.Controller, waypoints: NewWaypointList(nil), telemetry: NewTelemetry()})
	}
	return s, nil
}

// AddASV attaches an ASV/controller pair to the simulation.
func (s *Simulation) AddASV(asv *ASV, controller *Controller) {
	s.nodes = append(s.nodes, &simNode{asv: asv, controller: controller, waypoints: NewWaypointList(nil), telemetry: NewTelemetry()})
}

// SetWaypoints attaches a waypoint polyline to asv, replacing any previous
// one and resetting its waypoint index to 0.
func (s *Simulation) SetWaypoints(asv *ASV, points []Vec3) error {
	n := s.nodeFor(asv)
	if n == nil {
		return s.setErr(newErr(NullHandle, "asv %q is not part of this simulation", asv.ID))
	}
	n.waypoints = NewWaypointList(points)
	return nil
}

func (s *Simulation) nodeFor(asv *ASV) *simNode {
	for _, n := range s.nodes {
		if n.asv == asv {
			return n
		}
	}
	return nil
}

// RunATimestep advances every ASV still running (i.e. whose waypoint list is
// not Done and whose last step did not error) by exactly one step, per the
// selected scheduling mode, and returns the number of ASVs still running
// after the step.
func (s *Simulation) RunATimestep() int {
	switch s.mode {
	case TimeSynchronised:
		s.stepPooled()
	default:
		var wg sync.WaitGroup
		for _, n := range s.nodes {
			if !s.nodeRunning(n) {
				continue
			}
			wg.Add(1)
			go func(n *simNode) {
				defer wg.Done()
				s.stepNode(n)
			}(n)
		}
		wg.Wait()
	}

	running := 0
	for _, n := range s.nodes {
		if s.nodeRunning(n) {
			running++
		}
	}
	return running
}

func (s *Simulation) stepPooled() {
	pool := pond.New(len(s.nodes), 0, pond.MinWorkers(len(s.nodes)))
	for _, n := range s.nodes {
		n := n
		if !s.nodeRunning(n) {
			continue
		}
		pool.Submit(func() {
			s.stepNode(n)
		})
	}
	pool.StopAndWait()
}

func (s *Simulation) nodeRunning(n *simNode) bool {
	return !n.waypoints.Done() && n.asv.LastError() == nil
}

// stepNode advances one ASV by one step: the controller consumes the
// current waypoint, the dynamics integrate, a telemetry sample is recorded,
// and the waypoint index advances on proximity. A SpectrumOutOfRange error
// is fatal for this ASV only (§7): it stops being stepped on subsequent
// calls to RunATimestep/RunUpToTime/RunUpToWaypoint.
func (s *Simulation) stepNode(n *simNode) {
	wp, ok := n.waypoints.Current()
	if !ok {
		// Waypoints exhausted but still being driven on a time-based
		// schedule (RunUpToTime): hold station at the current COG.
		wp = n.asv.COG
	}

	in := n.controller.Step(wp)
	if err := n.asv.Step(in, s.dt); err != nil {
		n.asv.LogRunComplete()
		return
	}

	var hs, headingDeg, elevation float64
	if sea := n.asv.SeaSurface(); sea != nil {
		hs = sea.SignificantWaveHeight()
		headingDeg = sea.Heading() * 180 / math.Pi
		if e, err := sea.Elevation(n.asv.COG, n.asv.Time()); err == nil {
			elevation = e
		}
	}

	n.telemetry.Append(TelemetrySample{
		Time:                  n.asv.Time(),
		SignificantWaveHeight: hs,
		WaveHeadingDeg:        headingDeg,
		WaveElevation:         elevation,
		SurgeForce:            n.asv.FNet.Surge,
		SurgeAccel:            n.asv.A.Surge,
		SurgeVelocity:         n.asv.V.Surge,
		COG:                   n.asv.COG,
		HeelDeg:                n.asv.Attitude.Roll * 180 / math.Pi,
		TrimDeg:                n.asv.Attitude.Pitch * 180 / math.Pi,
		HeadingDeg:             n.asv.Attitude.Yaw * 180 / math.Pi,
	})

	if ok && n.waypoints.Advance(n.asv.COG) {
		n.asv.LogWaypointReached(n.waypoints.Index()-1, n.waypoints.Len())
		if n.waypoints.Done() {
			n.asv.LogRunComplete()
		}
	}
}

// RunUpToTime drives every ASV forward until t >= tMax, flushing telemetry
// to outDir whenever a node's ring buffer fills or the run ends. It advances
// all ASVs one step at a time with a barrier after each step, whatever the
// scheduling mode.
func (s *Simulation) RunUpToTime(tMax float64, outDir string) error {
	for {
		anyBelow := false
		for _, n := range s.nodes {
			if n.asv.LastError() == nil && n.asv.Time() < tMax {
				anyBelow = true
			}
		}
		if !anyBelow {
			break
		}
		s.runOneGuardedStep(tMax, outDir)
	}
	for _, n := range s.nodes {
		if n.asv.LastError() == nil && !n.waypoints.Done() {
			n.asv.LogRunComplete()
		}
	}
	return s.flushAll(outDir)
}

func (s *Simulation) runOneGuardedStep(tMax float64, outDir string) {
	var wg sync.WaitGroup
	for _, n := range s.nodes {
		n := n
		if n.asv.LastError() != nil || n.asv.Time() >= tMax {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.stepNode(n)
			if n.telemetry.Len() >= OutputBufferSize {
				n.telemetry.Flush(outDir, n.asv.ID)
			}
		}()
	}
	wg.Wait()
}

// RunUpToWaypoint drives all ASVs until each reaches its final waypoint (or
// errors), in the selected scheduling mode, then flushes telemetry to
// outDir.
//
// In TimeSynchronised mode this repeatedly calls RunATimestep (a per-step
// fork/join barrier across every ASV). In Independent mode each ASV is
// driven to completion by its own long-lived goroutine via
// asvswarm/integrator.Run, with no barrier between ASVs, matching §5's
// "faster; used when vehicles do not interact".
func (s *Simulation) RunUpToWaypoint(outDir string) error {
	if s.mode == Independent {
		return s.runIndependent(outDir)
	}
	for s.anyRunning() {
		s.RunATimestep()
		for _, n := range s.nodes {
			if n.telemetry.Len() >= OutputBufferSize {
				if err := n.telemetry.Flush(outDir, n.asv.ID); err != nil {
					return err
				}
			}
		}
	}
	return s.flushAll(outDir)
}

// nodeStepper adapts a simNode to asvswarm/integrator.Stepper, so each
// ASV's full run-to-waypoint drive can be expressed with the generic
// "advance until done" loop of asvswarm/integrator. It flushes the node's
// telemetry to outDir whenever the buffer fills.
type nodeStepper struct {
	sim    *Simulation
	node   *simNode
	outDir string
}

func (ns nodeStepper) Advance(dt time.Duration) error {
	ns.sim.stepNode(ns.node)
	if err := ns.node.asv.LastError(); err != nil {
		return err
	}
	if ns.node.telemetry.Len() >= OutputBufferSize {
		return ns.node.telemetry.Flush(ns.outDir, ns.node.asv.ID)
	}
	return nil
}

func (ns nodeStepper) Done() bool {
	return ns.node.waypoints.Done() || ns.node.asv.LastError() != nil
}

func (s *Simulation) runIndependent(outDir string) error {
	var wg sync.WaitGroup
	for _, n := range s.nodes {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			integrator.Run(nodeStepper{sim: s, node: n, outDir: outDir}, time.Duration(s.dt*float64(time.Millisecond)), nil)
			n.telemetry.Flush(outDir, n.asv.ID)
		}()
	}
	wg.Wait()
	return nil
}

func (s *Simulation) anyRunning() bool {
	for _, n := range s.nodes {
		if s.nodeRunning(n) {
			return true
		}
	}
	return false
}

func (s *Simulation) flushAll(outDir string) error {
	for _, n := range s.nodes {
		if err := n.telemetry.Flush(outDir, n.asv.ID); err != nil {
			return s.setErr(err)
		}
	}
	return nil
}

// GetASVPositionAt queries the telemetry buffer for the sample recorded at
// index for the given ASV.
func (s *Simulation) GetASVPositionAt(asv *ASV, index int) (Vec3, error) {
	n := s.nodeFor(asv)
	if n == nil {
		return Vec3{}, s.setErr(newErr(NullHandle, "asv %q is not part of this simulation", asv.ID))
	}
	sample, err := n.telemetry.At(index)
	if err != nil {
		return Vec3{}, s.setErr(err)
	}
	return sample.COG, nil
}
