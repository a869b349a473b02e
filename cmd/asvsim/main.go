// Command asvsim drives a small swarm simulation from a configuration file
// and writes per-ASV telemetry to an output directory. It is a thin CLI
// wrapper, not part of the simulation core: argument parsing and wiring
// only, per §1's exclusion of "a configuration file parser" from the core's
// scope.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/oceanic-sims/asvswarm"
	"github.com/oceanic-sims/asvswarm/config"
)

func main() {
	app := &cli.App{
		Name:  "asvsim",
		Usage: "run a coupled wave-field / rigid-body ASV swarm simulation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true, Usage: "path to the simulation configuration file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "out", Usage: "output directory for telemetry files"},
			&cli.Float64Flag{Name: "duration", Aliases: []string{"d"}, Value: 600, Usage: "simulated duration in seconds"},
			&cli.BoolFlag{Name: "independent", Usage: "use the Independent scheduling mode instead of TimeSynchronised"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.String("out"), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	sea, err := asvswarm.NewSeaSurface(cfg.SeaState.SignificantWaveHeight, cfg.SeaState.HeadingDeg*radiansPerDegree, cfg.SeaState.Seed, componentCountOrDefault(cfg.SeaState.ComponentCount))
	if err != nil {
		return err
	}

	mode := asvswarm.TimeSynchronised
	if c.Bool("independent") {
		mode = asvswarm.Independent
	}

	sim, err := asvswarm.NewSimulation(mode, cfg.Clock.StepMillis)
	if err != nil {
		return err
	}

	for _, a := range cfg.ASVs {
		asv, err := buildASV(a, sea, cfg.Clock.StepMillis)
		if err != nil {
			return fmt.Errorf("asv %q: %w", a.ID, err)
		}
		ctrl, err := asvswarm.NewController(asv)
		if err != nil {
			return err
		}
		ctrl.SetGainsPosition(1, 0, 0)
		ctrl.SetGainsHeading(1, 0, 0)
		sim.AddASV(asv, ctrl)
		if err := sim.SetWaypoints(asv, toWaypoints(a.Waypoints)); err != nil {
			return err
		}
	}

	return sim.RunUpToTime(c.Float64("duration"), c.String("out"))
}

const radiansPerDegree = 3.14159265358979323846 / 180

func componentCountOrDefault(n int) int {
	if n <= 0 {
		return 7
	}
	return n
}

func buildASV(a config.ASVConfig, sea *asvswarm.SeaSurface, stepMillis float64) (*asvswarm.ASV, error) {
	spec := asvswarm.ASVSpec{
		LWL:          a.LWL,
		BWL:          a.BWL,
		Depth:        a.Depth,
		Draft:        a.Draft,
		MaxSpeed:     a.MaxSpeed,
		Displacement: a.Displacement,
		RadiusRoll:   a.RadiusRoll,
		RadiusPitch:  a.RadiusPitch,
		RadiusYaw:    a.RadiusYaw,
		COG:          asvswarm.Vec3{X: a.COGX, Y: a.COGY, Z: a.COGZ},
	}
	origin := asvswarm.Vec3{X: a.InitialX, Y: a.InitialY, Z: a.InitialZ}
	attitude := asvswarm.Attitude{Roll: a.InitialRoll, Pitch: a.InitialPitch, Yaw: a.InitialYaw}

	asv, err := asvswarm.NewASV(a.ID, spec, origin, attitude, stepMillis)
	if err != nil {
		return nil, err
	}
	if err := asv.BindSeaSurface(sea); err != nil {
		return nil, err
	}

	if a.Mode == "wave_glider" {
		asv.Mode = asvswarm.WaveGliderPropulsion
		asv.GliderTuning = a.GliderTuning
	} else {
		asv.Mode = asvswarm.ThrusterPropulsion
		for _, t := range a.Thrusters {
			asv.Thrusters = append(asv.Thrusters, asvswarm.NewThruster(asvswarm.Vec3{X: t.X, Y: t.Y, Z: t.Z}))
		}
	}
	return asv, nil
}

func toWaypoints(points []config.WaypointConfig) []asvswarm.Vec3 {
	out := make([]asvswarm.Vec3, len(points))
	for i, p := range points {
		out[i] = asvswarm.Vec3{X: p.X, Y: p.Y}
	}
	return out
}
