// Package config loads the structured configuration describing a set of
// ASVs, the clock, and the sea state, per §6's "Configuration input". It is
// format-agnostic (JSON/YAML/TOML all decode through the same viper
// Unmarshal call): this is genuinely ambient config-loading infrastructure,
// not a bespoke parser for any one format, matching the spec's exclusion of
// "TOML configuration" parsing detail from the core's scope.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/oceanic-sims/asvswarm"
)

// ThrusterConfig is one thruster's body-frame mounting position.
type ThrusterConfig struct {
	X, Y, Z float64
}

// WaypointConfig is one (x, y) waypoint target in the global frame.
type WaypointConfig struct {
	X, Y float64
}

// ASVConfig describes one ASV entry: hull geometry, COG, radii of gyration,
// initial position and attitude, thrusters and waypoints (§6).
type ASVConfig struct {
	ID string

	LWL, BWL, Depth, Draft, MaxSpeed, Displacement float64
	RadiusRoll, RadiusPitch, RadiusYaw             float64
	COGX, COGY, COGZ                               float64

	InitialX, InitialY, InitialZ          float64
	InitialRoll, InitialPitch, InitialYaw float64

	Mode         string // "thruster" or "wave_glider"
	GliderTuning float64

	Thrusters []ThrusterConfig
	Waypoints []WaypointConfig
}

// ClockConfig is the optional clock entry; StepMillis defaults to 40 when
// absent from the configuration source.
type ClockConfig struct {
	StepMillis float64
}

// DefaultStepMillis is the clock's default step size (§6).
const DefaultStepMillis = 40

// SeaStateConfig carries the significant wave height, predominant heading
// (in degrees, as in the configuration source; Load does not convert it, the
// caller converts it to radians) and RNG seed supplied alongside the ASV
// entries.
type SeaStateConfig struct {
	SignificantWaveHeight float64
	HeadingDeg            float64
	Seed                  int64
	ComponentCount        int
}

// Config is the top-level decoded configuration.
type Config struct {
	ASVs     []ASVConfig
	Clock    ClockConfig
	SeaState SeaStateConfig
}

// Load reads and decodes the configuration file at path using viper (format
// inferred from the file extension), returning a *asvswarm.SimError with
// Kind ConfigMalformed on any read or decode failure.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("clock.stepmillis", DefaultStepMillis)

	if err := v.ReadInConfig(); err != nil {
		return nil, configError("reading configuration file %s: %v", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configError("decoding configuration file %s: %v", path, err)
	}

	if cfg.Clock.StepMillis <= 0 {
		cfg.Clock.StepMillis = DefaultStepMillis
	}
	for _, a := range cfg.ASVs {
		if a.LWL <= 0 || a.BWL <= 0 || a.Depth <= 0 || a.Draft <= 0 {
			return nil, configError("asv %q: hull geometry must be positive", a.ID)
		}
	}
	if cfg.SeaState.SignificantWaveHeight <= 0 {
		return nil, configError("sea state: significant wave height must be positive")
	}

	return &cfg, nil
}

func configError(format string, args ...interface{}) error {
	return &asvswarm.SimError{Kind: asvswarm.ConfigMalformed, Msg: fmt.Sprintf(format, args...)}
}
