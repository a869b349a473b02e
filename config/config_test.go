package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanic-sims/asvswarm"
)

const sampleConfig = `
clock:
  stepmillis: 50

seastate:
  significantwaveheight: 2.5
  headingdeg: 45
  seed: 7
  componentcount: 9

asvs:
  - id: asv-1
    lwl: 4
    bwl: 1.5
    depth: 0.8
    draft: 0.3
    maxspeed: 2.5
    displacement: 0.5
    radiusroll: 0.3
    radiuspitch: 1.0
    radiusyaw: 1.0
    mode: thruster
    thrusters:
      - x: -1
        y: 0.5
        z: 0
      - x: -1
        y: -0.5
        z: 0
    waypoints:
      - x: 100
        y: 0
      - x: 100
        y: 100
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.Clock.StepMillis)
	require.Len(t, cfg.ASVs, 1)
	assert.Len(t, cfg.ASVs[0].Thrusters, 2)
	assert.Len(t, cfg.ASVs[0].Waypoints, 2)
	assert.Equal(t, "asv-1", cfg.ASVs[0].ID)
	assert.Equal(t, 2.5, cfg.SeaState.SignificantWaveHeight)
	assert.EqualValues(t, 7, cfg.SeaState.Seed)
}

func TestLoadDefaultsStepMillis(t *testing.T) {
	path := writeConfig(t, `
seastate:
  significantwaveheight: 2.0
asvs:
  - id: asv-1
    lwl: 4
    bwl: 1.5
    depth: 0.8
    draft: 0.3
    maxspeed: 2.5
    displacement: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultStepMillis), cfg.Clock.StepMillis)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/sim.yaml")
	require.Error(t, err)

	simErr, ok := err.(*asvswarm.SimError)
	require.True(t, ok, "expected *asvswarm.SimError, got %T", err)
	assert.Equal(t, asvswarm.ConfigMalformed, simErr.Kind)
}

func TestLoadRejectsInvalidHullGeometry(t *testing.T) {
	path := writeConfig(t, `
seastate:
  significantwaveheight: 2.0
asvs:
  - id: asv-1
    lwl: 0
    bwl: 1.5
    depth: 0.8
    draft: 0.3
    maxspeed: 2.5
    displacement: 0.5
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingSeaState(t *testing.T) {
	path := writeConfig(t, `
asvs: []
`)
	_, err := Load(path)
	require.Error(t, err)
}
