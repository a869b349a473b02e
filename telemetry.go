package asvswarm

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputBufferSize is the ring buffer's capacity (§4.7).
const OutputBufferSize = 200_000

const telemetryHeader = "time(s) Hs(m) wave_heading(deg) wave_elevation(m) F_surge(N) surge_acc(m/s2) surge_vel(m/s) cog_x(m) cog_y(m) cog_z(m) heel(deg) trim(deg) heading(deg)"

// TelemetrySample is one recorded per-step observation (§3 "Telemetry
// sample", §6's thirteen-field line format).
type TelemetrySample struct {
	Time          float64
	SignificantWaveHeight float64
	WaveHeadingDeg float64
	WaveElevation float64
	SurgeForce    float64
	SurgeAccel    float64
	SurgeVelocity float64
	COG           Vec3
	HeelDeg       float64
	TrimDeg       float64
	HeadingDeg    float64
}

func (s TelemetrySample) line() string {
	return fmt.Sprintf("%g %g %g %g %g %g %g %g %g %g %g %g %g",
		s.Time, s.SignificantWaveHeight, s.WaveHeadingDeg, s.WaveElevation,
		s.SurgeForce, s.SurgeAccel, s.SurgeVelocity,
		s.COG.X, s.COG.Y, s.COG.Z,
		s.HeelDeg, s.TrimDeg, s.HeadingDeg)
}

// Telemetry is a bounded ring buffer of TelemetrySample, flushed to a
// per-ASV output file. When the buffer reaches OutputBufferSize it must be
// flushed and reset by the caller (the simulation driver); Append itself
// never silently drops samples.
type Telemetry struct {
	errChannel

	samples []TelemetrySample
}

// NewTelemetry constructs an empty telemetry ring buffer.
func NewTelemetry() *Telemetry {
	return &Telemetry{samples: make([]TelemetrySample, 0, OutputBufferSize)}
}

// Append adds a sample, returning false if the buffer is already at
// OutputBufferSize capacity (callers must Flush before the next Append).
func (t *Telemetry) Append(s TelemetrySample) bool {
	if len(t.samples) >= OutputBufferSize {
		return false
	}
	t.samples = append(t.samples, s)
	return true
}

// Len returns the number of buffered, unflushed samples.
func (t *Telemetry) Len() int { return len(t.samples) }

// At returns the sample at index, matching get_asv_position_at's query
// contract. Fails with InvalidIndex if index is out of range.
func (t *Telemetry) At(index int) (TelemetrySample, error) {
	if index < 0 || index >= len(t.samples) {
		return TelemetrySample{}, t.setErr(newErr(InvalidIndex, "telemetry index %d out of range [0,%d)", index, len(t.samples)))
	}
	t.clearErr()
	return t.samples[index], nil
}

// Flush appends every buffered sample to <dir>/<asvID>.txt, writing the
// header only if the file does not already exist, then empties the buffer.
// Flushing is idempotent across restarts: re-running with the same output
// directory appends rather than overwrites.
func (t *Telemetry) Flush(dir, asvID string) error {
	if len(t.samples) == 0 {
		return nil
	}
	path := filepath.Join(dir, asvID+".txt")

	writeHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return t.setErr(newErr(AllocationFailed, "opening telemetry file %s: %v", path, err))
	}
	defer f.Close()

	if writeHeader {
		if _, err := f.WriteString(telemetryHeader + "\n"); err != nil {
			return t.setErr(newErr(AllocationFailed, "writing telemetry header to %s: %v", path, err))
		}
	}
	for _, s := range t.samples {
		if _, err := f.WriteString(s.line() + "\n"); err != nil {
			return t.setErr(newErr(AllocationFailed, "writing telemetry sample to %s: %v", path, err))
		}
	}

	t.samples = t.samples[:0]
	t.clearErr()
	return nil
}
