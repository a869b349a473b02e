package asvswarm

import "math"

const (
	seaWaterDensity = 1025.0 // kg/m^3, rho
	gravity         = 9.81   // m/s^2, g
)

// RegularWave is a single sinusoidal component wave: amplitude, frequency,
// phase lag and heading, immutable once constructed. The derived fields
// (height, period, wavelength, wavenumber) are cached at construction time.
type RegularWave struct {
	errChannel

	amplitude float64 // m, A
	frequency float64 // Hz, f
	phase     float64 // rad, phi
	heading   float64 // rad, normalised to [0, 2*PI)

	height     float64
	period     float64
	wavelength float64
	wavenumber float64
}

// NewRegularWave constructs a regular wave. Amplitude and frequency must be
// strictly positive; heading is normalised to [0, 2*PI) at construction.
func NewRegularWave(amplitude, frequency, phase, heading float64) (*RegularWave, error) {
	if !(amplitude > 0) || !(frequency > 0) {
		return nil, newErr(InvalidSpectrum, "amplitude and frequency must be positive, got A=%g f=%g", amplitude, frequency)
	}
	period := 1 / frequency
	wavelength := gravity * period * period / (2 * math.Pi)
	w := &RegularWave{
		amplitude:  amplitude,
		frequency:  frequency,
		phase:      phase,
		heading:    normalise2PI(heading),
		height:     2 * amplitude,
		period:     period,
		wavelength: wavelength,
		wavenumber: 2 * math.Pi / wavelength,
	}
	return w, nil
}

// Amplitude returns the wave amplitude A in metres.
func (w *RegularWave) Amplitude() float64 { return w.amplitude }

// Frequency returns the wave frequency f in Hz.
func (w *RegularWave) Frequency() float64 { return w.frequency }

// Heading returns the wave heading in radians, normalised to [0, 2*PI).
func (w *RegularWave) Heading() float64 { return w.heading }

// Wavelength returns the derived wavelength L = g*T^2/(2*PI).
func (w *RegularWave) Wavelength() float64 { return w.wavelength }

// Wavenumber returns the derived wavenumber k = 2*PI/L.
func (w *RegularWave) Wavenumber() float64 { return w.wavenumber }

// Period returns the derived wave period T = 1/f.
func (w *RegularWave) Period() float64 { return w.period }

// Phase returns the wave phase k*(x*sin(heading) + y*cos(heading)) -
// 2*PI*f*t + phase_lag at the given location and time. Heading is measured
// clockwise from north (the y-axis), hence x uses sin and y uses cos. Fails
// with NegativeTime if t < 0.
func (w *RegularWave) Phase(location Vec3, t float64) (float64, error) {
	if t < 0 {
		return 0, w.setErr(newErr(NegativeTime, "phase queried at t=%g", t))
	}
	w.clearErr()
	sh, ch := math.Sincos(w.heading)
	return w.wavenumber*(location.X*sh+location.Y*ch) - 2*math.Pi*w.frequency*t + w.phase, nil
}

// Elevation returns A*cos(phase(location, t)).
func (w *RegularWave) Elevation(location Vec3, t float64) (float64, error) {
	phase, err := w.Phase(location, t)
	if err != nil {
		return 0, err
	}
	return w.amplitude * math.Cos(phase), nil
}

// PressureAmplitude returns the sub-surface pressure amplitude rho*g*A*e^(-k*d)
// at depth d (metres, positive downward).
func (w *RegularWave) PressureAmplitude(depth float64) float64 {
	return seaWaterDensity * gravity * w.amplitude * math.Exp(-w.wavenumber*depth)
}
