package asvswarm

import (
	"math"
	"math/rand"
)

const bretschneiderAlpha = 0.0081

// SeaSurface is a synthesised irregular sea built as a superposition of N
// regular component waves sampled from a Bretschneider spectrum, immutable
// once constructed. The sea surface is a shared, read-only resource: once
// built it may be queried concurrently from any number of ASV goroutines
// without synchronisation.
type SeaSurface struct {
	errChannel

	significantWaveHeight float64
	heading               float64
	seed                  int64
	componentCount        int

	peakFrequency float64
	minFrequency  float64
	maxFrequency  float64

	components []*RegularWave
}

// NewSeaSurface constructs a Bretschneider sea surface with componentCount
// (must be odd and >= 3) component waves. Fails with InvalidSpectrum if
// significantWaveHeight <= 0 or componentCount is even or < 3.
func NewSeaSurface(significantWaveHeight, heading float64, seed int64, componentCount int) (*SeaSurface, error) {
	if !(significantWaveHeight > 0) {
		return nil, newErr(InvalidSpectrum, "significant wave height must be positive, got %g", significantWaveHeight)
	}
	if componentCount < 3 || componentCount%2 == 0 {
		return nil, newErr(InvalidSpectrum, "component count must be odd and >= 3, got %d", componentCount)
	}

	heading = normalise2PI(heading)
	A := bretschneiderAlpha * gravity * gravity * math.Pow(2*math.Pi, -4)
	B := 4 * bretschneiderAlpha * gravity * gravity / (math.Pow(2*math.Pi, 4) * significantWaveHeight * significantWaveHeight)
	fp := 0.946 * math.Pow(B, 0.25)
	fmin := 0.652 * fp
	fmax := 5.946 * fp

	type band struct {
		center float64
		width  float64
		angle  float64
	}

	N := componentCount
	half := (N - 1) / 2
	deltaPeak := (fmax - fmin) / float64(N)
	deltaMu := math.Pi / float64(N)

	bands := make([]band, 0, N)
	bands = append(bands, band{center: fp, width: deltaPeak, angle: heading})

	lowEdge := fp - deltaPeak/2
	if half > 0 {
		widthBelow := (lowEdge - fmin) / float64(half)
		for i := 0; i < half; i++ {
			center := lowEdge - (float64(i)+0.5)*widthBelow
			ang := normalisePI(heading + math.Pi/2 - float64(i)*deltaMu - deltaMu/2)
			bands = append(bands, band{center: center, width: widthBelow, angle: ang})
		}
	}

	highEdge := fp + deltaPeak/2
	if half > 0 {
		widthAbove := (fmax - highEdge) / float64(half)
		for i := 0; i < half; i++ {
			center := highEdge + (float64(i)+0.5)*widthAbove
			ang := normalisePI(heading - float64(i)*deltaMu - deltaMu/2)
			bands = append(bands, band{center: center, width: widthAbove, angle: ang})
		}
	}

	// Deterministic, per-instance PRNG: identical seeds reproduce identical
	// spectra even when invoked concurrently from multiple goroutines, since
	// no state is shared across SeaSurface instances.
	rng := rand.New(rand.NewSource(seed))

	components := make([]*RegularWave, 0, N)
	for _, b := range bands {
		S := (A / math.Pow(b.center, 5)) * math.Exp(-B/math.Pow(b.center, 4))
		amplitude := math.Sqrt(2 * S * b.width)
		phase := rng.Float64() * math.Pi
		rw, err := NewRegularWave(amplitude, b.center, phase, b.angle)
		if err != nil {
			return nil, newErr(InvalidSpectrum, "failed to build component wave at f=%g: %v", b.center, err)
		}
		components = append(components, rw)
	}

	return &SeaSurface{
		significantWaveHeight: significantWaveHeight,
		heading:               heading,
		seed:                  seed,
		componentCount:        componentCount,
		peakFrequency:         fp,
		minFrequency:          fmin,
		maxFrequency:          fmax,
		components:            components,
	}, nil
}

// SignificantWaveHeight returns H_s in metres.
func (s *SeaSurface) SignificantWaveHeight() float64 { return s.significantWaveHeight }

// Heading returns the predominant heading in radians, in [0, 2*PI).
func (s *SeaSurface) Heading() float64 { return s.heading }

// ComponentCount returns N, the number of component waves.
func (s *SeaSurface) ComponentCount() int { return s.componentCount }

// PeakFrequency returns f_p in Hz.
func (s *SeaSurface) PeakFrequency() float64 { return s.peakFrequency }

// MinFrequency returns f_min in Hz.
func (s *SeaSurface) MinFrequency() float64 { return s.minFrequency }

// MaxFrequency returns f_max in Hz.
func (s *SeaSurface) MaxFrequency() float64 { return s.maxFrequency }

// Components returns the N regular component waves. The returned slice must
// not be mutated; callers that need a private copy should copy it.
func (s *SeaSurface) Components() []*RegularWave { return s.components }

// Elevation returns the sum of elevations of all component waves at the
// given location and time. Fails with NegativeTime if t < 0.
func (s *SeaSurface) Elevation(location Vec3, t float64) (float64, error) {
	if t < 0 {
		return 0, s.setErr(newErr(NegativeTime, "elevation queried at t=%g", t))
	}
	s.clearErr()
	var sum float64
	for _, c := range s.components {
		e, err := c.Elevation(location, t)
		if err != nil {
			return 0, s.setErr(err)
		}
		sum += e
	}
	return sum, nil
}
