package asvswarm

import (
	"math"
	"math/rand"

	"github.com/alitto/pond"
	"github.com/samber/lo"
)

// tuningSimDuration is the simulated duration (s) of each short evaluation
// simulation: "2 simulated minutes" (§4.6).
const tuningSimDuration = 120.0

// tuningWaveHeights and tuningHeadings are the 5x8 = 40 (wave-height,
// heading) combinations evaluated per candidate gain vector.
var tuningWaveHeights = []float64{1.0, 2.0, 3.0, 4.0, 5.0}

func tuningHeadings() []float64 {
	headings := make([]float64, 8)
	for i := range headings {
		headings[i] = float64(i) * math.Pi / 4
	}
	return headings
}

// GainVector is the (P_pos, I_pos, D_pos) position-gain triple the tuning
// search optimises; heading gains are held fixed by the caller's
// EvaluateFunc.
type GainVector struct {
	P, I, D int
}

// EvaluateFunc builds a fresh ASV/controller pair for one (wave height,
// heading) trial with the given candidate position gains, runs it for
// tuningSimDuration seconds towards a fixed waypoint, and returns the
// RMS heading error over the run. Supplied by the caller so the tuning
// search stays independent of any one ASV configuration.
type EvaluateFunc func(gains GainVector, waveHeight, heading float64, seed int64) float64

// TuningSearch runs the tuning search's 40-simulation cost evaluation,
// grounded on the original's "simulate_for_tunning" sweep over significant
// wave heights and initial headings, parallelised with an alitto/pond
// worker pool capped at 40 concurrent evaluations (§5).
type TuningSearch struct {
	Evaluate EvaluateFunc
	Seed     int64
}

// cost returns the average RMS heading error across the 5x8 (wave height,
// heading) combinations for gains, evaluated concurrently.
func (ts *TuningSearch) cost(gains GainVector) float64 {
	headings := tuningHeadings()
	type job struct {
		h  float64
		hd float64
	}
	jobs := make([]job, 0, len(tuningWaveHeights)*len(headings))
	for _, h := range tuningWaveHeights {
		for _, hd := range headings {
			jobs = append(jobs, job{h, hd})
		}
	}

	pool := pond.New(len(jobs), 0, pond.MinWorkers(len(jobs)))
	results := make([]float64, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		pool.Submit(func() {
			results[i] = ts.Evaluate(gains, j.h, j.hd, ts.Seed)
		})
	}
	pool.StopAndWait()

	var sum float64
	for _, r := range results {
		sum += r
	}
	return sum / float64(len(results))
}

// LocalDescent implements §4.6's local gradient-descent search: starting
// from a random integer gain vector in [lower, upper], each of the given
// number of iterations evaluates all 27 neighbours (each gain +delta, unchanged, or
// -delta) and moves to whichever has the lowest cost.
func (ts *TuningSearch) LocalDescent(lower, upper, delta int, iterations int, rngSeed int64) (GainVector, float64) {
	rng := rand.New(rand.NewSource(rngSeed))
	span := upper - lower
	current := GainVector{
		P: lower + rng.Intn(span+1),
		I: lower + rng.Intn(span+1),
		D: lower + rng.Intn(span+1),
	}
	bestCost := ts.cost(current)

	offsets := []int{-delta, 0, delta}
	for iter := 0; iter < iterations; iter++ {
		type candidate struct {
			gains GainVector
			cost  float64
		}
		neighbours := make([]GainVector, 0, 27)
		for _, dp := range offsets {
			for _, di := range offsets {
				for _, dd := range offsets {
					neighbours = append(neighbours, GainVector{
						P: current.P + dp,
						I: current.I + di,
						D: current.D + dd,
					})
				}
			}
		}

		best := candidate{gains: current, cost: bestCost}
		for _, n := range neighbours {
			c := ts.cost(n)
			if c < best.cost {
				best = candidate{gains: n, cost: c}
			}
		}
		current, bestCost = best.gains, best.cost
	}
	return current, bestCost
}

// ExhaustiveGrid implements §4.6's exhaustive search: the Cartesian product
// of (lower, upper, step) for all three gains, evaluated and minimised.
// Deterministic in the candidate gains themselves, so re-running with the
// same bounds and EvaluateFunc seed reproduces the same best vector
// (Scenario F). The per-gain value range is built with samber/lo's
// RangeWithSteps; the Cartesian product is walked with three nested loops.
func (ts *TuningSearch) ExhaustiveGrid(lower, upper, step int) (GainVector, float64) {
	values := lo.RangeWithSteps(lower, upper+1, step)

	best := GainVector{P: lower, I: lower, D: lower}
	bestCost := math.Inf(1)

	for _, p := range values {
		for _, i := range values {
			for _, d := range values {
				g := GainVector{P: p, I: i, D: d}
				c := ts.cost(g)
				if c < bestCost {
					bestCost, best = c, g
				}
			}
		}
	}
	return best, bestCost
}
