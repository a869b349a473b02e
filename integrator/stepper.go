// Package integrator provides a minimal fixed-step driver loop, used by the
// simulation driver's Independent mode.
//
// It deliberately does not provide a multi-stage ODE solver: the ASV
// dynamics update is one specific, strictly-ordered explicit step (see the
// asvswarm package's ASV.Step), and reordering or sub-stepping it would
// violate that ordering. What is shared across callers is the "drive
// something forward in fixed increments until a stop condition" shape, not
// the integration math itself.
package integrator

import "time"

// Stepper is anything that can be advanced by one fixed increment and
// report whether it is finished.
type Stepper interface {
	Advance(dt time.Duration) error
	Done() bool
}

// Run drives s forward in dt increments until Done() returns true, an
// Advance call returns a non-nil error, or stop is closed/signalled.
// The returned error is the first error Advance produced, if any.
func Run(s Stepper, dt time.Duration, stop <-chan struct{}) error {
	for !s.Done() {
		select {
		case <-stop:
			return nil
		default:
		}
		if err := s.Advance(dt); err != nil {
			return err
		}
	}
	return nil
}
