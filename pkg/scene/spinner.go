package scene

import (
	"github.com/charmbracelet/harmonica"
)

// Rotation is a yaw/pitch/roll triple in radians.
type Rotation struct {
	Yaw, Pitch, Roll float64
}

// IsZero reports whether all three angles are zero.
func (r Rotation) IsZero() bool {
	return r.Yaw == 0 && r.Pitch == 0 && r.Roll == 0
}

// spinAxis eases the per-tick delta of one axis toward its configured rate.
type spinAxis struct {
	rate  float64 // configured delta per tick
	delta float64 // current delta per tick
	accel float64 // spring velocity of delta
}

func (a *spinAxis) update(s harmonica.Spring) float64 {
	a.delta, a.accel = s.Update(a.delta, a.accel, a.rate)
	return a.delta
}

// Spinner produces the rotation applied to a model on every compute tick.
//
// The deltas follow a critically damped spring toward the configured rate.
// At rest on the rate the spring returns it exactly, so a spinner without
// spin-up yields the configured deltas unchanged. With spin-up the deltas
// start at zero and ease in. Impulses knock the deltas off the rate and the
// spring brings them back.
type Spinner struct {
	yaw, pitch, roll spinAxis
	spring           harmonica.Spring
	spinUp           bool
}

// NewSpinner creates a spinner turning by rate every tick. fps is the tick
// rate the spring is tuned for.
func NewSpinner(rate Rotation, fps int, spinUp bool) *Spinner {
	if fps < 1 {
		fps = 1
	}
	s := &Spinner{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		spinUp: spinUp,
	}
	s.SetRate(rate)
	s.Reset()
	return s
}

// SetRate changes the target rate. The current deltas ease toward it.
func (s *Spinner) SetRate(rate Rotation) {
	s.yaw.rate = rate.Yaw
	s.pitch.rate = rate.Pitch
	s.roll.rate = rate.Roll
}

// Rate returns the target rate.
func (s *Spinner) Rate() Rotation {
	return Rotation{Yaw: s.yaw.rate, Pitch: s.pitch.rate, Roll: s.roll.rate}
}

// Next advances the spinner one tick and returns the rotation to apply.
func (s *Spinner) Next() Rotation {
	return Rotation{
		Yaw:   s.yaw.update(s.spring),
		Pitch: s.pitch.update(s.spring),
		Roll:  s.roll.update(s.spring),
	}
}

// ApplyImpulse adds to the current deltas.
func (s *Spinner) ApplyImpulse(r Rotation) {
	s.yaw.delta += r.Yaw
	s.pitch.delta += r.Pitch
	s.roll.delta += r.Roll
}

// Reset drops any impulse. With spin-up the deltas restart from zero.
func (s *Spinner) Reset() {
	for _, a := range []*spinAxis{&s.yaw, &s.pitch, &s.roll} {
		a.accel = 0
		a.delta = a.rate
		if s.spinUp {
			a.delta = 0
		}
	}
}
