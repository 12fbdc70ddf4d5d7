package scene

import (
	"math"
	"testing"
)

func TestSpinnerConstantRate(t *testing.T) {
	rate := Rotation{Yaw: 0.05, Pitch: -0.02, Roll: 0.01}
	s := NewSpinner(rate, 30, false)

	for i := range 100 {
		if got := s.Next(); got != rate {
			t.Fatalf("tick %d: Next() = %+v, want %+v", i, got, rate)
		}
	}
}

func TestSpinnerSpinUp(t *testing.T) {
	rate := Rotation{Yaw: 0.05}
	s := NewSpinner(rate, 60, true)

	prev := 0.0
	first := s.Next()
	if first.Yaw <= 0 || first.Yaw >= rate.Yaw {
		t.Fatalf("first delta = %v, want in (0, %v)", first.Yaw, rate.Yaw)
	}
	prev = first.Yaw

	for range 300 {
		r := s.Next()
		if r.Yaw < prev-1e-12 {
			t.Fatalf("critically damped spin-up decreased: %v < %v", r.Yaw, prev)
		}
		if r.Yaw > rate.Yaw+1e-9 {
			t.Fatalf("spin-up overshot: %v", r.Yaw)
		}
		prev = r.Yaw
	}
	if math.Abs(prev-rate.Yaw) > 1e-4 {
		t.Errorf("delta after spin-up = %v, want %v", prev, rate.Yaw)
	}
}

func TestSpinnerImpulseDecays(t *testing.T) {
	rate := Rotation{Pitch: 0.01}
	s := NewSpinner(rate, 60, false)
	s.ApplyImpulse(Rotation{Pitch: 0.5})

	if got := s.Next(); got.Pitch <= rate.Pitch {
		t.Fatalf("impulse had no effect: %v", got.Pitch)
	}
	var last Rotation
	for range 300 {
		last = s.Next()
	}
	if math.Abs(last.Pitch-rate.Pitch) > 1e-4 {
		t.Errorf("delta after impulse = %v, want %v", last.Pitch, rate.Pitch)
	}
}

func TestSpinnerReset(t *testing.T) {
	rate := Rotation{Roll: 0.2}
	s := NewSpinner(rate, 60, false)
	s.ApplyImpulse(Rotation{Roll: 1})
	s.Reset()
	if got := s.Next(); got != rate {
		t.Errorf("Next() after Reset = %+v, want %+v", got, rate)
	}

	s.SetRate(Rotation{Roll: 0.4})
	if s.Rate().Roll != 0.4 {
		t.Errorf("Rate() = %+v", s.Rate())
	}
}

func TestRotationIsZero(t *testing.T) {
	if !(Rotation{}).IsZero() {
		t.Error("zero rotation not reported as zero")
	}
	if (Rotation{Roll: 1e-9}).IsZero() {
		t.Error("nonzero rotation reported as zero")
	}
}
