package dungeon

import "time"

// SwingPhase is the state of the attack swing.
type SwingPhase int

const (
	SwingIdle SwingPhase = iota
	SwingWindUp
	SwingReturn
)

// String returns a human-readable name for the phase.
func (p SwingPhase) String() string {
	switch p {
	case SwingIdle:
		return "idle"
	case SwingWindUp:
		return "wind-up"
	case SwingReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Swing animates the weapon angle over a fixed wall-clock duration: linear
// wind-up to target/2 over the first half, mirrored linear return over the
// second half. At most one swing is in flight.
type Swing struct {
	Duration time.Duration
	Target   float64 // degrees

	start    time.Time
	armed    bool
	angle    float64
	phase    SwingPhase
	progress float64
}

// NewSwing creates an idle swing.
func NewSwing(duration time.Duration, target float64) *Swing {
	return &Swing{Duration: duration, Target: target}
}

// Trigger arms the swing at now. It is a no-op while a swing is in flight.
func (s *Swing) Trigger(now time.Time) bool {
	if s.armed {
		return false
	}
	s.armed = true
	s.start = now
	s.progress = 0
	return true
}

// Tick advances the animation to now and returns the current angle.
// It reports completed=true on the tick that returns the swing to idle.
// Progress of exactly 1 already completes; the return formula yields 0 there
// too, so the sweep shape is unchanged.
func (s *Swing) Tick(now time.Time) (angle float64, completed bool) {
	if !s.armed {
		return s.angle, false
	}

	progress := float64(now.Sub(s.start)) / float64(s.Duration)
	s.progress = progress

	switch {
	case progress >= 1:
		s.angle = 0
		s.armed = false
		s.phase = SwingIdle
		return s.angle, true
	case progress > 0.5:
		half := s.Target / 2
		s.angle = half - (s.Target*progress - half)
		s.phase = SwingReturn
	default:
		s.angle = s.Target * progress
		s.phase = SwingWindUp
	}
	return s.angle, false
}

// Angle returns the angle computed by the last Tick.
func (s *Swing) Angle() float64 {
	return s.angle
}

// Phase returns the phase computed by the last Tick.
func (s *Swing) Phase() SwingPhase {
	if !s.armed {
		return SwingIdle
	}
	return s.phase
}

// Armed reports whether a swing is in flight.
func (s *Swing) Armed() bool {
	return s.armed
}

// Progress returns the progress computed by the last Tick.
func (s *Swing) Progress() float64 {
	return s.progress
}

// Reset cancels any swing in flight.
func (s *Swing) Reset() {
	s.armed = false
	s.angle = 0
	s.phase = SwingIdle
	s.progress = 0
}
