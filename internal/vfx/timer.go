package vfx

import "time"

// Timer is a one-shot countdown. Durations are integer nanoseconds, so a run
// of tick deltas that sums to the duration finishes exactly on its last tick.
type Timer struct {
	elapsed  time.Duration
	duration time.Duration
}

func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Tick advances the timer, clamping at the duration.
func (t *Timer) Tick(dt time.Duration) {
	t.elapsed += dt
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

func (t Timer) Finished() bool           { return t.elapsed >= t.duration }
func (t Timer) Elapsed() time.Duration   { return t.elapsed }
func (t Timer) Duration() time.Duration  { return t.duration }
func (t Timer) Remaining() time.Duration { return t.duration - t.elapsed }

// Fraction returns elapsed/duration in [0, 1]. A zero-length timer is done.
func (t Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}
