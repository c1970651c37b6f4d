package clock

import "time"

// Clock supplies the current time. Services take a Clock so time-dependent
// rules stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func NewSystem() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// NewFixed returns a Clock pinned to t.
func NewFixed(t time.Time) Clock {
	return fixedClock{t: t.UTC()}
}
