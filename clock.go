package snowtask

import "time"

// Clock abstracts time for the polling loop so tests can simulate the
// interval without real delay.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that delivers after the given duration.
	After(d time.Duration) <-chan time.Time
}

// realClock is the wall clock used outside of tests.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
