package usecase

import "time"

// Clock abstracts time for the initializer and dispatcher so tests can drive
// ticks without real timers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type systemClock struct{}

// NewSystemClock returns the wall-clock implementation used outside tests.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{inner: time.NewTicker(d)}
}

type systemTicker struct {
	inner *time.Ticker
}

func (t systemTicker) Chan() <-chan time.Time {
	return t.inner.C
}

func (t systemTicker) Stop() {
	t.inner.Stop()
}
