// Package clock lets services read wall time through an injectable Clock so tests
// can pin "now" to a specific minute of a specific day.
package clock

import (
	"sync"
	"time"

	"roomslot/shared/timezone"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns a Clock backed by timezone.Now.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return timezone.Now()
}

// FakeClock only moves when Set or Advance is called. Safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func Fake(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *FakeClock) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = now
}

func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}
