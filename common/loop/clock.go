package loop

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (s systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

// ManualClock only moves when told to. Used to drive timers deterministically.
type ManualClock struct {
	now time.Time
	mux sync.Mutex
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (s *ManualClock) Now() time.Time {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.now
}

func (s *ManualClock) Set(now time.Time) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if now.After(s.now) {
		s.now = now
	}
}

func (s *ManualClock) Advance(duration time.Duration) {
	s.Set(s.Now().Add(duration))
}
