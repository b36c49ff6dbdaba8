package loop

import (
	"time"
	"vincit.fi/image-viewer/common/logger"
)

const minWakeupDelay = time.Millisecond

// Pump drives a Loop from a render loop that only runs when woken up. Run
// must be called on the loop goroutine, usually once per frame.
type Pump struct {
	loop     *Loop
	wake     func()
	timer    *time.Timer
	deadline time.Time
}

// NewPump registers wake as the wakeup of l. wake is called from other
// goroutines.
func NewPump(l *Loop, wake func()) *Pump {
	l.SetWakeup(wake)
	return &Pump{
		loop: l,
		wake: wake,
	}
}

// Run runs the pending work and arms a wakeup for the next timer.
func (s *Pump) Run() int {
	count := s.loop.RunPending()
	s.arm()
	return count
}

func (s *Pump) arm() {
	next, found := s.loop.NextDeadline()
	if !found {
		s.Stop()
		return
	}

	now := s.loop.Now()
	if s.timer != nil && s.deadline.Equal(next) && next.After(now) {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	delay := next.Sub(now)
	if delay < minWakeupDelay {
		delay = minWakeupDelay
	}
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Next wakeup in %s", delay)
	}
	s.deadline = next
	s.timer = time.AfterFunc(delay, s.wake)
}

func (s *Pump) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
