package loop

import (
	"container/heap"
	"sync"
	"time"
	"vincit.fi/image-viewer/common/logger"
)

// Loop runs deferred callbacks and timers on the goroutine that calls
// RunPending. Post may be called from any goroutine, everything else belongs
// to the loop goroutine.
type Loop struct {
	clock  Clock
	posted []func()
	timers timerQueue
	seq    uint64
	wakeup func()
	mux    sync.Mutex
}

type Timer struct {
	loop     *Loop
	deadline time.Time
	fn       func()
	seq      uint64
	index    int
}

func New(clock Clock) *Loop {
	return &Loop{
		clock:  clock,
		timers: timerQueue{},
	}
}

func (s *Loop) Now() time.Time {
	return s.clock.Now()
}

// SetWakeup registers a function that is called whenever new work is posted
// so that the owner can schedule a RunPending call.
func (s *Loop) SetWakeup(wakeup func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.wakeup = wakeup
}

func (s *Loop) Post(fn func()) {
	s.mux.Lock()
	s.posted = append(s.posted, fn)
	wakeup := s.wakeup
	s.mux.Unlock()

	if wakeup != nil {
		wakeup()
	}
}

func (s *Loop) AfterFunc(duration time.Duration, fn func()) *Timer {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.seq++
	timer := &Timer{
		loop:     s,
		deadline: s.clock.Now().Add(duration),
		fn:       fn,
		seq:      s.seq,
		index:    -1,
	}
	heap.Push(&s.timers, timer)
	return timer
}

// Stop cancels the timer. Returns false if it already fired or was stopped.
func (s *Timer) Stop() bool {
	if s == nil {
		return false
	}
	s.loop.mux.Lock()
	defer s.loop.mux.Unlock()
	if s.index < 0 {
		return false
	}
	heap.Remove(&s.loop.timers, s.index)
	return true
}

func (s *Timer) Active() bool {
	if s == nil {
		return false
	}
	s.loop.mux.Lock()
	defer s.loop.mux.Unlock()
	return s.index >= 0
}

func (s *Timer) Deadline() time.Time {
	return s.deadline
}

func (s *Loop) NextDeadline() (time.Time, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	return s.timers[0].deadline, true
}

func (s *Loop) HasPending() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.posted) > 0
}

// RunPending runs posted callbacks and the timers that are due. Timers armed
// while running are left for the next call. Returns the number of callbacks run.
func (s *Loop) RunPending() int {
	s.mux.Lock()
	posted := s.posted
	s.posted = nil
	lastSeq := s.seq
	s.mux.Unlock()

	for _, fn := range posted {
		fn()
	}

	count := len(posted)
	for {
		timer := s.popDue(lastSeq)
		if timer == nil {
			break
		}
		timer.fn()
		count++
	}
	if count > 0 && logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Loop ran %d callbacks", count)
	}
	return count
}

func (s *Loop) popDue(lastSeq uint64) *Timer {
	s.mux.Lock()
	defer s.mux.Unlock()
	now := s.clock.Now()
	var due *Timer
	for i, timer := range s.timers {
		if timer.deadline.After(now) || timer.seq > lastSeq {
			continue
		}
		if due == nil || s.timers.Less(i, due.index) {
			due = timer
		}
	}
	if due == nil {
		return nil
	}
	heap.Remove(&s.timers, due.index)
	return due
}

// RunUntil moves a ManualClock forward to deadline one timer at a time so
// that each timer sees the time it was scheduled for.
func (s *Loop) RunUntil(deadline time.Time) {
	clock, ok := s.clock.(*ManualClock)
	if !ok {
		logger.Warn.Print("RunUntil called with a clock that can't be moved")
		s.RunPending()
		return
	}
	s.RunPending()
	for {
		next, found := s.NextDeadline()
		if !found || next.After(deadline) {
			break
		}
		clock.Set(next)
		s.RunPending()
	}
	clock.Set(deadline)
	s.RunPending()
}

func (s *Loop) Advance(duration time.Duration) {
	s.RunUntil(s.clock.Now().Add(duration))
}

type timerQueue []*Timer

func (s timerQueue) Len() int {
	return len(s)
}

func (s timerQueue) Less(i, j int) bool {
	if s[i].deadline.Equal(s[j].deadline) {
		return s[i].seq < s[j].seq
	}
	return s[i].deadline.Before(s[j].deadline)
}

func (s timerQueue) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

func (s *timerQueue) Push(x interface{}) {
	timer := x.(*Timer)
	timer.index = len(*s)
	*s = append(*s, timer)
}

func (s *timerQueue) Pop() interface{} {
	old := *s
	n := len(old)
	timer := old[n-1]
	old[n-1] = nil
	timer.index = -1
	*s = old[:n-1]
	return timer
}
