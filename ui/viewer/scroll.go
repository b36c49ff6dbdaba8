package viewer

import (
	"github.com/fogleman/ease"
	"math"
	"time"
	"vincit.fi/image-viewer/common/loop"
	"vincit.fi/image-viewer/common/logger"
)

// ScrollTimeline animates one scroll axis from start to end with an easing
// curve, calling onValue on every update.
type ScrollTimeline struct {
	loop       *loop.Loop
	start      float64
	end        float64
	startTime  time.Time
	duration   time.Duration
	interval   time.Duration
	timer      *loop.Timer
	running    bool
	onValue    func(value float64)
	onFinished func()
}

func NewScrollTimeline(l *loop.Loop, duration time.Duration, interval time.Duration, onValue func(float64), onFinished func()) *ScrollTimeline {
	return &ScrollTimeline{
		loop:       l,
		duration:   duration,
		interval:   interval,
		onValue:    onValue,
		onFinished: onFinished,
	}
}

func (s *ScrollTimeline) SetTiming(duration time.Duration, interval time.Duration) {
	s.duration = duration
	s.interval = interval
}

func (s *ScrollTimeline) Start(from float64, to float64) {
	s.Stop()
	s.start = from
	s.end = to
	s.startTime = s.loop.Now()
	s.running = true
	s.timer = s.loop.AfterFunc(s.interval, s.tick)
}

func (s *ScrollTimeline) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.running = false
}

func (s *ScrollTimeline) IsRunning() bool {
	return s.running
}

func (s *ScrollTimeline) StartValue() float64 {
	return s.start
}

func (s *ScrollTimeline) EndValue() float64 {
	return s.end
}

// ValueAt returns the eased position after elapsed time.
func (s *ScrollTimeline) ValueAt(elapsed time.Duration) float64 {
	progress := 1.0
	if s.duration > 0 {
		progress = math.Min(1.0, float64(elapsed)/float64(s.duration))
	}
	return s.start + (s.end-s.start)*ease.OutSine(progress)
}

func (s *ScrollTimeline) tick() {
	s.timer = nil
	if !s.running {
		return
	}
	elapsed := s.loop.Now().Sub(s.startTime)
	s.onValue(s.ValueAt(elapsed))
	if elapsed >= s.duration {
		s.running = false
		if s.onFinished != nil {
			s.onFinished()
		}
		return
	}
	s.timer = s.loop.AfterFunc(s.interval, s.tick)
}

// Scroller moves the viewport either immediately or with two independent
// axis timelines. Every position change is followed by bounds correction.
type Scroller struct {
	viewport        *Viewport
	x               *ScrollTimeline
	y               *ScrollTimeline
	distance        float64
	speedMultiplier float64
	onMoved         func()
	onSettled       func()
}

func NewScroller(l *loop.Loop, viewport *Viewport, onMoved func(), onSettled func()) *Scroller {
	s := &Scroller{
		viewport:        viewport,
		distance:        250,
		speedMultiplier: 2.5,
		onMoved:         onMoved,
		onSettled:       onSettled,
	}
	s.x = NewScrollTimeline(l, 150*time.Millisecond, 7*time.Millisecond, s.scrollToX, s.onTimelineFinished)
	s.y = NewScrollTimeline(l, 150*time.Millisecond, 7*time.Millisecond, s.scrollToY, s.onTimelineFinished)
	return s
}

func (s *Scroller) Configure(distance int, speedMultiplier float64, duration time.Duration, interval time.Duration) {
	s.distance = float64(distance)
	s.speedMultiplier = speedMultiplier
	s.x.SetTiming(duration, interval)
	s.y.SetTiming(duration, interval)
}

func (s *Scroller) TimelineX() *ScrollTimeline {
	return s.x
}

func (s *Scroller) TimelineY() *ScrollTimeline {
	return s.y
}

// Smooth scrolls by the configured distance in the direction of dx and dy.
// Scrolling again in the direction of a running timeline extends it.
func (s *Scroller) Smooth(dx float64, dy float64) {
	pos := s.viewport.ScrollPos()
	if dx != 0 {
		s.smoothAxis(s.x, pos.X, dx)
	}
	if dy != 0 {
		s.smoothAxis(s.y, pos.Y, dy)
	}
	s.onSettled()
}

func (s *Scroller) smoothAxis(timeline *ScrollTimeline, current float64, direction float64) {
	step := math.Copysign(s.distance, direction)
	end := current + step
	redirect := (end < current && current < timeline.EndValue()) || (end > current && current > timeline.EndValue())
	if timeline.IsRunning() && !redirect {
		end = timeline.EndValue() + step*s.speedMultiplier
	}
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Scroll timeline %.1f -> %.1f (redirect=%t)", current, end, redirect)
	}
	timeline.Start(current, end)
}

// Precise applies delta immediately and cancels running animations.
func (s *Scroller) Precise(dx float64, dy float64) {
	s.Stop()
	s.viewport.ScrollBy(Pt(dx, dy))
	s.correct()
	s.onSettled()
}

func (s *Scroller) Stop() {
	s.x.Stop()
	s.y.Stop()
}

func (s *Scroller) IsRunning() bool {
	return s.x.IsRunning() || s.y.IsRunning()
}

func (s *Scroller) correct() {
	s.viewport.CenterIfNecessary()
	s.viewport.SnapToEdges()
	s.onMoved()
}

func (s *Scroller) scrollToX(x float64) {
	s.viewport.SetScrollX(x)
	s.correct()
}

func (s *Scroller) scrollToY(y float64) {
	s.viewport.SetScrollY(y)
	s.correct()
}

func (s *Scroller) onTimelineFinished() {
	s.onSettled()
}
