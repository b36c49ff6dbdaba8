package viewer

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
)

type fakeTarget struct {
	displaying bool
	fits       bool
	large      bool
	calls      []string
}

func (s *fakeTarget) record(format string, args ...interface{}) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *fakeTarget) IsDisplaying() bool {
	return s.displaying
}

func (s *fakeTarget) ScaledContentFits() bool {
	return s.fits
}

func (s *fakeTarget) IsLargeViewport() bool {
	return s.large
}

func (s *fakeTarget) SetCursor(Point, bool) {}

func (s *fakeTarget) SetZoomAnchor(pos Point) {
	s.record("anchor %v", pos)
}

func (s *fakeTarget) SetForceFastScale(force bool) {
	s.record("fast %t", force)
}

func (s *fakeTarget) MouseZoom(distance float64) {
	s.record("zoom %v", distance)
}

func (s *fakeTarget) ZoomInCursor() {
	s.record("zoom-in")
}

func (s *fakeTarget) ZoomOutCursor() {
	s.record("zoom-out")
}

func (s *fakeTarget) ScrollSmooth(dx float64, dy float64) {
	s.record("smooth %v %v", dx, dy)
}

func (s *fakeTarget) ScrollPrecise(dx float64, dy float64) {
	s.record("precise %v %v", dx, dy)
}

func (s *fakeTarget) DragOut() {
	s.record("drag-out")
}

func (s *fakeTarget) SaveViewportPos() {}

type testClock struct {
	now time.Time
}

func (s *testClock) Now() time.Time {
	return s.now
}

func newTestInterpreter(target *fakeTarget) (*Interpreter, *testClock, *config.Settings) {
	clock := &testClock{now: start}
	settings := config.NewDefaultSettings()
	return NewInterpreter(target, settings, clock.Now), clock, settings
}

func TestInterpreter_IgnoresPressWithoutContent(t *testing.T) {
	a := assert.New(t)
	sut, _, _ := newTestInterpreter(&fakeTarget{})

	a.False(sut.Press(Pt(10, 10), ButtonLeft))
}

func TestInterpreter_DragOutWhenContentFits(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true, fits: true}
	sut, _, _ := newTestInterpreter(target)

	a.True(sut.Press(Pt(100, 100), ButtonLeft))
	sut.Move(Pt(105, 100), ButtonLeft)
	a.Equal("drag-begin", sut.State())
	a.Empty(target.calls)

	sut.Move(Pt(120, 100), ButtonLeft)
	sut.Move(Pt(140, 100), ButtonLeft)
	a.Equal("drag", sut.State())
	a.Equal([]string{"drag-out"}, target.calls)

	a.True(sut.Release())
	a.Equal("none", sut.State())
}

func TestInterpreter_PanWhenContentOverflows(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, _, _ := newTestInterpreter(target)

	sut.Press(Pt(100, 100), ButtonLeft)
	sut.Move(Pt(90, 95), ButtonLeft)
	sut.Move(Pt(80, 95), ButtonLeft)

	a.Equal("pan", sut.State())
	a.Equal([]string{"precise 10 5", "precise 10 0"}, target.calls)
}

func TestInterpreter_RightDragZooms(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true, large: true}
	sut, _, _ := newTestInterpreter(target)

	sut.Press(Pt(100, 100), ButtonRight)
	sut.Move(Pt(100, 98), ButtonRight)
	a.Equal("none", sut.State())

	sut.Move(Pt(100, 90), ButtonRight)
	sut.Move(Pt(100, 85), ButtonRight)
	a.Equal("zoom", sut.State())

	a.True(sut.Release())
	a.Equal([]string{
		"anchor (100.00, 100.00)",
		"fast true",
		"zoom 10",
		"zoom 5",
		"fast false",
	}, target.calls)
}

func TestInterpreter_RightButtonWheelZooms(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, _, _ := newTestInterpreter(target)

	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(0, 120), Buttons: ButtonRight}))
	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(0, -120), Buttons: ButtonRight}))

	a.Equal([]string{"zoom-in", "zoom-out"}, target.calls)
	a.Equal("wheel-zoom", sut.State())
}

func TestInterpreter_WheelClassification(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, clock, settings := newTestInterpreter(target)
	settings.TrackpadScrollMultiplier = 0.5

	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(0, -120)}))
	a.Equal([]string{"smooth 0 120"}, target.calls)

	target.calls = nil
	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(-10, -30)}))
	a.Equal([]string{"precise 5 15"}, target.calls)

	target.calls = nil
	clock.now = clock.now.Add(50 * time.Millisecond)
	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(-10, -120)}))
	a.Equal([]string{"precise 5 60"}, target.calls)

	target.calls = nil
	clock.now = clock.now.Add(time.Second)
	a.True(sut.Wheel(WheelEvent{AngleDelta: Pt(0, 240)}))
	a.Equal([]string{"smooth 0 -240"}, target.calls)
}

func TestInterpreter_PixelDeltaScrollsPrecisely(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, _, settings := newTestInterpreter(target)
	settings.TrackpadScrollMultiplier = 1.0

	a.True(sut.Wheel(WheelEvent{PixelDelta: Pt(3, -7)}))

	a.Equal([]string{"precise -3 7"}, target.calls)
}

func TestInterpreter_ScrollPolicy(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, _, settings := newTestInterpreter(target)

	settings.ScrollPolicy = apitype.ScrollTrackpad
	a.False(sut.Wheel(WheelEvent{AngleDelta: Pt(0, 120)}))

	settings.ScrollPolicy = apitype.ScrollNone
	a.True(sut.Wheel(WheelEvent{PixelDelta: Pt(0, 10)}))
	a.Empty(target.calls)
}

func TestInterpreter_WheelWithModifiersIsIgnored(t *testing.T) {
	a := assert.New(t)
	target := &fakeTarget{displaying: true}
	sut, _, _ := newTestInterpreter(target)

	a.False(sut.Wheel(WheelEvent{AngleDelta: Pt(0, 120), HasModifiers: true}))
	a.Empty(target.calls)
}
