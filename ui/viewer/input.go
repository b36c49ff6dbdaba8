package viewer

import (
	"math"
	"time"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
	"vincit.fi/image-viewer/common/logger"
)

type MouseButton int

const (
	ButtonNone  MouseButton = 0
	ButtonLeft  MouseButton = 1 << 0
	ButtonRight MouseButton = 1 << 1
)

func (s MouseButton) Has(button MouseButton) bool {
	return s&button != 0
}

type interaction int

const (
	mouseNone interaction = iota
	mouseDragBegin
	mouseDrag
	mousePan
	mouseZoom
	mouseWheelZoom
)

func (s interaction) String() string {
	switch s {
	case mouseNone:
		return "none"
	case mouseDragBegin:
		return "drag-begin"
	case mouseDrag:
		return "drag"
	case mousePan:
		return "pan"
	case mouseZoom:
		return "zoom"
	case mouseWheelZoom:
		return "wheel-zoom"
	}
	return "unknown"
}

// WheelEvent carries either high resolution pixel deltas (touchpads) or
// angle deltas in wheel units.
type WheelEvent struct {
	Pos          Point
	PixelDelta   Point
	AngleDelta   Point
	Buttons      MouseButton
	HasModifiers bool
}

// gestureTarget is what the interpreter drives.
type gestureTarget interface {
	IsDisplaying() bool
	ScaledContentFits() bool
	IsLargeViewport() bool
	SetCursor(pos Point, inside bool)
	SetZoomAnchor(pos Point)
	SetForceFastScale(force bool)
	MouseZoom(distance float64)
	ZoomInCursor()
	ZoomOutCursor()
	ScrollSmooth(dx float64, dy float64)
	ScrollPrecise(dx float64, dy float64)
	DragOut()
	SaveViewportPos()
}

// Interpreter turns pointer and wheel input into viewer operations.
type Interpreter struct {
	target             gestureTarget
	settings           *config.Settings
	now                func() time.Time
	state              interaction
	pressPos           Point
	moveStartPos       Point
	forceFast          bool
	lastTouchpadScroll time.Time
}

func NewInterpreter(target gestureTarget, settings *config.Settings, now func() time.Time) *Interpreter {
	return &Interpreter{
		target:   target,
		settings: settings,
		now:      now,
	}
}

func (s *Interpreter) SetSettings(settings *config.Settings) {
	s.settings = settings
}

func (s *Interpreter) State() string {
	return s.state.String()
}

// Press returns false when the press is not used by the viewer.
func (s *Interpreter) Press(pos Point, button MouseButton) bool {
	if !s.target.IsDisplaying() {
		return false
	}
	s.pressPos = pos
	s.moveStartPos = pos
	if button.Has(ButtonRight) {
		s.target.SetZoomAnchor(pos)
	}
	return true
}

func (s *Interpreter) Move(pos Point, buttons MouseButton) {
	s.target.SetCursor(pos, true)
	if !s.target.IsDisplaying() || s.state == mouseDrag || s.state == mouseWheelZoom {
		return
	}

	if buttons.Has(ButtonLeft) {
		if s.state == mouseNone {
			if s.target.ScaledContentFits() {
				s.state = mouseDragBegin
			} else {
				s.state = mousePan
			}
		}
		if s.state == mouseDragBegin {
			threshold := float64(s.settings.DragThreshold)
			if math.Abs(s.pressPos.X-pos.X) > threshold || math.Abs(s.pressPos.Y-pos.Y) > threshold {
				s.state = mouseDrag
				s.target.DragOut()
			}
		}
		if s.state == mousePan {
			s.pan(pos)
		}
	} else if buttons.Has(ButtonRight) {
		if s.state == mouseZoom || math.Abs(s.pressPos.Y-pos.Y) > float64(s.settings.ZoomThreshold) {
			s.state = mouseZoom
			if !s.forceFast && s.target.IsLargeViewport() {
				s.forceFast = true
				s.target.SetForceFastScale(true)
			}
			distance := s.moveStartPos.Y - pos.Y
			s.moveStartPos = pos
			s.target.MouseZoom(distance)
		}
	}
}

func (s *Interpreter) pan(pos Point) {
	if s.target.ScaledContentFits() {
		return
	}
	delta := s.moveStartPos.Sub(pos)
	s.moveStartPos = pos
	s.target.ScrollPrecise(delta.X, delta.Y)
}

// Release returns false when no gesture was in progress.
func (s *Interpreter) Release() bool {
	if s.forceFast {
		s.forceFast = false
		s.target.SetForceFastScale(false)
	}
	handled := s.state != mouseNone
	s.state = mouseNone
	return handled
}

// Leave is called when the pointer leaves the viewer.
func (s *Interpreter) Leave() {
	s.target.SetCursor(s.moveStartPos, false)
}

// Wheel returns false when the event should be handled by someone else.
func (s *Interpreter) Wheel(event WheelEvent) bool {
	s.target.SetCursor(event.Pos, true)

	if event.Buttons.Has(ButtonRight) {
		s.state = mouseWheelZoom
		if event.AngleDelta.Y > 0 {
			s.target.ZoomInCursor()
		} else if event.AngleDelta.Y < 0 {
			s.target.ZoomOutCursor()
		}
		return true
	}
	if event.HasModifiers {
		return false
	}

	policy := s.settings.ScrollPolicy
	multiplier := s.settings.TrackpadScrollMultiplier
	if event.PixelDelta != (Point{}) && policy != apitype.ScrollNone {
		s.target.ScrollPrecise(-event.PixelDelta.X*multiplier, -event.PixelDelta.Y*multiplier)
	} else if event.AngleDelta != (Point{}) {
		if s.isWheel(event.AngleDelta) && s.now().Sub(s.lastTouchpadScroll) > s.settings.TouchpadWindow {
			if policy != apitype.ScrollTrackpadAndWheel {
				return false
			}
			s.target.ScrollSmooth(0, -event.AngleDelta.Y)
			return true
		} else if policy != apitype.ScrollNone {
			if logger.IsLogLevel(logger.TRACE) {
				logger.Trace.Printf("Treating %s as touchpad scroll", event.AngleDelta)
			}
			s.target.ScrollPrecise(-event.AngleDelta.X*multiplier, -event.AngleDelta.Y*multiplier)
		}
		s.lastTouchpadScroll = s.now()
	}
	s.target.SaveViewportPos()
	return true
}

// isWheel guesses if the delta came from a wheel with fixed notches.
func (s *Interpreter) isWheel(delta Point) bool {
	unit := float64(s.settings.WheelUnit)
	return delta.Y != 0 && math.Mod(delta.Y, unit) == 0
}
