package apitype

import "strings"

type FitMode int

const (
	FitOriginal FitMode = iota
	FitWidth
	FitWindow
	FitFree
)

func (s FitMode) String() string {
	switch s {
	case FitOriginal:
		return "original"
	case FitWidth:
		return "width"
	case FitWindow:
		return "window"
	case FitFree:
		return "free"
	}
	return "unknown"
}

func FitModeFromString(value string) (FitMode, bool) {
	switch strings.ToLower(value) {
	case "original":
		return FitOriginal, true
	case "width":
		return FitWidth, true
	case "window":
		return FitWindow, true
	case "free":
		return FitFree, true
	}
	return FitWindow, false
}

type ViewLock int

const (
	LockNone ViewLock = iota
	LockZoom
	LockAll
)

func (s ViewLock) String() string {
	switch s {
	case LockNone:
		return "none"
	case LockZoom:
		return "zoom"
	case LockAll:
		return "all"
	}
	return "unknown"
}

// FocusPoint selects what stays in place when switching to 1:1 scale.
type FocusPoint int

const (
	FocusTop FocusPoint = iota
	FocusCenter
	FocusCursor
)

func (s FocusPoint) String() string {
	switch s {
	case FocusTop:
		return "top"
	case FocusCenter:
		return "center"
	case FocusCursor:
		return "cursor"
	}
	return "unknown"
}

func FocusPointFromString(value string) (FocusPoint, bool) {
	switch strings.ToLower(value) {
	case "top":
		return FocusTop, true
	case "center":
		return FocusCenter, true
	case "cursor":
		return FocusCursor, true
	}
	return FocusCursor, false
}

// ScrollPolicy tells which input devices may scroll the image.
type ScrollPolicy int

const (
	ScrollNone ScrollPolicy = iota
	ScrollTrackpad
	ScrollTrackpadAndWheel
)

func (s ScrollPolicy) String() string {
	switch s {
	case ScrollNone:
		return "none"
	case ScrollTrackpad:
		return "trackpad"
	case ScrollTrackpadAndWheel:
		return "trackpad-and-wheel"
	}
	return "unknown"
}

func ScrollPolicyFromString(value string) (ScrollPolicy, bool) {
	switch strings.ToLower(value) {
	case "none":
		return ScrollNone, true
	case "trackpad":
		return ScrollTrackpad, true
	case "trackpad-and-wheel":
		return ScrollTrackpadAndWheel, true
	}
	return ScrollTrackpadAndWheel, false
}

// SamplingMode is the transformation used when the original layer is drawn scaled.
type SamplingMode int

const (
	SamplingSmooth SamplingMode = iota
	SamplingNearest
)

func (s SamplingMode) String() string {
	if s == SamplingNearest {
		return "nearest"
	}
	return "smooth"
}
