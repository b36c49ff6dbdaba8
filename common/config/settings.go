package config

import (
	"time"
	"vincit.fi/image-viewer/api/apitype"
)

const (
	MaxScale = 500.0
)

type Settings struct {
	SmoothAnimatedImages bool
	SmoothUpscaling      bool
	ExpandImage          bool
	// ExpandLimit below 1 means no limit other than MaxScale.
	ExpandLimit      float64
	KeepFitMode      bool
	DefaultFitMode   apitype.FitMode
	ZoomStep         float64
	AbsoluteZoomStep bool
	ScalingFilter    apitype.ScalingFilter
	TransparencyGrid bool
	FocusPointIn1to1 apitype.FocusPoint
	ScrollPolicy     apitype.ScrollPolicy
	LoopPlayback     bool

	// Input tuning. The wheel/touchpad detection is a heuristic and
	// these values differ between platforms.
	WheelUnit                int
	TouchpadWindow           time.Duration
	TrackpadScrollMultiplier float64
	DragThreshold            int
	ZoomThreshold            int
	MouseZoomStep            float64

	ScrollDistance          int
	ScrollSpeedMultiplier   float64
	ScrollAnimationDuration time.Duration
	ScrollUpdateInterval    time.Duration

	ScaleDebounce      time.Duration
	LargeViewportSize  int
	FastScaleThreshold float64
}

func NewDefaultSettings() *Settings {
	return &Settings{
		SmoothAnimatedImages: true,
		SmoothUpscaling:      true,
		ExpandImage:          false,
		ExpandLimit:          0,
		KeepFitMode:          false,
		DefaultFitMode:       apitype.FitWindow,
		ZoomStep:             0.1,
		AbsoluteZoomStep:     false,
		ScalingFilter:        apitype.FilterBilinear,
		TransparencyGrid:     false,
		FocusPointIn1to1:     apitype.FocusCursor,
		ScrollPolicy:         apitype.ScrollTrackpadAndWheel,
		LoopPlayback:         true,

		WheelUnit:                120,
		TouchpadWindow:           100 * time.Millisecond,
		TrackpadScrollMultiplier: 0.7,
		DragThreshold:            10,
		ZoomThreshold:            4,
		MouseZoomStep:            0.003,

		ScrollDistance:          250,
		ScrollSpeedMultiplier:   2.5,
		ScrollAnimationDuration: 150 * time.Millisecond,
		ScrollUpdateInterval:    7 * time.Millisecond,

		ScaleDebounce:      80 * time.Millisecond,
		LargeViewportSize:  1920 * 1080,
		FastScaleThreshold: 1.0,
	}
}

func (s *Settings) Copy() *Settings {
	settings := *s
	return &settings
}

// EffectiveExpandLimit returns the highest scale small images may be expanded to.
func (s *Settings) EffectiveExpandLimit() float64 {
	if s.ExpandLimit < 1.0 {
		return MaxScale
	}
	return s.ExpandLimit
}

// Sanitize replaces values that would break the viewer with defaults.
func (s *Settings) Sanitize() {
	defaults := NewDefaultSettings()
	if s.ZoomStep <= 0 {
		s.ZoomStep = defaults.ZoomStep
	}
	if !s.AbsoluteZoomStep && s.ZoomStep >= 1.0 {
		s.ZoomStep = defaults.ZoomStep
	}
	if s.WheelUnit <= 0 {
		s.WheelUnit = defaults.WheelUnit
	}
	if s.ScrollDistance <= 0 {
		s.ScrollDistance = defaults.ScrollDistance
	}
	if s.ScrollAnimationDuration <= 0 {
		s.ScrollAnimationDuration = defaults.ScrollAnimationDuration
	}
	if s.ScrollUpdateInterval <= 0 {
		s.ScrollUpdateInterval = defaults.ScrollUpdateInterval
	}
	if s.ScaleDebounce <= 0 {
		s.ScaleDebounce = defaults.ScaleDebounce
	}
	if s.DefaultFitMode == apitype.FitFree {
		s.DefaultFitMode = defaults.DefaultFitMode
	}
	if s.FastScaleThreshold <= 0 {
		s.FastScaleThreshold = defaults.FastScaleThreshold
	}
}
