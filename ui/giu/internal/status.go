package internal

import (
	"fmt"
	"math"
	"strings"
	"vincit.fi/image-viewer/api/apitype"
)

// Status is what the status bar shows about the viewer.
type Status struct {
	Path       string
	SourceSize apitype.Size
	Scale      float64
	FitMode    apitype.FitMode
	ViewLock   apitype.ViewLock
	Frame      int
	FrameCount int
	Paused     bool
	Message    string
}

func ZoomLabel(scale float64) string {
	return fmt.Sprintf("%d %%", int(math.Round(scale*100)))
}

func (s *Status) Label() string {
	if s.Path == "" {
		return s.Message
	}

	parts := []string{
		s.Path,
		s.SourceSize.String(),
		ZoomLabel(s.Scale),
		"fit " + s.FitMode.String(),
	}
	if s.ViewLock != apitype.LockNone {
		parts = append(parts, "lock "+s.ViewLock.String())
	}
	if s.FrameCount > 1 {
		frame := fmt.Sprintf("frame %d/%d", s.Frame+1, s.FrameCount)
		if s.Paused {
			frame += " (paused)"
		}
		parts = append(parts, frame)
	}
	if s.Message != "" {
		parts = append(parts, s.Message)
	}
	return strings.Join(parts, " | ")
}
