package api

import (
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
)

type ErrorCommand struct {
	Message string

	apitype.NotThrottled
}

type OpenDocumentCommand struct {
	Path string

	apitype.NotThrottled
}

type DocumentLoadedCommand struct {
	Document *apitype.Document

	apitype.NotThrottled
}

type ScaleChangedCommand struct {
	Scale float64

	apitype.Throttled
}

type DraggedOutCommand struct {
	Path string

	apitype.NotThrottled
}

type FrameChangedCommand struct {
	Frame int

	apitype.Throttled
}

type AnimationDurationCommand struct {
	FrameCount int

	apitype.NotThrottled
}

type AnimationPausedCommand struct {
	Paused bool

	apitype.NotThrottled
}

type PlaybackFinishedCommand struct {
	apitype.NotThrottled
}

type AnimationErrorCommand struct {
	Frame int
	Err   error

	apitype.NotThrottled
}

type SettingsChangedCommand struct {
	Settings *config.Settings

	apitype.NotThrottled
}

type Gui interface {
	DocumentLoaded(*DocumentLoadedCommand)
	ScalingFinished(*apitype.ScalingResponse)
	SettingsChanged(*SettingsChangedCommand)
	ShowError(*ErrorCommand)
	Run()
}
