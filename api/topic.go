package api

type Topic string

const (
	ShowError Topic = "event-show-error"

	OpenDocument   Topic = "event-open-document"
	DocumentLoaded Topic = "event-document-loaded"

	ScalingRequested Topic = "event-scaling-requested"
	ScalingFinished  Topic = "event-scaling-finished"
	ScaleChanged     Topic = "event-scale-changed"
	DraggedOut       Topic = "event-dragged-out"

	FrameChanged      Topic = "event-frame-changed"
	AnimationDuration Topic = "event-animation-duration"
	AnimationPaused   Topic = "event-animation-paused"
	PlaybackFinished  Topic = "event-playback-finished"
	AnimationError    Topic = "event-animation-error"

	SettingsChanged Topic = "event-settings-changed"
)
