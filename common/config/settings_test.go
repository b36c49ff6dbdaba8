package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"vincit.fi/image-viewer/api/apitype"
)

func TestSettings_EffectiveExpandLimit(t *testing.T) {
	a := assert.New(t)
	settings := NewDefaultSettings()

	a.Equal(MaxScale, settings.EffectiveExpandLimit())
	settings.ExpandLimit = 0.5
	a.Equal(MaxScale, settings.EffectiveExpandLimit())
	settings.ExpandLimit = 2
	a.Equal(2.0, settings.EffectiveExpandLimit())
}

func TestSettings_Sanitize(t *testing.T) {
	a := assert.New(t)
	settings := &Settings{
		ZoomStep:       5,
		DefaultFitMode: apitype.FitFree,
	}
	settings.Sanitize()

	a.Equal(0.1, settings.ZoomStep)
	a.Equal(apitype.FitWindow, settings.DefaultFitMode)
	a.Equal(120, settings.WheelUnit)
	a.Equal(250, settings.ScrollDistance)

	absolute := NewDefaultSettings()
	absolute.AbsoluteZoomStep = true
	absolute.ZoomStep = 5
	absolute.Sanitize()
	a.Equal(5.0, absolute.ZoomStep)
}

func TestSettings_Copy(t *testing.T) {
	a := assert.New(t)
	settings := NewDefaultSettings()
	copied := settings.Copy()
	copied.ZoomStep = 0.5

	a.Equal(0.1, settings.ZoomStep)
	a.Equal(0.5, copied.ZoomStep)
}
