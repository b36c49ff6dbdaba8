package settings

import (
	"github.com/pkg/errors"
	"strconv"
	"time"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
)

type field struct {
	name   string
	encode func(*config.Settings) string
	decode func(*config.Settings, string) error
}

func boolField(name string, value func(*config.Settings) *bool) field {
	return field{
		name: name,
		encode: func(s *config.Settings) string {
			return strconv.FormatBool(*value(s))
		},
		decode: func(s *config.Settings, raw string) error {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			*value(s) = parsed
			return nil
		},
	}
}

func intField(name string, value func(*config.Settings) *int) field {
	return field{
		name: name,
		encode: func(s *config.Settings) string {
			return strconv.Itoa(*value(s))
		},
		decode: func(s *config.Settings, raw string) error {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			*value(s) = parsed
			return nil
		},
	}
}

func floatField(name string, value func(*config.Settings) *float64) field {
	return field{
		name: name,
		encode: func(s *config.Settings) string {
			return strconv.FormatFloat(*value(s), 'g', -1, 64)
		},
		decode: func(s *config.Settings, raw string) error {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			*value(s) = parsed
			return nil
		},
	}
}

func durationField(name string, value func(*config.Settings) *time.Duration) field {
	return field{
		name: name,
		encode: func(s *config.Settings) string {
			return value(s).String()
		},
		decode: func(s *config.Settings, raw string) error {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return err
			}
			*value(s) = parsed
			return nil
		},
	}
}

func enumField[T interface{ String() string }](name string, value func(*config.Settings) *T, fromString func(string) (T, bool)) field {
	return field{
		name: name,
		encode: func(s *config.Settings) string {
			return (*value(s)).String()
		},
		decode: func(s *config.Settings, raw string) error {
			parsed, ok := fromString(raw)
			if !ok {
				return errors.Errorf("unknown value '%s'", raw)
			}
			*value(s) = parsed
			return nil
		},
	}
}

var fields = []field{
	boolField("smooth_animated_images", func(s *config.Settings) *bool { return &s.SmoothAnimatedImages }),
	boolField("smooth_upscaling", func(s *config.Settings) *bool { return &s.SmoothUpscaling }),
	boolField("expand_image", func(s *config.Settings) *bool { return &s.ExpandImage }),
	floatField("expand_limit", func(s *config.Settings) *float64 { return &s.ExpandLimit }),
	boolField("keep_fit_mode", func(s *config.Settings) *bool { return &s.KeepFitMode }),
	enumField("default_fit_mode", func(s *config.Settings) *apitype.FitMode { return &s.DefaultFitMode }, apitype.FitModeFromString),
	floatField("zoom_step", func(s *config.Settings) *float64 { return &s.ZoomStep }),
	boolField("absolute_zoom_step", func(s *config.Settings) *bool { return &s.AbsoluteZoomStep }),
	enumField("scaling_filter", func(s *config.Settings) *apitype.ScalingFilter { return &s.ScalingFilter }, apitype.ScalingFilterFromString),
	boolField("transparency_grid", func(s *config.Settings) *bool { return &s.TransparencyGrid }),
	enumField("focus_point_1to1", func(s *config.Settings) *apitype.FocusPoint { return &s.FocusPointIn1to1 }, apitype.FocusPointFromString),
	enumField("scroll_policy", func(s *config.Settings) *apitype.ScrollPolicy { return &s.ScrollPolicy }, apitype.ScrollPolicyFromString),
	boolField("loop_playback", func(s *config.Settings) *bool { return &s.LoopPlayback }),

	intField("wheel_unit", func(s *config.Settings) *int { return &s.WheelUnit }),
	durationField("touchpad_window", func(s *config.Settings) *time.Duration { return &s.TouchpadWindow }),
	floatField("trackpad_scroll_multiplier", func(s *config.Settings) *float64 { return &s.TrackpadScrollMultiplier }),
	intField("drag_threshold", func(s *config.Settings) *int { return &s.DragThreshold }),
	intField("zoom_threshold", func(s *config.Settings) *int { return &s.ZoomThreshold }),
	floatField("mouse_zoom_step", func(s *config.Settings) *float64 { return &s.MouseZoomStep }),

	intField("scroll_distance", func(s *config.Settings) *int { return &s.ScrollDistance }),
	floatField("scroll_speed_multiplier", func(s *config.Settings) *float64 { return &s.ScrollSpeedMultiplier }),
	durationField("scroll_animation_duration", func(s *config.Settings) *time.Duration { return &s.ScrollAnimationDuration }),
	durationField("scroll_update_interval", func(s *config.Settings) *time.Duration { return &s.ScrollUpdateInterval }),

	durationField("scale_debounce", func(s *config.Settings) *time.Duration { return &s.ScaleDebounce }),
	intField("large_viewport_size", func(s *config.Settings) *int { return &s.LargeViewportSize }),
	floatField("fast_scale_threshold", func(s *config.Settings) *float64 { return &s.FastScaleThreshold }),
}

func encode(settings *config.Settings) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.name] = f.encode(settings)
	}
	return values
}

// decode applies known values on top of settings. Fields that fail to parse
// keep their current value and are reported in the returned error list.
func decode(settings *config.Settings, values map[string]string) []error {
	var errs []error
	for _, f := range fields {
		raw, found := values[f.name]
		if !found {
			continue
		}
		if err := f.decode(settings, raw); err != nil {
			errs = append(errs, errors.Wrapf(err, "setting '%s'", f.name))
		}
	}
	return errs
}
