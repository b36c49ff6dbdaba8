package viewer

import (
	"github.com/google/uuid"
	"math"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
)

// expectedScaledSize is the size in device pixels a scaled image must have
// to replace the original at the current scale.
func (s *ImageViewer) expectedScaledSize() apitype.Size {
	scaled := s.viewport.ScaledSize()
	dpr := s.viewport.DevicePixelRatio()
	return apitype.SizeOf(
		int(math.Round(float64(scaled.Width())*dpr)),
		int(math.Round(float64(scaled.Height())*dpr)))
}

// requestScaling asks for a high quality version of the current image when
// the on-the-fly scaling would look poor.
func (s *ImageViewer) requestScaling() {
	scale := s.viewport.Scale()
	if !s.surface.IsStatic() || !s.surface.IsDisplaying() || scale == 1.0 {
		return
	}
	if !s.settings.SmoothUpscaling && scale >= 1.0 {
		return
	}
	if scale >= s.settings.FastScaleThreshold {
		return
	}
	request := apitype.NewScalingRequest(
		s.surface.Fingerprint(),
		s.surface.Original(),
		s.expectedScaledSize(),
		s.scalingFilter,
		s.transparencyGrid)
	s.lastRequest = request.Token
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Requesting %s", request)
	}
	s.sender.SendCommandToTopic(api.ScalingRequested, request)
}

// restartScaleTimer coalesces rapid scale changes into one request.
func (s *ImageViewer) restartScaleTimer() {
	s.stopScaleTimer()
	s.scaleTimer = s.loop.AfterFunc(s.settings.ScaleDebounce, func() {
		s.scaleTimer = nil
		s.requestScaling()
	})
}

func (s *ImageViewer) stopScaleTimer() {
	if s.scaleTimer != nil {
		s.scaleTimer.Stop()
		s.scaleTimer = nil
	}
}

// IsScalePending tells if a debounced scaling request is waiting.
func (s *ImageViewer) IsScalePending() bool {
	return s.scaleTimer != nil && s.scaleTimer.Active()
}

// OnScalingFinished swaps in a high quality image if it still matches what
// is displayed. Anything else is a superseded result and dropped.
func (s *ImageViewer) OnScalingFinished(response *apitype.ScalingResponse) bool {
	if response == nil {
		return false
	}
	if response.Token == s.appliedResponse {
		logger.Trace.Printf("Response %s already applied", response.Token)
		return false
	}
	if !response.Fingerprint.Equals(s.surface.Fingerprint()) {
		logger.Trace.Printf("Dropping stale response for %s", response.Fingerprint)
		return false
	}
	if !s.surface.SetScaledImage(response.Fingerprint, response.Image, s.expectedScaledSize()) {
		return false
	}
	s.appliedResponse = response.Token
	return true
}

func (s *ImageViewer) LastScalingRequest() uuid.UUID {
	return s.lastRequest
}
