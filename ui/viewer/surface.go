package viewer

import (
	"image"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
)

type contentKind int

const (
	contentNone contentKind = iota
	contentStatic
	contentAnimated
	contentVideo
)

// Surface holds what is being displayed: the original content and an
// optional high quality scaled copy. Only one of the two layers is visible.
type Surface struct {
	kind          contentKind
	fingerprint   apitype.Fingerprint
	original      image.Image
	animation     apitype.FrameSource
	video         apitype.VideoClip
	scaled        image.Image
	scaledVisible bool
	sampling      apitype.SamplingMode
	version       uint64
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) SetStatic(fingerprint apitype.Fingerprint, img image.Image) {
	s.Reset()
	s.kind = contentStatic
	s.fingerprint = fingerprint
	s.original = img
}

func (s *Surface) SetAnimation(fingerprint apitype.Fingerprint, animation apitype.FrameSource) {
	s.Reset()
	s.kind = contentAnimated
	s.fingerprint = fingerprint
	s.animation = animation
	s.original = animation.CurrentFrame()
}

func (s *Surface) SetVideo(fingerprint apitype.Fingerprint, clip apitype.VideoClip) {
	s.Reset()
	s.kind = contentVideo
	s.fingerprint = fingerprint
	s.video = clip
}

// UpdateFrame replaces the original layer with a new animation frame.
func (s *Surface) UpdateFrame(frame image.Image) {
	if s.kind != contentAnimated {
		return
	}
	s.original = frame
	s.version++
}

// SetScaledImage shows img instead of the original. It is ignored when it
// was made for other content, the content is animated or the size is not
// what the current scale expects.
func (s *Surface) SetScaledImage(fingerprint apitype.Fingerprint, img image.Image, expected apitype.Size) bool {
	if s.kind != contentStatic || img == nil {
		return false
	}
	if !s.fingerprint.Equals(fingerprint) {
		logger.Trace.Printf("Dropping scaled image for %s, showing %s", fingerprint, s.fingerprint)
		return false
	}
	if size := apitype.SizeOfRectangle(img.Bounds()); size != expected {
		logger.Trace.Printf("Dropping scaled image of size %s, expected %s", size, expected)
		return false
	}
	s.scaled = img
	s.scaledVisible = true
	s.version++
	return true
}

// SwapToOriginal drops the scaled layer.
func (s *Surface) SwapToOriginal() {
	if s.original == nil || !s.scaledVisible {
		return
	}
	s.scaled = nil
	s.scaledVisible = false
	s.version++
}

func (s *Surface) Reset() {
	s.kind = contentNone
	s.fingerprint = apitype.NoFingerprint
	s.original = nil
	s.animation = nil
	s.video = nil
	s.scaled = nil
	s.scaledVisible = false
	s.version++
}

func (s *Surface) SetSamplingMode(mode apitype.SamplingMode) {
	if s.sampling != mode {
		s.sampling = mode
		s.version++
	}
}

func (s *Surface) SamplingMode() apitype.SamplingMode {
	return s.sampling
}

func (s *Surface) Fingerprint() apitype.Fingerprint {
	return s.fingerprint
}

// IsDisplaying tells if there is a raster image to show.
func (s *Surface) IsDisplaying() bool {
	return s.original != nil
}

func (s *Surface) IsStatic() bool {
	return s.kind == contentStatic
}

func (s *Surface) HasAnimation() bool {
	return s.kind == contentAnimated
}

func (s *Surface) HasVideo() bool {
	return s.kind == contentVideo
}

func (s *Surface) Video() apitype.VideoClip {
	return s.video
}

func (s *Surface) Original() image.Image {
	return s.original
}

func (s *Surface) SourceSize() apitype.Size {
	if s.original == nil {
		return apitype.ZeroSize
	}
	return apitype.SizeOfRectangle(s.original.Bounds())
}

func (s *Surface) IsScaledVisible() bool {
	return s.scaledVisible
}

// VisibleImage returns the layer to draw and whether it is the scaled one.
func (s *Surface) VisibleImage() (image.Image, bool) {
	if s.scaledVisible {
		return s.scaled, true
	}
	return s.original, false
}

// Version changes every time the visible pixels change.
func (s *Surface) Version() uint64 {
	return s.version
}
