package apitype

import (
	"fmt"
	"github.com/google/uuid"
	"image"
	"strings"
	"time"
)

type ScalingFilter int

const (
	FilterNearest ScalingFilter = iota
	FilterBilinear
	FilterBicubic
)

func (s ScalingFilter) String() string {
	switch s {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterBicubic:
		return "bicubic"
	}
	return "unknown"
}

func ScalingFilterFromString(value string) (ScalingFilter, bool) {
	switch strings.ToLower(value) {
	case "nearest":
		return FilterNearest, true
	case "bilinear":
		return FilterBilinear, true
	case "bicubic":
		return FilterBicubic, true
	}
	return FilterBilinear, false
}

// Fingerprint identifies the content that is currently displayed. Generation
// is bumped on every display so re-opening the same file still invalidates
// results computed for the previous display.
type Fingerprint struct {
	Path       string
	Modified   time.Time
	Generation uint64
}

var NoFingerprint = Fingerprint{}

func (s Fingerprint) IsValid() bool {
	return s.Generation != 0
}

func (s Fingerprint) Equals(other Fingerprint) bool {
	return s.Path == other.Path && s.Modified.Equal(other.Modified) && s.Generation == other.Generation
}

func (s Fingerprint) String() string {
	if !s.IsValid() {
		return "Fingerprint<invalid>"
	}
	return fmt.Sprintf("Fingerprint{%s@%d #%d}", s.Path, s.Modified.UnixNano(), s.Generation)
}

// ScalingRequest is a read-only snapshot handed to the scaler. Source must not
// be mutated by anyone once the request is published.
type ScalingRequest struct {
	Token            uuid.UUID
	Fingerprint      Fingerprint
	Source           image.Image
	Size             Size
	Filter           ScalingFilter
	TransparencyGrid bool

	NotThrottled
}

func NewScalingRequest(fingerprint Fingerprint, source image.Image, size Size, filter ScalingFilter, transparencyGrid bool) *ScalingRequest {
	return &ScalingRequest{
		Token:            uuid.New(),
		Fingerprint:      fingerprint,
		Source:           source,
		Size:             size,
		Filter:           filter,
		TransparencyGrid: transparencyGrid,
	}
}

func (s *ScalingRequest) String() string {
	return fmt.Sprintf("ScalingRequest{%s %s %s %s}", s.Token, s.Fingerprint, s.Size, s.Filter)
}

// ScalingResponse carries an independently owned result buffer.
type ScalingResponse struct {
	Token       uuid.UUID
	Fingerprint Fingerprint
	Image       image.Image

	NotThrottled
}

func NewScalingResponse(request *ScalingRequest, scaled image.Image) *ScalingResponse {
	return &ScalingResponse{
		Token:       request.Token,
		Fingerprint: request.Fingerprint,
		Image:       scaled,
	}
}

func (s *ScalingResponse) Size() Size {
	if s.Image == nil {
		return ZeroSize
	}
	return SizeOfRectangle(s.Image.Bounds())
}
