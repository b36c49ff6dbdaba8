package viewer

import (
	"fmt"
	"math"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
)

type Point struct {
	X float64
	Y float64
}

func Pt(x float64, y float64) Point {
	return Point{X: x, Y: y}
}

func (s Point) Add(other Point) Point {
	return Point{X: s.X + other.X, Y: s.Y + other.Y}
}

func (s Point) Sub(other Point) Point {
	return Point{X: s.X - other.X, Y: s.Y - other.Y}
}

func (s Point) Mul(factor float64) Point {
	return Point{X: s.X * factor, Y: s.Y * factor}
}

func (s Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", s.X, s.Y)
}

type Rect struct {
	Min Point
	Max Point
}

func (s Rect) Width() float64 {
	return s.Max.X - s.Min.X
}

func (s Rect) Height() float64 {
	return s.Max.Y - s.Min.Y
}

// ComputeFitWindowScale returns the scale at which content fills the viewport.
// Content is in device pixels, viewport in logical pixels.
func ComputeFitWindowScale(content apitype.Size, viewport apitype.Size, dpr float64, expandAllowed bool, expandLimit float64) float64 {
	if content.IsEmpty() || viewport.IsEmpty() {
		return 1.0
	}
	scaleX := float64(viewport.Width()) * dpr / float64(content.Width())
	scaleY := float64(viewport.Height()) * dpr / float64(content.Height())
	scale := math.Min(scaleX, scaleY)

	limit := 1.0
	if expandAllowed {
		limit = expandLimit
	}
	if scale > limit {
		scale = limit
	}
	return scale
}

// ContentFits tells if content fits the viewport at scale 1.0.
func ContentFits(content apitype.Size, viewport apitype.Size, dpr float64) bool {
	return float64(content.Width()) <= float64(viewport.Width())*dpr &&
		float64(content.Height()) <= float64(viewport.Height())*dpr
}

// ComputeMinScale never allows zooming out further than what fits the window
// unless the view is locked to an even smaller scale.
func ComputeMinScale(content apitype.Size, viewport apitype.Size, dpr float64, fitWindowScale float64, locked bool, lockedScale float64) float64 {
	minScale := fitWindowScale
	if ContentFits(content, viewport, dpr) {
		minScale = 1.0
	}
	if locked && lockedScale < minScale {
		minScale = lockedScale
	}
	return minScale
}

func ClampScale(scale float64, minScale float64, maxScale float64) float64 {
	return math.Max(minScale, math.Min(scale, maxScale))
}

func ZoomStepScale(current float64, step float64, absolute bool, zoomIn bool) float64 {
	switch {
	case absolute && zoomIn:
		return current + step
	case absolute:
		return current - step
	case zoomIn:
		return current * (1.0 + step)
	default:
		return current * (1.0 - step)
	}
}

// SelectSamplingMode picks how the original layer is drawn when scaled.
func SelectSamplingMode(forceFast bool, animated bool, settings *config.Settings, scale float64, filter apitype.ScalingFilter) apitype.SamplingMode {
	upscaledSharp := scale > 1.0 && !settings.SmoothUpscaling
	switch {
	case forceFast:
		return apitype.SamplingNearest
	case animated && (!settings.SmoothAnimatedImages || upscaledSharp):
		return apitype.SamplingNearest
	case !animated && (upscaledSharp || filter == apitype.FilterNearest):
		return apitype.SamplingNearest
	}
	return apitype.SamplingSmooth
}

type zoomAnchor struct {
	content  Point
	viewport Point
}

// Viewport maps content to the visible area. Scene coordinates are logical
// pixels with the origin at the center of the content, center is the scene
// point shown in the middle of the viewport.
type Viewport struct {
	size           apitype.Size
	content        apitype.Size
	dpr            float64
	scale          float64
	minScale       float64
	maxScale       float64
	fitWindowScale float64
	center         Point
	anchor         zoomAnchor
}

func NewViewport(size apitype.Size) *Viewport {
	return &Viewport{
		size:           size,
		dpr:            1.0,
		scale:          1.0,
		minScale:       0.01,
		maxScale:       config.MaxScale,
		fitWindowScale: 0.125,
	}
}

func (s *Viewport) Size() apitype.Size {
	return s.size
}

func (s *Viewport) SetSize(size apitype.Size) {
	s.size = size
}

func (s *Viewport) Content() apitype.Size {
	return s.content
}

func (s *Viewport) SetContent(content apitype.Size) {
	s.content = content
}

func (s *Viewport) DevicePixelRatio() float64 {
	return s.dpr
}

func (s *Viewport) SetDevicePixelRatio(dpr float64) {
	if dpr > 0 {
		s.dpr = dpr
	}
}

func (s *Viewport) Scale() float64 {
	return s.scale
}

// SetScale clamps scale into the allowed range. Scaling happens around the
// content center so the scene point in the middle of the viewport is kept.
func (s *Viewport) SetScale(scale float64) float64 {
	s.scale = ClampScale(scale, s.minScale, s.maxScale)
	return s.scale
}

func (s *Viewport) MinScale() float64 {
	return s.minScale
}

func (s *Viewport) MaxScale() float64 {
	return s.maxScale
}

func (s *Viewport) FitWindowScale() float64 {
	return s.fitWindowScale
}

func (s *Viewport) UpdateMinScale(expandAllowed bool, expandLimit float64, locked bool, lockedScale float64) {
	if s.content.IsEmpty() {
		return
	}
	s.fitWindowScale = ComputeFitWindowScale(s.content, s.size, s.dpr, expandAllowed, expandLimit)
	s.minScale = ComputeMinScale(s.content, s.size, s.dpr, s.fitWindowScale, locked, lockedScale)
}

func (s *Viewport) ContentFits() bool {
	return ContentFits(s.content, s.size, s.dpr)
}

func (s *Viewport) Center() Point {
	return s.center
}

func (s *Viewport) CenterOn(scenePos Point) {
	s.center = scenePos
}

func (s *Viewport) Reset() {
	s.content = apitype.ZeroSize
	s.scale = 1.0
	s.center = Point{}
}

func (s *Viewport) half() Point {
	return Pt(float64(s.size.Width())/2, float64(s.size.Height())/2)
}

func (s *Viewport) MapToScene(viewportPos Point) Point {
	return viewportPos.Sub(s.half()).Add(s.center)
}

func (s *Viewport) MapFromScene(scenePos Point) Point {
	return scenePos.Sub(s.center).Add(s.half())
}

func (s *Viewport) scaledSizeF() Point {
	factor := s.scale / s.dpr
	return Pt(float64(s.content.Width())*factor, float64(s.content.Height())*factor)
}

// ScaledSize is the size of the content on screen in logical pixels.
func (s *Viewport) ScaledSize() apitype.Size {
	size := s.scaledSizeF()
	return apitype.SizeOf(int(math.Round(size.X)), int(math.Round(size.Y)))
}

// ScaledRect is the content rectangle in viewport coordinates.
func (s *Viewport) ScaledRect() Rect {
	half := s.scaledSizeF().Mul(0.5)
	return Rect{
		Min: s.MapFromScene(Pt(-half.X, -half.Y)),
		Max: s.MapFromScene(half),
	}
}

func (s *Viewport) ScaledContentFits() bool {
	return s.ScaledSize().Fits(s.size)
}

func (s *Viewport) ScrollPos() Point {
	return s.MapToScene(Point{})
}

func (s *Viewport) SetScrollX(x float64) {
	s.center.X = x + s.half().X
}

func (s *Viewport) SetScrollY(y float64) {
	s.center.Y = y + s.half().Y
}

func (s *Viewport) ScrollBy(delta Point) {
	s.center = s.center.Add(delta)
}

// SetZoomAnchor records which content point is under viewportPos.
func (s *Viewport) SetZoomAnchor(viewportPos Point) {
	s.anchor = zoomAnchor{
		content:  s.MapToScene(viewportPos).Mul(s.dpr / s.scale),
		viewport: viewportPos,
	}
}

// ZoomAnchored rescales so that the anchored content point stays under the
// same viewport position. Returns false if the clamped scale didn't change.
func (s *Viewport) ZoomAnchored(scale float64) bool {
	scale = ClampScale(scale, s.minScale, s.maxScale)
	if scale == s.scale {
		return false
	}
	s.scale = scale
	anchorScene := s.anchor.content.Mul(s.scale / s.dpr)
	s.center = anchorScene.Sub(s.anchor.viewport).Add(s.half())
	return true
}

// CenterIfNecessary centers the content on each axis where it is smaller
// than the viewport.
func (s *Viewport) CenterIfNecessary() {
	if s.content.IsEmpty() {
		return
	}
	scaled := s.ScaledSize()
	if scaled.Width() <= s.size.Width() {
		s.center.X = 0
	}
	if scaled.Height() <= s.size.Height() {
		s.center.Y = 0
	}
}

// SnapToEdges removes the gap between content edge and viewport edge on
// each axis where the content is larger than the viewport.
func (s *Viewport) SnapToEdges() {
	rect := s.ScaledRect()
	width := float64(s.size.Width())
	height := float64(s.size.Height())
	var shift Point
	if rect.Width() > width {
		if rect.Min.X > 0 {
			shift.X = rect.Min.X
		} else if rect.Max.X < width {
			shift.X = rect.Max.X - width
		}
	}
	if rect.Height() > height {
		if rect.Min.Y > 0 {
			shift.Y = rect.Min.Y
		} else if rect.Max.Y < height {
			shift.Y = rect.Max.Y - height
		}
	}
	s.center = s.center.Add(shift)
}

func (s *Viewport) CenterOnContent() {
	s.center = Point{}
}

// AlignTop moves the top edge of the content to the top of the viewport.
func (s *Viewport) AlignTop() {
	s.center.Y = -s.scaledSizeF().Y/2 + s.half().Y
}

// SavedPos returns where the viewport center is on the content, each axis
// normalized to [0, 1].
func (s *Viewport) SavedPos() Point {
	size := s.scaledSizeF()
	if size.X <= 0 || size.Y <= 0 {
		return Pt(0.5, 0.5)
	}
	return Pt(
		math.Max(0, math.Min((s.center.X+size.X/2)/size.X, 1)),
		math.Max(0, math.Min((s.center.Y+size.Y/2)/size.Y, 1)),
	)
}

func (s *Viewport) ApplySavedPos(pos Point) {
	size := s.scaledSizeF()
	s.center = Pt(-size.X/2+size.X*pos.X, -size.Y/2+size.Y*pos.Y)
	s.CenterIfNecessary()
	s.SnapToEdges()
}

func (s *Viewport) String() string {
	return fmt.Sprintf("Viewport{%s content=%s scale=%.4f center=%s}", s.size, s.content, s.scale, s.center)
}
