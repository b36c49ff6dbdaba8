package viewer

import (
	"github.com/google/uuid"
	"image"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/config"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/common/loop"
)

// ImageViewer presents one document at a time in a zoomable and scrollable
// viewport. All methods must be called from the loop goroutine.
type ImageViewer struct {
	settings *config.Settings
	sender   api.Sender
	loop     *loop.Loop

	viewport *Viewport
	surface  *Surface
	scroller *Scroller
	player   *Player
	input    *Interpreter

	fitMode          apitype.FitMode
	viewLock         apitype.ViewLock
	lockedScale      float64
	savedPos         Point
	scalingFilter    apitype.ScalingFilter
	transparencyGrid bool
	forceFastScale   bool

	cursor       Point
	cursorInside bool

	generation      uint64
	scaleTimer      *loop.Timer
	lastRequest     uuid.UUID
	appliedResponse uuid.UUID
	onChanged       func()
}

func New(settings *config.Settings, sender api.Sender, l *loop.Loop, size apitype.Size) *ImageViewer {
	s := &ImageViewer{
		settings:    settings.Copy(),
		sender:      sender,
		loop:        l,
		viewport:    NewViewport(size),
		surface:     NewSurface(),
		fitMode:     apitype.FitWindow,
		lockedScale: 1.0,
		savedPos:    Pt(0.5, 0.5),
		onChanged:   func() {},
	}
	s.scroller = NewScroller(l, s.viewport, s.changed, s.SaveViewportPos)
	s.player = NewPlayer(l, sender, s.onAnimationFrame)
	s.input = NewInterpreter(s, s.settings, l.Now)
	s.ReadSettings(settings)
	return s
}

// SetOnChanged registers a callback called whenever the view needs redrawing.
func (s *ImageViewer) SetOnChanged(onChanged func()) {
	s.onChanged = onChanged
}

func (s *ImageViewer) changed() {
	s.onChanged()
}

func (s *ImageViewer) ReadSettings(settings *config.Settings) {
	s.settings = settings.Copy()
	s.settings.Sanitize()
	s.input.SetSettings(s.settings)
	s.scroller.Configure(s.settings.ScrollDistance, s.settings.ScrollSpeedMultiplier,
		s.settings.ScrollAnimationDuration, s.settings.ScrollUpdateInterval)
	s.transparencyGrid = s.settings.TransparencyGrid
	s.player.SetLoop(s.settings.LoopPlayback)
	s.updateMinScale()
	s.SetScalingFilter(s.settings.ScalingFilter)
	s.SetFitMode(s.settings.DefaultFitMode)
	logger.Debug.Printf("Viewer settings updated")
}

func (s *ImageViewer) Settings() *config.Settings {
	return s.settings.Copy()
}

func (s *ImageViewer) Input() *Interpreter {
	return s.input
}

func (s *ImageViewer) Viewport() *Viewport {
	return s.viewport
}

func (s *ImageViewer) Surface() *Surface {
	return s.surface
}

func (s *ImageViewer) Player() *Player {
	return s.player
}

func (s *ImageViewer) Scroller() *Scroller {
	return s.scroller
}

func (s *ImageViewer) nextFingerprint(path string, modified time.Time) apitype.Fingerprint {
	s.generation++
	return apitype.Fingerprint{Path: path, Modified: modified, Generation: s.generation}
}

// DisplayDocument shows any kind of document.
func (s *ImageViewer) DisplayDocument(document *apitype.Document) {
	if !document.IsValid() {
		s.Reset()
		return
	}
	switch document.Type() {
	case apitype.DocumentStatic:
		s.DisplayImage(document.Path(), document.Modified(), document.Image())
	case apitype.DocumentAnimated:
		s.DisplayAnimation(document.Path(), document.Modified(), document.Animation())
	case apitype.DocumentVideo:
		s.DisplayVideo(document.Path(), document.Modified(), document.Video())
	}
}

func (s *ImageViewer) DisplayImage(path string, modified time.Time, img image.Image) {
	s.Reset()
	if img == nil {
		return
	}
	fingerprint := s.nextFingerprint(path, modified)
	logger.Debug.Printf("Displaying %s", fingerprint)
	s.surface.SetStatic(fingerprint, img)
	s.viewport.SetContent(s.surface.SourceSize())
	s.selectSamplingMode()
	s.applyDisplayFit()
	s.requestScaling()
	s.changed()
}

func (s *ImageViewer) DisplayAnimation(path string, modified time.Time, animation apitype.FrameSource) {
	s.Reset()
	if animation == nil || !s.player.SetSource(animation) {
		return
	}
	fingerprint := s.nextFingerprint(path, modified)
	logger.Debug.Printf("Displaying animation %s with %d frames", fingerprint, animation.FrameCount())
	s.surface.SetAnimation(fingerprint, animation)
	s.viewport.SetContent(animation.Size())
	s.selectSamplingMode()
	s.applyDisplayFit()
	s.player.Start()
	s.changed()
}

// DisplayVideo only tracks the clip, playback is done by an external player.
func (s *ImageViewer) DisplayVideo(path string, modified time.Time, clip apitype.VideoClip) {
	s.Reset()
	if clip == nil {
		return
	}
	fingerprint := s.nextFingerprint(path, modified)
	logger.Debug.Printf("Displaying video %s", fingerprint)
	s.surface.SetVideo(fingerprint, clip)
	s.changed()
}

func (s *ImageViewer) applyDisplayFit() {
	s.updateMinScale()
	if !s.settings.KeepFitMode || s.fitMode == apitype.FitFree {
		s.fitMode = s.settings.DefaultFitMode
	}
	if s.viewLock == apitype.LockNone {
		s.applyFitMode()
	} else {
		s.fitMode = apitype.FitFree
		s.fitFree(s.lockedScale)
		if s.viewLock == apitype.LockAll {
			s.viewport.ApplySavedPos(s.savedPos)
		}
	}
}

// Reset removes the content and stops everything running.
func (s *ImageViewer) Reset() {
	s.scroller.Stop()
	s.stopScaleTimer()
	s.player.Clear()
	s.surface.Reset()
	s.viewport.Reset()
	s.changed()
}

func (s *ImageViewer) CloseImage() {
	s.Reset()
}

// Show is called when the view becomes visible.
func (s *ImageViewer) Show() {
	if s.fitMode == apitype.FitOriginal {
		s.applyFitMode()
	}
}

func (s *ImageViewer) onAnimationFrame(frame image.Image) {
	s.surface.UpdateFrame(frame)
	s.changed()
}

func (s *ImageViewer) updateMinScale() {
	if !s.surface.IsDisplaying() {
		return
	}
	s.viewport.UpdateMinScale(s.settings.ExpandImage, s.settings.EffectiveExpandLimit(),
		s.viewLock != apitype.LockNone, s.lockedScale)
}

func (s *ImageViewer) selectSamplingMode() {
	mode := SelectSamplingMode(s.forceFastScale, s.surface.HasAnimation(), s.settings,
		s.viewport.Scale(), s.scalingFilter)
	s.surface.SetSamplingMode(mode)
}

// doZoom changes scale around the content center.
func (s *ImageViewer) doZoom(scale float64) {
	if !s.surface.IsDisplaying() {
		return
	}
	scale = s.viewport.SetScale(scale)
	s.selectSamplingMode()
	s.surface.SwapToOriginal()
	s.sender.SendCommandToTopic(api.ScaleChanged, &api.ScaleChangedCommand{Scale: scale})
}

func (s *ImageViewer) setZoomAnchor(viewportPos Point) {
	s.viewport.SetZoomAnchor(viewportPos)
}

func (s *ImageViewer) zoomAnchored(scale float64) {
	if !s.surface.IsDisplaying() {
		return
	}
	if s.viewport.ZoomAnchored(scale) {
		s.selectSamplingMode()
		s.surface.SwapToOriginal()
		s.sender.SendCommandToTopic(api.ScaleChanged, &api.ScaleChangedCommand{Scale: s.viewport.Scale()})
		s.restartScaleTimer()
	}
}

func (s *ImageViewer) correctPosition() {
	s.viewport.CenterIfNecessary()
	s.viewport.SnapToEdges()
}

// updateFreeFitMode marks the view as manually zoomed unless the scale
// happens to be the fit window scale.
func (s *ImageViewer) updateFreeFitMode() {
	s.fitMode = apitype.FitFree
	if s.viewport.Scale() == s.viewport.FitWindowScale() {
		s.fitMode = apitype.FitWindow
	}
}

func (s *ImageViewer) applyFitMode() {
	switch s.fitMode {
	case apitype.FitOriginal:
		s.fitNormal()
	case apitype.FitWidth:
		s.fitWidth()
	case apitype.FitWindow:
		s.fitWindow()
	}
	s.changed()
}

func (s *ImageViewer) fitWidth() {
	if !s.surface.IsDisplaying() {
		return
	}
	content := s.viewport.Content()
	scaleX := float64(s.viewport.Size().Width()) * s.viewport.DevicePixelRatio() / float64(content.Width())
	if !s.settings.ExpandImage && scaleX > 1.0 {
		scaleX = 1.0
	}
	if limit := s.settings.EffectiveExpandLimit(); scaleX > limit {
		scaleX = limit
	}
	if s.viewport.Scale() != scaleX {
		s.surface.SwapToOriginal()
		s.doZoom(scaleX)
	}
	s.viewport.CenterIfNecessary()
	if s.viewport.ScaledSize().Height() > s.viewport.Size().Height() {
		s.viewport.AlignTop()
	}
	s.viewport.SnapToEdges()
}

func (s *ImageViewer) fitWindow() {
	if !s.surface.IsDisplaying() {
		return
	}
	if s.viewport.ContentFits() && !s.settings.ExpandImage {
		s.fitNormal()
		return
	}
	if s.viewport.Scale() != s.viewport.FitWindowScale() {
		s.surface.SwapToOriginal()
		s.doZoom(s.viewport.FitWindowScale())
	}
	s.viewport.CenterOnContent()
}

func (s *ImageViewer) fitNormal() {
	s.fitFree(1.0)
}

func (s *ImageViewer) fitFree(scale float64) {
	if !s.surface.IsDisplaying() {
		return
	}
	switch s.settings.FocusPointIn1to1 {
	case apitype.FocusTop:
		s.doZoom(scale)
		s.viewport.CenterIfNecessary()
		if s.viewport.ScaledSize().Height() > s.viewport.Size().Height() {
			s.viewport.CenterOnContent()
			s.viewport.AlignTop()
		}
		s.viewport.SnapToEdges()
	case apitype.FocusCenter:
		s.setZoomAnchor(s.viewportCenter())
		s.zoomAnchored(scale)
		s.correctPosition()
	default:
		s.setZoomAnchor(s.cursorOrCenter())
		s.zoomAnchored(scale)
		s.correctPosition()
	}
}

func (s *ImageViewer) viewportCenter() Point {
	size := s.viewport.Size()
	return Pt(float64(size.Width())/2, float64(size.Height())/2)
}

func (s *ImageViewer) cursorOrCenter() Point {
	if s.cursorInside {
		return s.cursor
	}
	return s.viewportCenter()
}

// SetFitMode applies mode right away and asks for a high quality image
// without waiting for the debounce.
func (s *ImageViewer) SetFitMode(mode apitype.FitMode) {
	s.stopScaleTimer()
	s.scroller.Stop()
	s.fitMode = mode
	s.applyFitMode()
	s.requestScaling()
}

func (s *ImageViewer) SetFitOriginal() {
	s.SetFitMode(apitype.FitOriginal)
}

func (s *ImageViewer) SetFitWidth() {
	s.SetFitMode(apitype.FitWidth)
}

func (s *ImageViewer) SetFitWindow() {
	s.SetFitMode(apitype.FitWindow)
}

func (s *ImageViewer) FitMode() apitype.FitMode {
	return s.fitMode
}

func (s *ImageViewer) stepScale(zoomIn bool) float64 {
	return ZoomStepScale(s.viewport.Scale(), s.settings.ZoomStep, s.settings.AbsoluteZoomStep, zoomIn)
}

func (s *ImageViewer) zoomAround(anchor Point, zoomIn bool) {
	s.setZoomAnchor(anchor)
	s.zoomAnchored(s.stepScale(zoomIn))
	s.correctPosition()
	s.updateFreeFitMode()
	s.SaveViewportPos()
	s.changed()
}

// ZoomIn zooms around the viewport center.
func (s *ImageViewer) ZoomIn() {
	s.zoomAround(s.viewportCenter(), true)
}

func (s *ImageViewer) ZoomOut() {
	s.zoomAround(s.viewportCenter(), false)
}

// ZoomInCursor zooms around the cursor, or the center when the cursor is
// outside the view.
func (s *ImageViewer) ZoomInCursor() {
	s.zoomAround(s.cursorOrCenter(), true)
}

func (s *ImageViewer) ZoomOutCursor() {
	s.zoomAround(s.cursorOrCenter(), false)
}

// MouseZoom zooms around the anchor set on press by the vertical distance
// the pointer moved.
func (s *ImageViewer) MouseZoom(distance float64) {
	scale := s.viewport.Scale() * (1.0 + s.settings.MouseZoomStep*distance*s.viewport.DevicePixelRatio())
	s.fitMode = apitype.FitFree
	s.zoomAnchored(scale)
	s.correctPosition()
	if s.viewport.Scale() == s.viewport.FitWindowScale() {
		s.fitMode = apitype.FitWindow
	}
	s.SaveViewportPos()
	s.changed()
}

func (s *ImageViewer) ScrollUp() {
	s.ScrollSmooth(0, -1)
}

func (s *ImageViewer) ScrollDown() {
	s.ScrollSmooth(0, 1)
}

func (s *ImageViewer) ScrollLeft() {
	s.ScrollSmooth(-1, 0)
}

func (s *ImageViewer) ScrollRight() {
	s.ScrollSmooth(1, 0)
}

// ScrollSmooth scrolls by the configured distance in the direction of dx and dy.
func (s *ImageViewer) ScrollSmooth(dx float64, dy float64) {
	s.scroller.Smooth(dx, dy)
}

func (s *ImageViewer) ScrollPrecise(dx float64, dy float64) {
	s.scroller.Precise(dx, dy)
}

func (s *ImageViewer) StopScrolling() {
	s.scroller.Stop()
}

func (s *ImageViewer) ToggleLockZoom() {
	if !s.IsDisplaying() {
		return
	}
	if s.viewLock != apitype.LockZoom {
		s.viewLock = apitype.LockZoom
		s.lockZoom()
	} else {
		s.viewLock = apitype.LockNone
	}
}

func (s *ImageViewer) ToggleLockView() {
	if !s.IsDisplaying() {
		return
	}
	if s.viewLock != apitype.LockAll {
		s.viewLock = apitype.LockAll
		s.lockZoom()
	} else {
		s.viewLock = apitype.LockNone
	}
}

func (s *ImageViewer) lockZoom() {
	s.lockedScale = s.viewport.Scale()
	s.fitMode = apitype.FitFree
	s.SaveViewportPos()
}

func (s *ImageViewer) LockZoomEnabled() bool {
	return s.viewLock == apitype.LockZoom
}

func (s *ImageViewer) LockViewEnabled() bool {
	return s.viewLock == apitype.LockAll
}

func (s *ImageViewer) ViewLock() apitype.ViewLock {
	return s.viewLock
}

// SaveViewportPos remembers the view position while the whole view is locked.
func (s *ImageViewer) SaveViewportPos() {
	if s.viewLock != apitype.LockAll || !s.surface.IsDisplaying() {
		return
	}
	s.savedPos = s.viewport.SavedPos()
}

func (s *ImageViewer) SavedViewportPos() Point {
	return s.savedPos
}

// ToggleTransparencyGrid requests a new scaled image as the grid is drawn
// into it.
func (s *ImageViewer) ToggleTransparencyGrid() {
	s.transparencyGrid = !s.transparencyGrid
	s.requestScaling()
}

func (s *ImageViewer) TransparencyGridEnabled() bool {
	return s.transparencyGrid
}

func (s *ImageViewer) SetScalingFilter(filter apitype.ScalingFilter) {
	if s.scalingFilter == filter {
		return
	}
	s.scalingFilter = filter
	s.selectSamplingMode()
	if filter == apitype.FilterNearest {
		s.surface.SwapToOriginal()
	}
	s.requestScaling()
}

func (s *ImageViewer) ScalingFilter() apitype.ScalingFilter {
	return s.scalingFilter
}

func (s *ImageViewer) SetExpandImage(expand bool) {
	s.settings.ExpandImage = expand
	s.updateMinScale()
	s.applyFitMode()
	s.requestScaling()
}

func (s *ImageViewer) SetLoopPlayback(looping bool) {
	s.settings.LoopPlayback = looping
	s.player.SetLoop(looping)
}

func (s *ImageViewer) SetForceFastScale(force bool) {
	s.forceFastScale = force
	s.selectSamplingMode()
}

// Resize keeps manual zoom as is and re-applies automatic fit modes.
func (s *ImageViewer) Resize(size apitype.Size) {
	s.viewport.SetSize(size)
	s.relayout()
}

func (s *ImageViewer) SetDevicePixelRatio(dpr float64) {
	s.viewport.SetDevicePixelRatio(dpr)
	s.relayout()
}

func (s *ImageViewer) relayout() {
	s.scroller.Stop()
	s.updateMinScale()
	if s.fitMode == apitype.FitFree || s.fitMode == apitype.FitOriginal {
		if s.surface.IsDisplaying() && s.viewport.Scale() < s.viewport.MinScale() {
			s.doZoom(s.viewport.MinScale())
		}
		s.correctPosition()
	} else {
		s.applyFitMode()
	}
	if s.surface.IsDisplaying() {
		s.restartScaleTimer()
	}
	s.SaveViewportPos()
	s.changed()
}

func (s *ImageViewer) SetCursor(pos Point, inside bool) {
	s.cursor = pos
	s.cursorInside = inside
}

func (s *ImageViewer) SetZoomAnchor(pos Point) {
	s.setZoomAnchor(pos)
}

func (s *ImageViewer) IsLargeViewport() bool {
	size := s.viewport.Size()
	return size.Width()*size.Height() > s.settings.LargeViewportSize
}

func (s *ImageViewer) ScaledContentFits() bool {
	if !s.surface.IsDisplaying() {
		return true
	}
	return s.viewport.ScaledContentFits()
}

func (s *ImageViewer) DragOut() {
	s.sender.SendCommandToTopic(api.DraggedOut, &api.DraggedOutCommand{Path: s.surface.Fingerprint().Path})
}

func (s *ImageViewer) CurrentScale() float64 {
	return s.viewport.Scale()
}

func (s *ImageViewer) ScaledSize() apitype.Size {
	if !s.surface.IsDisplaying() {
		return apitype.ZeroSize
	}
	return s.viewport.ScaledSize()
}

// ScaledRect is where the content is drawn in viewport coordinates.
func (s *ImageViewer) ScaledRect() Rect {
	return s.viewport.ScaledRect()
}

func (s *ImageViewer) SourceSize() apitype.Size {
	return s.surface.SourceSize()
}

func (s *ImageViewer) IsDisplaying() bool {
	return s.surface.IsDisplaying()
}

func (s *ImageViewer) HasAnimation() bool {
	return s.surface.HasAnimation()
}

func (s *ImageViewer) SamplingMode() apitype.SamplingMode {
	return s.surface.SamplingMode()
}

// StaticImage returns the displayed image for operations that only work
// on still images.
func (s *ImageViewer) StaticImage() (image.Image, error) {
	if s.surface.IsStatic() {
		return s.surface.Original(), nil
	}
	if s.surface.HasAnimation() || s.surface.HasVideo() {
		return nil, apitype.ErrNotStatic
	}
	return nil, apitype.ErrNoContent
}

func (s *ImageViewer) PauseResume() {
	s.player.PauseResume()
}

func (s *ImageViewer) NextFrame() {
	s.player.NextFrame()
}

func (s *ImageViewer) PrevFrame() {
	s.player.PrevFrame()
}

func (s *ImageViewer) ShowAnimationFrame(frame int) bool {
	return s.player.ShowFrame(frame)
}
