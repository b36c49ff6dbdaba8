package widget

import (
	"github.com/AllenDang/giu"
	"github.com/AllenDang/imgui-go"
	"image"
	"image/color"
	"math"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/ui/giu/internal/guiapi"
	"vincit.fi/image-viewer/ui/viewer"
)

var placeholderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// PointerState is the mouse state between frames.
type PointerState struct {
	buttons viewer.MouseButton
	pos     viewer.Point
	inside  bool
	size    image.Point
}

type ViewerImageWidget struct {
	viewer    *viewer.ImageViewer
	texture   *guiapi.TexturedImage
	pointer   *PointerState
	modifiers guiapi.Modifiers
}

// ViewerImage draws the surface of imageViewer into the available region
// and forwards mouse input to its interpreter.
func ViewerImage(imageViewer *viewer.ImageViewer, texture *guiapi.TexturedImage, pointer *PointerState, modifiers guiapi.Modifiers) *ViewerImageWidget {
	return &ViewerImageWidget{
		viewer:    imageViewer,
		texture:   texture,
		pointer:   pointer,
		modifiers: modifiers,
	}
}

func (s *ViewerImageWidget) Build() {
	origin := giu.GetCursorScreenPos()
	maxW, maxH := giu.GetAvailableRegion()
	size := image.Pt(int(maxW), int(maxH))
	if size != s.pointer.size && size.X > 0 && size.Y > 0 {
		s.pointer.size = size
		s.viewer.Resize(apitype.SizeOf(size.X, size.Y))
	}

	canvas := giu.GetCanvas()
	if s.texture.IsLoaded() && !s.viewer.Surface().HasVideo() {
		rect := s.viewer.ScaledRect()
		pMin := origin.Add(image.Pt(int(math.Round(rect.Min.X)), int(math.Round(rect.Min.Y))))
		pMax := origin.Add(image.Pt(int(math.Round(rect.Max.X)), int(math.Round(rect.Max.Y))))
		canvas.AddImage(s.texture.Texture, pMin, pMax)
	} else if clip := s.viewer.Surface().Video(); clip != nil {
		canvas.AddText(origin.Add(image.Pt(10, 10)), placeholderColor, "Video: "+clip.Path())
	}

	s.handleMouse(origin)
	giu.Dummy(maxW, maxH).Build()
}

func (s *ViewerImageWidget) handleMouse(origin image.Point) {
	input := s.viewer.Input()
	mouse := giu.GetMousePos().Sub(origin)
	pos := viewer.Pt(float64(mouse.X), float64(mouse.Y))
	inside := mouse.X >= 0 && mouse.Y >= 0 && mouse.X < s.pointer.size.X && mouse.Y < s.pointer.size.Y

	buttons := viewer.ButtonNone
	if giu.IsMouseDown(giu.MouseButtonLeft) {
		buttons |= viewer.ButtonLeft
	}
	if giu.IsMouseDown(giu.MouseButtonRight) {
		buttons |= viewer.ButtonRight
	}

	previous := s.pointer.buttons
	if previous == viewer.ButtonNone && buttons != viewer.ButtonNone && inside {
		input.Press(pos, buttons)
	}
	if previous != viewer.ButtonNone && buttons == viewer.ButtonNone {
		input.Release()
	}
	if pos != s.pointer.pos && (inside || buttons != viewer.ButtonNone) {
		input.Move(pos, buttons)
	}
	if s.pointer.inside && !inside && buttons == viewer.ButtonNone {
		input.Leave()
	}

	wheelX, wheelY := imgui.CurrentIO().MouseWheel()
	if inside && (wheelX != 0 || wheelY != 0) {
		unit := float64(s.viewer.Settings().WheelUnit)
		input.Wheel(viewer.WheelEvent{
			Pos:          pos,
			AngleDelta:   viewer.Pt(float64(wheelX)*unit, float64(wheelY)*unit),
			Buttons:      buttons,
			HasModifiers: s.modifiers.Any(),
		})
	}

	s.pointer.buttons = buttons
	s.pointer.pos = pos
	s.pointer.inside = inside
}
