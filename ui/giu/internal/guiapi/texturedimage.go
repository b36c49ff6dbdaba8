package guiapi

import (
	"github.com/AllenDang/giu"
)

// TexturedImage is an uploaded texture of one surface version.
type TexturedImage struct {
	Texture *giu.Texture
	Version uint64
	Width   int
	Height  int
}

func NewTexturedImage(texture *giu.Texture, version uint64, width int, height int) *TexturedImage {
	return &TexturedImage{
		Texture: texture,
		Version: version,
		Width:   width,
		Height:  height,
	}
}

func NewEmptyTexturedImage(version uint64) *TexturedImage {
	return &TexturedImage{
		Texture: nil,
		Version: version,
		Width:   0,
		Height:  0,
	}
}

func (s *TexturedImage) IsLoaded() bool {
	return s != nil && s.Texture != nil
}
