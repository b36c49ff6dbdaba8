package apitype

import (
	"fmt"
	"image"
	"math"
)

type Size struct {
	width  int
	height int
}

var ZeroSize = Size{}

func SizeOf(width int, height int) Size {
	return Size{width, height}
}

func SizeOfRectangle(rectangle image.Rectangle) Size {
	return Size{rectangle.Dx(), rectangle.Dy()}
}

func (s Size) Width() int {
	return s.width
}

func (s Size) Height() int {
	return s.height
}

func (s Size) IsEmpty() bool {
	return s.width <= 0 || s.height <= 0
}

// Scaled multiplies both dimensions and rounds to the nearest pixel.
func (s Size) Scaled(factor float64) Size {
	return Size{
		width:  int(math.Round(float64(s.width) * factor)),
		height: int(math.Round(float64(s.height) * factor)),
	}
}

// Fits tells if s fits inside other on both axes.
func (s Size) Fits(other Size) bool {
	return s.width <= other.width && s.height <= other.height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.width, s.height)
}
