package imagereader

import (
	"golang.org/x/image/draw"
	"image"
	"time"
	"vincit.fi/image-viewer/common/logger"
)

// ToRGBA returns img as *image.RGBA with bounds starting at the origin.
// Textures can only be created from RGBA data.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	start := time.Now()
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)

	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Converting to RGBA: %s", time.Since(start))
	}
	return rgba
}
