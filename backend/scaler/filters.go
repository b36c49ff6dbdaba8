package scaler

import (
	"context"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/oov/downscale"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/imagereader"
)

const (
	gridCellSize = 8
	gamma        = 2.2
)

var (
	gridLight = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	gridDark  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// Scale returns an independent RGBA copy of src scaled to size.
func Scale(ctx context.Context, src image.Image, size apitype.Size, filter apitype.ScalingFilter) (*image.RGBA, error) {
	if src == nil {
		return nil, errors.New("nothing to scale")
	}
	if size.IsEmpty() {
		return nil, errors.Errorf("invalid target size %s", size)
	}

	switch filter {
	case apitype.FilterNearest:
		dst := image.NewRGBA(image.Rect(0, 0, size.Width(), size.Height()))
		draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
		return dst, ctx.Err()
	case apitype.FilterBicubic:
		scaled := resize.Resize(uint(size.Width()), uint(size.Height()), src, resize.Bicubic)
		return imagereader.ToRGBA(scaled), ctx.Err()
	default:
		return scaleBilinear(ctx, src, size)
	}
}

// scaleBilinear uses gamma correct box filtering when shrinking and linear
// interpolation when enlarging.
func scaleBilinear(ctx context.Context, src image.Image, size apitype.Size) (*image.RGBA, error) {
	srcSize := apitype.SizeOfRectangle(src.Bounds())
	if size.Fits(srcSize) {
		rgba := imagereader.ToRGBA(src)
		dst := image.NewRGBA(image.Rect(0, 0, size.Width(), size.Height()))
		if err := downscale.RGBAGamma(ctx, dst, rgba, gamma); err != nil {
			return nil, errors.Wrap(err, "downscale failed")
		}
		return dst, nil
	}
	scaled := imaging.Resize(src, size.Width(), size.Height(), imaging.Linear)
	return imagereader.ToRGBA(scaled), ctx.Err()
}

// WithTransparencyGrid draws img on top of a checkerboard.
func WithTransparencyGrid(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	grid := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if (x/gridCellSize+y/gridCellSize)%2 == 0 {
				grid.SetNRGBA(x, y, gridLight)
			} else {
				grid.SetNRGBA(x, y, gridDark)
			}
		}
	}
	return imagereader.ToRGBA(imaging.Overlay(grid, img, image.Point{}, 1.0))
}
