package imagereader

import (
	"github.com/disintegration/gift"
	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"
	"image"
	"os"
)

const (
	noRotate  = 0
	rotate180 = 180
	left90    = 90
	right90   = 270

	noHorizontalFlip = false
	horizontalFlip   = true
)

func ExifOrientationToAngleAndFlip(orientation int) (int, bool) {
	switch orientation {
	case 1:
		return noRotate, noHorizontalFlip
	case 2:
		return noRotate, horizontalFlip
	case 3:
		return rotate180, noHorizontalFlip
	case 4:
		return rotate180, horizontalFlip
	case 5:
		return right90, horizontalFlip
	case 6:
		return right90, noHorizontalFlip
	case 7:
		return left90, horizontalFlip
	case 8:
		return left90, noHorizontalFlip
	default:
		return noRotate, noHorizontalFlip
	}
}

// LoadOrientation reads the EXIF orientation of a file. Angle is counter-clockwise.
func LoadOrientation(path string) (int, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return noRotate, noHorizontalFlip, err
	}
	defer file.Close()

	decodedExif, err := exif.Decode(file)
	if err != nil {
		return noRotate, noHorizontalFlip, errors.Wrap(err, "could not decode exif data")
	}
	tag, err := decodedExif.Get(exif.Orientation)
	if err != nil {
		return noRotate, noHorizontalFlip, errors.Wrap(err, "could not resolve orientation")
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return noRotate, noHorizontalFlip, errors.Wrap(err, "invalid orientation value")
	}
	angle, flipped := ExifOrientationToAngleAndFlip(orientation)
	return angle, flipped, nil
}

func ApplyOrientation(loadedImage image.Image, angle int, flipped bool) image.Image {
	g := gift.New()
	switch angle {
	case left90:
		g.Add(gift.Rotate90())
	case rotate180:
		g.Add(gift.Rotate180())
	case right90:
		g.Add(gift.Rotate270())
	}
	if flipped {
		g.Add(gift.FlipHorizontal())
	}
	if len(g.Filters) == 0 {
		return loadedImage
	}
	dst := image.NewNRGBA(g.Bounds(loadedImage.Bounds()))
	g.Draw(dst, loadedImage)
	return dst
}
