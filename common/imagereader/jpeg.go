package imagereader

import (
	"github.com/pixiv/go-libjpeg/jpeg"
	"github.com/pkg/errors"
	"image"
	"os"
	"time"
	"vincit.fi/image-viewer/common/logger"
)

var options = &jpeg.DecoderOptions{}

// LoadJpeg decodes a JPEG file and applies its EXIF orientation.
func LoadJpeg(path string) (image.Image, error) {
	return loadJpeg(path, options)
}

// LoadScaledJpeg lets libjpeg decode directly at a reduced size which is
// a lot faster than decoding the full image and scaling afterwards.
func LoadScaledJpeg(path string, width int, height int) (image.Image, error) {
	return loadJpeg(path, &jpeg.DecoderOptions{ScaleTarget: image.Rect(0, 0, width, height)})
}

func loadJpeg(path string, options *jpeg.DecoderOptions) (image.Image, error) {
	startTime := time.Now()
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", path)
	}
	defer file.Close()

	decoded, err := jpeg.Decode(file, options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode '%s'", path)
	}

	angle, flipped, err := LoadOrientation(path)
	if err != nil {
		logger.Debug.Printf("No orientation for '%s': %s", path, err)
	}
	rotated := ApplyOrientation(decoded, angle, flipped)

	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Loaded '%s' in %s", path, time.Since(startTime))
	}
	return rotated, nil
}
