package imagereader

import (
	"github.com/pixiv/go-libjpeg/jpeg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestExifOrientationToAngleAndFlip(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		orientation int
		angle       int
		flipped     bool
	}{
		{1, 0, false},
		{2, 0, true},
		{3, 180, false},
		{4, 180, true},
		{5, 270, true},
		{6, 270, false},
		{7, 90, true},
		{8, 90, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		angle, flipped := ExifOrientationToAngleAndFlip(tt.orientation)
		a.Equal(tt.angle, angle, "orientation %d", tt.orientation)
		a.Equal(tt.flipped, flipped, "orientation %d", tt.orientation)
	}
}

func TestApplyOrientation(t *testing.T) {
	a := assert.New(t)
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})

	a.Same(src, ApplyOrientation(src, 0, false))

	rotated := ApplyOrientation(src, 90, false)
	a.Equal(20, rotated.Bounds().Dx())
	a.Equal(40, rotated.Bounds().Dy())

	flipped := ApplyOrientation(src, 0, true)
	r, _, _, _ := flipped.At(39, 0).RGBA()
	a.Equal(uint32(0xffff), r)
}

func TestToRGBA(t *testing.T) {
	a := assert.New(t)
	src := image.NewNRGBA(image.Rect(10, 10, 20, 15))
	src.Set(10, 10, color.NRGBA{G: 255, A: 255})

	rgba := ToRGBA(src)
	a.Equal(image.Rect(0, 0, 10, 5), rgba.Rect)
	a.Equal(color.RGBA{G: 255, A: 255}, rgba.RGBAAt(0, 0))

	a.Same(rgba, ToRGBA(rgba))
	a.Nil(ToRGBA(nil))
}

func TestLoadJpeg(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "test.jpg")
	file, err := os.Create(path)
	require.Nil(t, err)
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	require.Nil(t, jpeg.Encode(file, src, &jpeg.EncoderOptions{Quality: 90}))
	require.Nil(t, file.Close())

	loaded, err := LoadJpeg(path)
	if a.Nil(err) {
		a.Equal(64, loaded.Bounds().Dx())
		a.Equal(32, loaded.Bounds().Dy())
	}

	_, err = LoadJpeg(filepath.Join(t.TempDir(), "missing.jpg"))
	a.NotNil(err)
}
