package document

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vincit.fi/image-viewer/api/apitype"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func paletted(rect image.Rectangle, c color.Color) *image.Paletted {
	img := image.NewPaletted(rect, color.Palette{color.RGBA{}, red, blue})
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testGif(frames int, disposal byte) *gif.GIF {
	decoded := &gif.GIF{
		Config: image.Config{Width: 4, Height: 4},
	}
	for i := 0; i < frames; i++ {
		c := color.Color(red)
		rect := image.Rect(0, 0, 4, 4)
		if i > 0 {
			c = blue
			rect = image.Rect(i%4, 0, i%4+1, 1)
		}
		decoded.Image = append(decoded.Image, paletted(rect, c))
		decoded.Delay = append(decoded.Delay, i)
		if i == 0 {
			decoded.Disposal = append(decoded.Disposal, gif.DisposalNone)
		} else {
			decoded.Disposal = append(decoded.Disposal, disposal)
		}
	}
	return decoded
}

func writeFile(t *testing.T, name string, write func(file *os.File) error) string {
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.Nil(t, err)
	require.Nil(t, write(file))
	require.Nil(t, file.Close())
	return path
}

func TestGifFrameSource_Stepping(t *testing.T) {
	a := assert.New(t)
	sut, err := NewGifFrameSource(testGif(3, gif.DisposalNone))
	require.Nil(t, err)

	a.Equal(3, sut.FrameCount())
	a.Equal(apitype.SizeOf(4, 4), sut.Size())
	a.Equal(0, sut.CurrentFrameNumber())

	a.True(sut.JumpToNextFrame())
	a.True(sut.JumpToNextFrame())
	a.Equal(2, sut.CurrentFrameNumber())
	a.False(sut.JumpToNextFrame())
	a.NotNil(sut.LastError())

	frame := sut.CurrentFrame()
	a.Equal(blue, frame.At(1, 0))
	a.Equal(blue, frame.At(2, 0))
	a.Equal(red, frame.At(3, 0))

	a.False(sut.JumpToFrame(1))
	a.True(sut.JumpToFrame(0))
	a.Equal(0, sut.CurrentFrameNumber())
	a.Equal(red, sut.CurrentFrame().At(1, 0))
}

func TestGifFrameSource_DisposalBackground(t *testing.T) {
	a := assert.New(t)
	sut, err := NewGifFrameSource(testGif(3, gif.DisposalBackground))
	require.Nil(t, err)

	a.True(sut.JumpToNextFrame())
	a.True(sut.JumpToNextFrame())

	frame := sut.CurrentFrame()
	a.Equal(color.RGBA{}, frame.At(1, 0))
	a.Equal(blue, frame.At(2, 0))
}

func TestGifFrameSource_DisposalPrevious(t *testing.T) {
	a := assert.New(t)
	sut, err := NewGifFrameSource(testGif(3, gif.DisposalPrevious))
	require.Nil(t, err)

	a.True(sut.JumpToNextFrame())
	a.True(sut.JumpToNextFrame())

	frame := sut.CurrentFrame()
	a.Equal(red, frame.At(1, 0))
	a.Equal(blue, frame.At(2, 0))
}

func TestGifFrameSource_NoFrames(t *testing.T) {
	_, err := NewGifFrameSource(&gif.GIF{})
	assert.NotNil(t, err)
}

func TestFrameDelay(t *testing.T) {
	a := assert.New(t)
	decoded := &gif.GIF{Delay: []int{0, 1, 2, 5}}

	a.Equal(100*time.Millisecond, FrameDelay(decoded, 0))
	a.Equal(100*time.Millisecond, FrameDelay(decoded, 1))
	a.Equal(20*time.Millisecond, FrameDelay(decoded, 2))
	a.Equal(50*time.Millisecond, FrameDelay(decoded, 3))
	a.Equal(100*time.Millisecond, FrameDelay(decoded, 4))
}

func TestLoader_LoadDocument(t *testing.T) {
	pngPath := writeFile(t, "image.PNG", func(file *os.File) error {
		return png.Encode(file, image.NewNRGBA(image.Rect(0, 0, 30, 20)))
	})
	animatedPath := writeFile(t, "animated.gif", func(file *os.File) error {
		return gif.EncodeAll(file, testGif(3, gif.DisposalNone))
	})
	singlePath := writeFile(t, "single.gif", func(file *os.File) error {
		return gif.EncodeAll(file, testGif(1, gif.DisposalNone))
	})
	videoPath := writeFile(t, "clip.webm", func(file *os.File) error {
		_, err := file.WriteString("not really a video")
		return err
	})
	textPath := writeFile(t, "notes.txt", func(file *os.File) error {
		_, err := file.WriteString("text")
		return err
	})

	sut := NewLoader(4)

	t.Run("png", func(t *testing.T) {
		a := assert.New(t)
		document, err := sut.LoadDocument(pngPath)
		require.Nil(t, err)
		a.Equal(apitype.DocumentStatic, document.Type())
		a.Equal(apitype.SizeOf(30, 20), document.Size())
		a.IsType(&image.RGBA{}, document.Image())
		a.True(document.FileSize() > 0)
	})
	t.Run("animated gif", func(t *testing.T) {
		a := assert.New(t)
		document, err := sut.LoadDocument(animatedPath)
		require.Nil(t, err)
		a.Equal(apitype.DocumentAnimated, document.Type())
		a.Equal(3, document.Animation().FrameCount())
	})
	t.Run("single frame gif", func(t *testing.T) {
		document, err := sut.LoadDocument(singlePath)
		require.Nil(t, err)
		assert.Equal(t, apitype.DocumentStatic, document.Type())
	})
	t.Run("video", func(t *testing.T) {
		a := assert.New(t)
		document, err := sut.LoadDocument(videoPath)
		require.Nil(t, err)
		a.Equal(apitype.DocumentVideo, document.Type())
		a.Equal(videoPath, document.Video().Path())
	})
	t.Run("unsupported", func(t *testing.T) {
		_, err := sut.LoadDocument(textPath)
		assert.NotNil(t, err)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := sut.LoadDocument(filepath.Join(t.TempDir(), "missing.png"))
		assert.NotNil(t, err)
	})
	t.Run("static documents are cached", func(t *testing.T) {
		a := assert.New(t)
		first, err := sut.LoadDocument(pngPath)
		require.Nil(t, err)
		second, err := sut.LoadDocument(pngPath)
		require.Nil(t, err)
		a.Same(first, second)

		sut.Purge()
		third, err := sut.LoadDocument(pngPath)
		require.Nil(t, err)
		a.NotSame(first, third)
	})
}

func TestIsSupported(t *testing.T) {
	a := assert.New(t)
	a.True(IsSupported("/photos/IMG_001.JPG"))
	a.True(IsSupported("cat.gif"))
	a.False(IsSupported("readme.md"))
	a.False(IsSupported("noextension"))
}

func TestCache(t *testing.T) {
	a := assert.New(t)
	modified := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	doc := func(path string) *apitype.Document {
		return apitype.NewStaticDocument(path, modified, img)
	}
	sut := NewCache(2)

	sut.Put(doc("a"))
	sut.Put(doc("b"))
	a.NotNil(sut.Get("a", modified))

	sut.Put(doc("c"))
	a.Equal(2, sut.Len())
	a.Nil(sut.Get("b", modified))
	a.NotNil(sut.Get("a", modified))
	a.NotNil(sut.Get("c", modified))

	a.Nil(sut.Get("a", modified.Add(time.Second)))
	a.Equal(1, sut.Len())

	sut.Purge()
	a.Equal(0, sut.Len())
}
