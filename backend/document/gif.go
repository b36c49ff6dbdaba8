package document

import (
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"image"
	"image/gif"
	"os"
	"time"
	"vincit.fi/image-viewer/api/apitype"
)

const (
	minFrameDelay     = 20 * time.Millisecond
	defaultFrameDelay = 100 * time.Millisecond
)

// GifFrameSource composites GIF frames forward-only onto a single canvas.
// Seeking backwards is only possible by jumping to frame 0.
type GifFrameSource struct {
	decoded  *gif.GIF
	canvas   *image.RGBA
	previous *image.RGBA
	current  int
	lastErr  error
}

func LoadGif(path string) (*GifFrameSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", path)
	}
	defer file.Close()

	decoded, err := gif.DecodeAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode '%s'", path)
	}
	return NewGifFrameSource(decoded)
}

func NewGifFrameSource(decoded *gif.GIF) (*GifFrameSource, error) {
	if decoded == nil || len(decoded.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}
	width, height := decoded.Config.Width, decoded.Config.Height
	if width == 0 || height == 0 {
		bounds := decoded.Image[0].Bounds()
		width, height = bounds.Max.X, bounds.Max.Y
	}
	s := &GifFrameSource{
		decoded: decoded,
		canvas:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	s.JumpToFrame(0)
	return s, nil
}

func (s *GifFrameSource) FrameCount() int {
	return len(s.decoded.Image)
}

func (s *GifFrameSource) CurrentFrameNumber() int {
	return s.current
}

func (s *GifFrameSource) JumpToFrame(frame int) bool {
	if frame == s.current && frame != 0 {
		return true
	}
	if frame != 0 {
		s.lastErr = errors.Errorf("can't seek to frame %d", frame)
		return false
	}
	draw.Draw(s.canvas, s.canvas.Rect, image.Transparent, image.Point{}, draw.Src)
	s.previous = nil
	s.current = 0
	s.drawFrame(0)
	return true
}

func (s *GifFrameSource) JumpToNextFrame() bool {
	next := s.current + 1
	if next >= s.FrameCount() {
		s.lastErr = errors.Errorf("no frame after %d", s.current)
		return false
	}
	s.dispose(s.current)
	s.current = next
	s.drawFrame(next)
	return true
}

func (s *GifFrameSource) CurrentFrame() image.Image {
	return s.canvas
}

func (s *GifFrameSource) NextFrameDelay() time.Duration {
	return FrameDelay(s.decoded, s.current)
}

func (s *GifFrameSource) LastError() error {
	return s.lastErr
}

func (s *GifFrameSource) Size() apitype.Size {
	return apitype.SizeOfRectangle(s.canvas.Rect)
}

func (s *GifFrameSource) drawFrame(index int) {
	frame := s.decoded.Image[index]
	if s.disposal(index) == gif.DisposalPrevious {
		s.previous = cloneRGBA(s.canvas)
	}
	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
}

func (s *GifFrameSource) dispose(index int) {
	switch s.disposal(index) {
	case gif.DisposalBackground:
		frame := s.decoded.Image[index]
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if s.previous != nil {
			copy(s.canvas.Pix, s.previous.Pix)
		}
	}
}

func (s *GifFrameSource) disposal(index int) byte {
	if index < len(s.decoded.Disposal) {
		return s.decoded.Disposal[index]
	}
	return gif.DisposalNone
}

// FrameDelay returns the display time of a frame. Browsers treat very short
// delays as the default delay and so does this.
func FrameDelay(decoded *gif.GIF, index int) time.Duration {
	var delay time.Duration
	if index < len(decoded.Delay) {
		delay = time.Duration(decoded.Delay[index]) * 10 * time.Millisecond
	}
	if delay < minFrameDelay {
		return defaultFrameDelay
	}
	return delay
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	clone := image.NewRGBA(img.Bounds())
	copy(clone.Pix, img.Pix)
	return clone
}
