package internal

import (
	"github.com/AllenDang/giu"
	"vincit.fi/image-viewer/common/imagereader"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/common/loop"
	"vincit.fi/image-viewer/ui/giu/internal/guiapi"
	"vincit.fi/image-viewer/ui/viewer"
)

// ImageManager keeps the texture of the visible surface layer. The previous
// texture stays visible until the upload of a newer surface version is done.
type ImageManager struct {
	loop      *loop.Loop
	requested uint64
	loaded    *guiapi.TexturedImage
}

func NewImageManager(l *loop.Loop) *ImageManager {
	return &ImageManager{
		loop:   l,
		loaded: guiapi.NewEmptyTexturedImage(0),
	}
}

func (s *ImageManager) Texture(surface *viewer.Surface) *guiapi.TexturedImage {
	version := surface.Version()
	if version != s.requested {
		s.requested = version
		s.upload(surface, version)
	}
	return s.loaded
}

func (s *ImageManager) upload(surface *viewer.Surface, version uint64) {
	img, scaled := surface.VisibleImage()
	if img == nil {
		s.loaded = guiapi.NewEmptyTexturedImage(version)
		return
	}

	rgba := imagereader.ToRGBA(img)
	width, height := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Uploading texture %dx%d for version %d (scaled: %t)", width, height, version, scaled)
	}
	giu.NewTextureFromRgba(rgba, func(texture *giu.Texture) {
		s.loop.Post(func() {
			if version <= s.loaded.Version {
				logger.Trace.Printf("Skip outdated texture for version %d", version)
				return
			}
			s.loaded = guiapi.NewTexturedImage(texture, version, width, height)
		})
	})
}

func (s *ImageManager) Clear() {
	s.loaded = guiapi.NewEmptyTexturedImage(s.requested)
}
