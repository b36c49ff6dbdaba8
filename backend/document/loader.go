package document

import (
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/imagereader"
	"vincit.fi/image-viewer/common/logger"
)

type format int

const (
	formatUnknown format = iota
	formatJpeg
	formatGif
	formatImage
	formatVideo
)

var formatsByExtension = map[string]format{
	".jpg":  formatJpeg,
	".jpeg": formatJpeg,
	".gif":  formatGif,
	".png":  formatImage,
	".bmp":  formatImage,
	".tif":  formatImage,
	".tiff": formatImage,
	".webp": formatImage,
	".mp4":  formatVideo,
	".webm": formatVideo,
	".mkv":  formatVideo,
	".avi":  formatVideo,
	".mov":  formatVideo,
}

func IsSupported(path string) bool {
	return formatOf(path) != formatUnknown
}

func formatOf(path string) format {
	return formatsByExtension[strings.ToLower(filepath.Ext(path))]
}

type videoClip struct {
	path string
}

func (s *videoClip) Path() string {
	return s.path
}

type Loader struct {
	cache *Cache

	api.DocumentLoader
}

func NewLoader(cacheSize int) *Loader {
	return &Loader{
		cache: NewCache(cacheSize),
	}
}

func (s *Loader) LoadDocument(path string) (*apitype.Document, error) {
	startTime := time.Now()
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", path)
	}
	if stat.IsDir() {
		return nil, errors.Errorf("'%s' is a directory", path)
	}

	if cached := s.cache.Get(path, stat.ModTime()); cached != nil {
		logger.Trace.Printf("Using cached '%s'", path)
		return cached, nil
	}

	var document *apitype.Document
	switch formatOf(path) {
	case formatJpeg:
		document, err = loadStatic(path, stat.ModTime(), imagereader.LoadJpeg)
	case formatImage:
		document, err = loadStatic(path, stat.ModTime(), decodeImage)
	case formatGif:
		document, err = loadGif(path, stat.ModTime())
	case formatVideo:
		document = apitype.NewVideoDocument(path, stat.ModTime(), &videoClip{path: path})
	default:
		err = errors.Errorf("unsupported file type '%s'", filepath.Ext(path))
	}
	if err != nil {
		logger.Error.Printf("Could not load '%s': %s", path, err)
		return nil, err
	}
	document.SetFileSize(stat.Size())

	if document.Type() == apitype.DocumentStatic {
		s.cache.Put(document)
	}
	logger.Debug.Printf("Loaded %s in %s", document, time.Since(startTime))
	return document, nil
}

func (s *Loader) Purge() {
	s.cache.Purge()
}

func loadStatic(path string, modified time.Time, load func(string) (image.Image, error)) (*apitype.Document, error) {
	img, err := load(path)
	if err != nil {
		return nil, err
	}
	return apitype.NewStaticDocument(path, modified, imagereader.ToRGBA(img)), nil
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode '%s'", path)
	}
	return img, nil
}

// loadGif returns single frame GIFs as static documents.
func loadGif(path string, modified time.Time) (*apitype.Document, error) {
	source, err := LoadGif(path)
	if err != nil {
		return nil, err
	}
	if source.FrameCount() == 1 {
		return apitype.NewStaticDocument(path, modified, cloneRGBA(source.canvas)), nil
	}
	return apitype.NewAnimatedDocument(path, modified, source), nil
}
