package apitype

import (
	"fmt"
	"image"
	"time"
)

type DocumentType int

const (
	DocumentStatic DocumentType = iota
	DocumentAnimated
	DocumentVideo
)

func (s DocumentType) String() string {
	switch s {
	case DocumentStatic:
		return "static"
	case DocumentAnimated:
		return "animated"
	case DocumentVideo:
		return "video"
	}
	return "unknown"
}

// FrameSource is a forward-only animation decoder. The decoder owns the frame
// buffer; CurrentFrame may return the same image instance between calls.
// JumpToFrame is only guaranteed to work for frame 0.
type FrameSource interface {
	FrameCount() int
	CurrentFrameNumber() int
	JumpToFrame(frame int) bool
	JumpToNextFrame() bool
	CurrentFrame() image.Image
	NextFrameDelay() time.Duration
	LastError() error
	Size() Size
}

// VideoClip is an opaque handle for content played by an external player.
type VideoClip interface {
	Path() string
}

// Document is one displayable item. Exactly one of image, animation and video
// is set, matching docType.
type Document struct {
	path      string
	modified  time.Time
	docType   DocumentType
	image     image.Image
	animation FrameSource
	video     VideoClip
	fileSize  int64
}

func NewStaticDocument(path string, modified time.Time, img image.Image) *Document {
	return &Document{path: path, modified: modified, docType: DocumentStatic, image: img}
}

func NewAnimatedDocument(path string, modified time.Time, animation FrameSource) *Document {
	return &Document{path: path, modified: modified, docType: DocumentAnimated, animation: animation}
}

func NewVideoDocument(path string, modified time.Time, clip VideoClip) *Document {
	return &Document{path: path, modified: modified, docType: DocumentVideo, video: clip}
}

func (s *Document) IsValid() bool {
	if s == nil {
		return false
	}
	switch s.docType {
	case DocumentStatic:
		return s.image != nil
	case DocumentAnimated:
		return s.animation != nil
	case DocumentVideo:
		return s.video != nil
	}
	return false
}

func (s *Document) Type() DocumentType {
	return s.docType
}

func (s *Document) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Document) Modified() time.Time {
	return s.modified
}

func (s *Document) Image() image.Image {
	return s.image
}

func (s *Document) Animation() FrameSource {
	return s.animation
}

func (s *Document) Video() VideoClip {
	return s.video
}

func (s *Document) FileSize() int64 {
	return s.fileSize
}

func (s *Document) SetFileSize(byteSize int64) {
	s.fileSize = byteSize
}

func (s *Document) Size() Size {
	switch s.docType {
	case DocumentStatic:
		if s.image != nil {
			return SizeOfRectangle(s.image.Bounds())
		}
	case DocumentAnimated:
		if s.animation != nil {
			return s.animation.Size()
		}
	}
	return ZeroSize
}

func (s *Document) String() string {
	if s == nil {
		return "Document<nil>"
	}
	return fmt.Sprintf("Document{%s %s %s}", s.path, s.docType, s.Size())
}
