package document

import (
	"sync"
	"time"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
)

// Cache keeps recently loaded static documents. An entry is only returned if
// the file hasn't been modified since it was loaded.
type Cache struct {
	documents map[string]*apitype.Document
	order     []string
	capacity  int
	mux       sync.Mutex
}

func NewCache(capacity int) *Cache {
	logger.Debug.Printf("Initialize document cache with %d slots", capacity)
	return &Cache{
		documents: map[string]*apitype.Document{},
		capacity:  capacity,
	}
}

func (s *Cache) Get(path string, modified time.Time) *apitype.Document {
	s.mux.Lock()
	defer s.mux.Unlock()
	document, ok := s.documents[path]
	if !ok {
		return nil
	}
	if !document.Modified().Equal(modified) {
		s.remove(path)
		return nil
	}
	s.touch(path)
	return document
}

func (s *Cache) Put(document *apitype.Document) {
	if s.capacity <= 0 {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	path := document.Path()
	if _, ok := s.documents[path]; ok {
		s.remove(path)
	}
	for len(s.order) >= s.capacity {
		logger.Trace.Printf("Evicting '%s' from cache", s.order[0])
		s.remove(s.order[0])
	}
	s.documents[path] = document
	s.order = append(s.order, path)
}

func (s *Cache) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.order)
}

func (s *Cache) Purge() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.documents = map[string]*apitype.Document{}
	s.order = nil
}

func (s *Cache) touch(path string) {
	for i, p := range s.order {
		if p == path {
			s.order = append(append(s.order[:i:i], s.order[i+1:]...), path)
			return
		}
	}
}

func (s *Cache) remove(path string) {
	delete(s.documents, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}
