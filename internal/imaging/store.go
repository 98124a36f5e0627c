package imaging

import (
	"sync"

	"github.com/google/uuid"
)

// Store is a handle-keyed registry of Images.
//
// Callers that cannot hold an Image value directly (for example a remote
// client over a line protocol) refer to images by the opaque handle returned
// from Put or LoadFile. File loads are memoised by path: loading the same path
// twice returns the same handle without touching the disk again.
//
// Store is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Stored images remain in memory until explicitly removed via Evict() or Clear().
// Long-running processes should release handles they no longer need.
type Store struct {
	mu     sync.RWMutex
	images map[string]Image
	paths  map[string]string
}

// NewStore creates and initializes a new empty store.
func NewStore() *Store {
	return &Store{
		images: make(map[string]Image),
		paths:  make(map[string]string),
	}
}

// Put registers img under a fresh handle and returns the handle.
func (s *Store) Put(img Image) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.images[id] = img
	s.mu.Unlock()
	return id
}

// Get returns the image registered under id.
//
// Returns an ErrInput error if the handle is unknown.
func (s *Store) Get(id string) (Image, error) {
	s.mu.RLock()
	img, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return Image{}, newErr("store", ErrInput, "unknown image handle %q", id)
	}
	return img, nil
}

// LoadFile loads path into the store, or returns the handle of a previous load
// of the same path if it is still registered.
//
// The path string is used verbatim as the memo key; a relative and an absolute
// path to the same file are separate entries.
func (s *Store) LoadFile(path string) (string, Image, error) {
	s.mu.RLock()
	if id, ok := s.paths[path]; ok {
		if img, ok := s.images[id]; ok {
			s.mu.RUnlock()
			return id, img, nil
		}
	}
	s.mu.RUnlock()

	img, err := LoadFile(path)
	if err != nil {
		return "", Image{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have loaded the same path meanwhile.
	if id, ok := s.paths[path]; ok {
		if prev, ok := s.images[id]; ok {
			return id, prev, nil
		}
	}
	id := uuid.NewString()
	s.images[id] = img
	s.paths[path] = id
	return id, img, nil
}

// Evict removes the image registered under id. Unknown handles are ignored.
func (s *Store) Evict(id string) {
	s.mu.Lock()
	delete(s.images, id)
	for p, pid := range s.paths {
		if pid == id {
			delete(s.paths, p)
		}
	}
	s.mu.Unlock()
}

// Clear removes every image from the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.images = make(map[string]Image)
	s.paths = make(map[string]string)
	s.mu.Unlock()
}

// Len returns the number of registered images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
