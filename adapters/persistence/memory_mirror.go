package persistence

import (
	"sync"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

// memoryMirror is the process-scoped working copy of portfolio documents.
// It is seeded from the durable store at startup and written on every
// mutation; entries are never expired. Delete operations target the durable
// store only and intentionally leave mirror entries in place.
type memoryMirror struct {
	mu   sync.RWMutex
	docs map[string]*portfolio.Document
}

func NewMemoryMirror(seed []*portfolio.Document) service.Mirror {
	m := &memoryMirror{docs: make(map[string]*portfolio.Document, len(seed))}
	for _, doc := range seed {
		m.docs[doc.OwnerID] = doc.Clone()
	}
	return m
}

func (m *memoryMirror) Get(ownerID string) (*portfolio.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID)
	}
	return doc.Clone(), nil
}

// Put shallow-merges the partial over the existing entry. The read-modify-
// write runs entirely under the lock, so a merge is never interleaved with
// another mutation of the same entry. Unknown owners are rejected: the
// mirror does not create implicitly.
func (m *memoryMirror) Put(ownerID string, partial portfolio.Partial) (*portfolio.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.docs[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID)
	}

	merged := partial.Apply(existing)
	m.docs[ownerID] = merged
	return merged.Clone(), nil
}

func (m *memoryMirror) Seed(doc *portfolio.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.OwnerID] = doc.Clone()
}

func (m *memoryMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
