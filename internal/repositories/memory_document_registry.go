package repositories

import (
	"sync"
	"time"

	"knowledge-search/internal/models"
)

// MemoryDocumentRegistry keeps the document list in process memory
type MemoryDocumentRegistry struct {
	mu   sync.RWMutex
	docs []*models.UploadedDocument
}

// NewMemoryDocumentRegistry creates an empty in-memory registry
func NewMemoryDocumentRegistry() *MemoryDocumentRegistry {
	return &MemoryDocumentRegistry{
		docs: make([]*models.UploadedDocument, 0),
	}
}

// Add appends documents to the end of the registry, preserving order
func (r *MemoryDocumentRegistry) Add(docs ...*models.UploadedDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, docs...)
}

// RemoveAt removes the document at index; out-of-range is a silent no-op
func (r *MemoryDocumentRegistry) RemoveAt(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.docs) {
		return false
	}
	r.docs = append(r.docs[:index], r.docs[index+1:]...)
	return true
}

// List returns a copy of the documents in upload order
func (r *MemoryDocumentRegistry) List() []*models.UploadedDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.UploadedDocument, len(r.docs))
	copy(out, r.docs)
	return out
}

// Count returns the number of registered documents
func (r *MemoryDocumentRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// LastUploadedAt returns the most recent upload time, if any
func (r *MemoryDocumentRegistry) LastUploadedAt() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.docs) == 0 {
		return time.Time{}, false
	}

	latest := r.docs[0].UploadDate
	for _, doc := range r.docs[1:] {
		if doc.UploadDate.After(latest) {
			latest = doc.UploadDate
		}
	}
	return latest, true
}
