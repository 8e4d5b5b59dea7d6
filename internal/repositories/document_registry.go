package repositories

import (
	"time"

	"knowledge-search/internal/models"
)

// DocumentRegistry is the ordered collection of documents accepted into the
// knowledge base. It mirrors what the ingestion service indexed and may
// drift from it: deletions here do not reach the remote index.
type DocumentRegistry interface {
	// Add appends documents to the end of the registry, preserving order
	Add(docs ...*models.UploadedDocument)

	// RemoveAt removes the document at index. Out-of-range indices are a
	// silent no-op; it returns whether a document was removed.
	RemoveAt(index int) bool

	// List returns the documents in upload order
	List() []*models.UploadedDocument

	// Count returns the number of registered documents
	Count() int

	// LastUploadedAt returns the most recent upload time, if any.
	// Display only.
	LastUploadedAt() (time.Time, bool)
}
