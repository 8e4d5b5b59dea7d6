package repositories

import (
	"testing"
	"time"

	"knowledge-search/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(name string, uploaded time.Time) *models.UploadedDocument {
	return &models.UploadedDocument{
		Name:       name,
		UploadDate: uploaded,
		Size:       1024,
	}
}

func TestRegistryAdd_PreservesOrder(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	now := time.Now()

	registry.Add(doc("a.pdf", now), doc("b.pdf", now))
	registry.Add(doc("c.pdf", now))

	docs := registry.List()
	require.Len(t, docs, 3)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "b.pdf", docs[1].Name)
	assert.Equal(t, "c.pdf", docs[2].Name)
	assert.Equal(t, 3, registry.Count())
}

func TestRegistryRemoveAt(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	now := time.Now()
	registry.Add(doc("a.pdf", now), doc("b.pdf", now), doc("c.pdf", now))

	removed := registry.RemoveAt(1)

	assert.True(t, removed)
	docs := registry.List()
	require.Len(t, docs, 2)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "c.pdf", docs[1].Name)
}

func TestRegistryRemoveAt_OutOfRange(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	registry.Add(doc("a.pdf", time.Now()))

	// Out-of-range removals are silent no-ops
	assert.False(t, registry.RemoveAt(-1))
	assert.False(t, registry.RemoveAt(1))
	assert.False(t, registry.RemoveAt(100))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistryRemoveAt_Empty(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	assert.False(t, registry.RemoveAt(0))
}

func TestRegistryList_ReturnsCopy(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	registry.Add(doc("a.pdf", time.Now()))

	docs := registry.List()
	docs[0] = nil

	assert.NotNil(t, registry.List()[0])
}

func TestRegistryLastUploadedAt(t *testing.T) {
	registry := NewMemoryDocumentRegistry()

	_, ok := registry.LastUploadedAt()
	assert.False(t, ok)

	earlier := time.Now().Add(-time.Hour)
	later := time.Now()
	registry.Add(doc("old.pdf", later), doc("new.pdf", earlier))

	last, ok := registry.LastUploadedAt()
	require.True(t, ok)
	assert.Equal(t, later, last)
}

func TestRegistryDuplicateNames(t *testing.T) {
	registry := NewMemoryDocumentRegistry()
	now := time.Now()

	// Duplicate names are allowed; entries are positional
	registry.Add(doc("a.pdf", now), doc("a.pdf", now))
	assert.Equal(t, 2, registry.Count())

	registry.RemoveAt(0)
	assert.Equal(t, 1, registry.Count())
}
