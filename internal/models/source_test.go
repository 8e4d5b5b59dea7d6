package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		index    int
		expected string
	}{
		{
			name:     "document_name preferred",
			source:   Source{"document_name": "report.pdf", "file_name": "other.pdf"},
			expected: "report.pdf",
		},
		{
			name:     "file_name fallback",
			source:   Source{"file_name": "notes.pdf"},
			expected: "notes.pdf",
		},
		{
			name:     "positional default",
			source:   Source{"excerpt": "some text"},
			index:    2,
			expected: "Source 3",
		},
		{
			name:     "non-string document_name ignored",
			source:   Source{"document_name": 42},
			index:    0,
			expected: "Source 1",
		},
		{
			name:     "empty document_name falls through",
			source:   Source{"document_name": "", "file_name": "notes.pdf"},
			expected: "notes.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.DisplayName(tt.index))
		})
	}
}

func TestSourceExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		expected string
	}{
		{
			name:     "excerpt preferred",
			source:   Source{"excerpt": "quoted text", "content": "other"},
			expected: "quoted text",
		},
		{
			name:     "content fallback",
			source:   Source{"content": "body text"},
			expected: "body text",
		},
		{
			name:     "text fallback",
			source:   Source{"text": "raw text"},
			expected: "raw text",
		},
		{
			name:     "serialized record as last resort",
			source:   Source{"page": float64(4)},
			expected: `{"page":4}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.Excerpt())
		})
	}
}

func TestSourcePageNumber(t *testing.T) {
	// JSON numbers decode as float64
	page, ok := Source{"page_number": float64(7)}.PageNumber()
	assert.True(t, ok)
	assert.Equal(t, 7, page)

	page, ok = Source{"page_number": 3}.PageNumber()
	assert.True(t, ok)
	assert.Equal(t, 3, page)

	_, ok = Source{"page_number": "7"}.PageNumber()
	assert.False(t, ok)

	_, ok = Source{}.PageNumber()
	assert.False(t, ok)
}
