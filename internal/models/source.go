package models

import (
	"encoding/json"
	"fmt"
)

// Source is a citation record returned by the agent. The hosted agent does
// not guarantee a shape, so sources are kept as a loosely-typed bag and read
// through the fallback extractors below rather than ad-hoc field inspection.
type Source map[string]interface{}

// DisplayName resolves the human-readable name of a source.
// Fallback order: document_name, file_name, then a positional default.
func (s Source) DisplayName(index int) string {
	if name := s.stringField("document_name"); name != "" {
		return name
	}
	if name := s.stringField("file_name"); name != "" {
		return name
	}
	return fmt.Sprintf("Source %d", index+1)
}

// Excerpt resolves the quoted text of a source.
// Fallback order: excerpt, content, text, then the raw serialized record.
func (s Source) Excerpt() string {
	for _, key := range []string{"excerpt", "content", "text"} {
		if v := s.stringField(key); v != "" {
			return v
		}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(raw)
}

// PageNumber returns the page number if the source carries one.
// The agent serializes numbers as JSON floats.
func (s Source) PageNumber() (int, bool) {
	switch v := s["page_number"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func (s Source) stringField(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}
