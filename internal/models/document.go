package models

import (
	"time"
)

// UploadedDocument represents a document accepted into the knowledge base.
// The registry is a local mirror of what the ingestion service indexed; no
// relationship to the remote index is enforced.
type UploadedDocument struct {
	Name       string    `json:"name"`
	UploadDate time.Time `json:"upload_date"`
	Size       int64     `json:"size"`
}

// Validate checks if the document is valid
func (d *UploadedDocument) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "document name is required"}
	}
	if d.Size < 0 {
		return &ValidationError{Field: "size", Message: "size cannot be negative"}
	}
	return nil
}

// UploadedDocumentDTO represents the API view of an uploaded document
type UploadedDocumentDTO struct {
	Name       string `json:"name"`
	UploadDate string `json:"upload_date"`
	Size       int64  `json:"size"`
}

// ToDTO converts UploadedDocument domain model to DTO
func (d *UploadedDocument) ToDTO() UploadedDocumentDTO {
	return UploadedDocumentDTO{
		Name:       d.Name,
		UploadDate: d.UploadDate.Format(time.RFC3339),
		Size:       d.Size,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
