package models

import (
	"time"
)

// UploadStatus represents the phase of an upload run
type UploadStatus string

const (
	UploadStatusIdle      UploadStatus = "idle"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusIndexing  UploadStatus = "indexing"
	UploadStatusSuccess   UploadStatus = "success"
	UploadStatusError     UploadStatus = "error"
)

// Progress milestones reported per phase. These signal that work has
// started or advanced, not literal byte-level progress.
const (
	ProgressUploading = 30
	ProgressIndexing  = 70
	ProgressComplete  = 100
)

// IsValid checks if the upload status is valid
func (s UploadStatus) IsValid() bool {
	switch s {
	case UploadStatusIdle, UploadStatusUploading, UploadStatusIndexing,
		UploadStatusSuccess, UploadStatusError:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the run has finished. Success auto-resets to
// idle after a display delay; error stays until the user retries.
func (s UploadStatus) IsTerminal() bool {
	return s == UploadStatusSuccess || s == UploadStatusError
}

// String returns the string representation of the upload status
func (s UploadStatus) String() string {
	return string(s)
}

// CanTransition reports whether moving from s to next is a legal step of
// the pipeline: idle → uploading → indexing → success → idle, with error
// reachable from either in-flight phase.
func (s UploadStatus) CanTransition(next UploadStatus) bool {
	switch s {
	case UploadStatusIdle:
		return next == UploadStatusUploading
	case UploadStatusUploading:
		return next == UploadStatusIndexing || next == UploadStatusError
	case UploadStatusIndexing:
		return next == UploadStatusSuccess || next == UploadStatusError
	case UploadStatusSuccess:
		return next == UploadStatusIdle
	default:
		return false
	}
}

// UploadFile is a candidate file carried through the pipeline
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     []byte
}

// UploadRun is one pass through the upload pipeline. A run exists from the
// moment files are confirmed until it resets to idle or ends in error.
type UploadRun struct {
	ID           string       `json:"run_id"`
	Filenames    []string     `json:"filenames"`
	Status       UploadStatus `json:"status"`
	Progress     int          `json:"progress"`
	ErrorMessage string       `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// UploadRunDTO represents the API view of an upload run
type UploadRunDTO struct {
	ID           string   `json:"run_id"`
	Filenames    []string `json:"filenames"`
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	ErrorMessage string   `json:"error_message,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// ToDTO converts UploadRun domain model to DTO
func (r *UploadRun) ToDTO() UploadRunDTO {
	return UploadRunDTO{
		ID:           r.ID,
		Filenames:    r.Filenames,
		Status:       string(r.Status),
		Progress:     r.Progress,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
