package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"knowledge-search/internal/models"
	"knowledge-search/internal/repositories"

	"github.com/google/uuid"
)

// Sentinel errors reported by StartRun
var (
	// ErrNoValidFiles is returned when no PDF survives filtering
	ErrNoValidFiles = errors.New("no valid PDF files to upload")

	// ErrUploadInFlight is returned while another run is still in an
	// uploading or indexing phase
	ErrUploadInFlight = errors.New("an upload is already in progress")
)

// UploadServiceInterface defines the interface for the upload pipeline
type UploadServiceInterface interface {
	// FilterPDFs keeps only PDF files; non-PDFs are dropped silently
	FilterPDFs(files []models.UploadFile) []models.UploadFile

	// StartRun begins an asynchronous upload run over the given files and
	// returns the run in its initial uploading state
	StartRun(files []models.UploadFile) (*models.UploadRun, error)

	// GetRun returns a snapshot of the run with the given ID
	GetRun(id string) (*models.UploadRun, bool)

	// ActiveRun returns a snapshot of the most recent run, if any
	ActiveRun() (*models.UploadRun, bool)
}

// UploadService drives the document ingestion pipeline: filter, upload,
// wait out indexing, register, then reset. One run at a time.
type UploadService struct {
	ingest   IngestClientInterface
	registry repositories.DocumentRegistry
	notifier NotifierInterface
	logger   *log.Logger

	uploadTimeout     time.Duration
	indexingWait      time.Duration
	successResetDelay time.Duration

	mu        sync.Mutex
	runs      map[string]*models.UploadRun
	latestRun string
}

// NewUploadService creates an upload service
func NewUploadService(ingest IngestClientInterface, registry repositories.DocumentRegistry, notifier NotifierInterface, logger *log.Logger, uploadTimeout, indexingWait, successResetDelay time.Duration) *UploadService {
	return &UploadService{
		ingest:            ingest,
		registry:          registry,
		notifier:          notifier,
		logger:            logger,
		uploadTimeout:     uploadTimeout,
		indexingWait:      indexingWait,
		successResetDelay: successResetDelay,
		runs:              make(map[string]*models.UploadRun),
	}
}

// FilterPDFs keeps only PDF files, matching on the declared content type
// with a filename-extension fallback. Rejected files are dropped silently.
func (s *UploadService) FilterPDFs(files []models.UploadFile) []models.UploadFile {
	valid := make([]models.UploadFile, 0, len(files))
	for _, f := range files {
		if isPDF(f) {
			valid = append(valid, f)
		}
	}
	return valid
}

func isPDF(f models.UploadFile) bool {
	if strings.HasPrefix(strings.ToLower(f.ContentType), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
}

// StartRun filters the files and launches the pipeline in the background.
// It returns ErrNoValidFiles when nothing survives filtering and
// ErrUploadInFlight while a previous run has not finished.
func (s *UploadService) StartRun(files []models.UploadFile) (*models.UploadRun, error) {
	valid := s.FilterPDFs(files)
	if len(valid) == 0 {
		return nil, ErrNoValidFiles
	}

	filenames := make([]string, len(valid))
	for i, f := range valid {
		filenames[i] = f.Name
	}

	s.mu.Lock()
	if current, ok := s.runs[s.latestRun]; ok &&
		(current.Status == models.UploadStatusUploading || current.Status == models.UploadStatusIndexing) {
		s.mu.Unlock()
		return nil, ErrUploadInFlight
	}

	now := time.Now()
	run := &models.UploadRun{
		ID:        uuid.New().String(),
		Filenames: filenames,
		Status:    models.UploadStatusUploading,
		Progress:  models.ProgressUploading,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.runs[run.ID] = run
	s.latestRun = run.ID
	snapshot := *run
	s.mu.Unlock()

	s.logger.Printf("Starting upload run %s with %d file(s)", run.ID, len(valid))
	go s.execute(run.ID, valid)

	return &snapshot, nil
}

// execute runs the pipeline phases for one run. Documents enter the
// registry only after the whole batch indexed; a failed run leaves the
// registry untouched.
func (s *UploadService) execute(runID string, files []models.UploadFile) {
	ctx, cancel := context.WithTimeout(context.Background(), s.uploadTimeout)
	defer cancel()

	if err := s.ingest.UploadFiles(ctx, files); err != nil {
		s.logger.Printf("Upload run %s failed: %v", runID, err)
		s.fail(runID, err.Error())
		return
	}

	s.transition(runID, models.UploadStatusIndexing, models.ProgressIndexing)

	// The ingestion service exposes no readiness signal, so indexing is
	// represented by a bounded wait.
	select {
	case <-time.After(s.indexingWait):
	case <-ctx.Done():
		s.logger.Printf("Upload run %s timed out during indexing wait", runID)
		s.fail(runID, "upload timed out")
		return
	}

	now := time.Now()
	docs := make([]*models.UploadedDocument, len(files))
	for i, f := range files {
		docs[i] = &models.UploadedDocument{
			Name:       f.Name,
			UploadDate: now,
			Size:       f.Size,
		}
	}
	s.registry.Add(docs...)

	s.transition(runID, models.UploadStatusSuccess, models.ProgressComplete)
	s.notifier.Notify(fmt.Sprintf("Successfully uploaded %d document(s)", len(files)))
	s.logger.Printf("Upload run %s completed with %d document(s)", runID, len(files))

	time.AfterFunc(s.successResetDelay, func() {
		s.transition(runID, models.UploadStatusIdle, 0)
	})
}

func (s *UploadService) transition(runID string, status models.UploadStatus, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok || !run.Status.CanTransition(status) {
		return
	}
	run.Status = status
	run.Progress = progress
	run.UpdatedAt = time.Now()
}

func (s *UploadService) fail(runID string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok || !run.Status.CanTransition(models.UploadStatusError) {
		return
	}
	run.Status = models.UploadStatusError
	run.Progress = 0
	run.ErrorMessage = message
	run.UpdatedAt = time.Now()
}

// GetRun returns a snapshot of the run with the given ID
func (s *UploadService) GetRun(id string) (*models.UploadRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	snapshot := *run
	return &snapshot, true
}

// ActiveRun returns a snapshot of the most recent run, if any
func (s *UploadService) ActiveRun() (*models.UploadRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[s.latestRun]
	if !ok {
		return nil, false
	}
	snapshot := *run
	return &snapshot, true
}
