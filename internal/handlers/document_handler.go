package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"knowledge-search/internal/models"
	"knowledge-search/internal/repositories"
	"knowledge-search/internal/services"

	"github.com/gorilla/mux"
)

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	uploadService services.UploadServiceInterface
	registry      repositories.DocumentRegistry
	notifier      services.NotifierInterface
	logger        *log.Logger
	maxUploadMem  int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(uploadService services.UploadServiceInterface, registry repositories.DocumentRegistry, notifier services.NotifierInterface, logger *log.Logger, maxUploadMem int64) *DocumentHandler {
	return &DocumentHandler{
		uploadService: uploadService,
		registry:      registry,
		notifier:      notifier,
		logger:        logger,
		maxUploadMem:  maxUploadMem,
	}
}

// UploadAcceptedResponse confirms an upload run was started
type UploadAcceptedResponse struct {
	RunID    string   `json:"run_id"`
	Accepted []string `json:"accepted"`
	Filtered int      `json:"filtered"`
	Status   string   `json:"status"`
}

// UploadDocuments handles document upload requests
// @Summary Upload documents
// @Description Upload PDF documents to be indexed into the knowledge base. Non-PDF files are dropped silently.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "PDF files"
// @Success 202 {object} UploadAcceptedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/documents/upload [post]
func (h *DocumentHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("Upload request from %s", r.RemoteAddr)

	if err := r.ParseMultipartForm(h.maxUploadMem); err != nil {
		h.logger.Printf("Failed to parse form: %v", err)
		h.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.sendError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	files := make([]models.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			h.logger.Printf("Failed to open uploaded file %s: %v", header.Filename, err)
			h.sendError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.logger.Printf("Failed to read uploaded file %s: %v", header.Filename, err)
			h.sendError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		files = append(files, models.UploadFile{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	run, err := h.uploadService.StartRun(files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoValidFiles):
			h.sendError(w, http.StatusBadRequest, "No valid PDF files to upload")
		case errors.Is(err, services.ErrUploadInFlight):
			h.sendError(w, http.StatusConflict, "An upload is already in progress")
		default:
			h.logger.Printf("Failed to start upload run: %v", err)
			h.sendError(w, http.StatusInternalServerError, "Failed to start upload")
		}
		return
	}

	h.sendJSON(w, http.StatusAccepted, UploadAcceptedResponse{
		RunID:    run.ID,
		Accepted: run.Filenames,
		Filtered: len(files) - len(run.Filenames),
		Status:   run.Status.String(),
	})
}

// GetUploadRun handles requests for upload run progress
// @Summary Get upload run
// @Description Get the status and progress of an upload run
// @Tags documents
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.UploadRunDTO
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/uploads/{id} [get]
func (h *DocumentHandler) GetUploadRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	run, ok := h.uploadService.GetRun(runID)
	if !ok {
		h.sendError(w, http.StatusNotFound, "Upload run not found")
		return
	}

	h.sendJSON(w, http.StatusOK, run.ToDTO())
}

// DocumentListResponse represents the knowledge base contents
type DocumentListResponse struct {
	Documents   []models.UploadedDocumentDTO `json:"documents"`
	Count       int                          `json:"count"`
	LastUpdated string                       `json:"last_updated,omitempty"`
}

// ListDocuments handles requests to list the knowledge base
// @Summary List documents
// @Description Get all documents in the knowledge base in upload order
// @Tags documents
// @Produce json
// @Success 200 {object} DocumentListResponse
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.registry.List()

	dtos := make([]models.UploadedDocumentDTO, len(docs))
	for i, d := range docs {
		dtos[i] = d.ToDTO()
	}

	response := DocumentListResponse{
		Documents: dtos,
		Count:     len(dtos),
	}
	if last, ok := h.registry.LastUploadedAt(); ok {
		response.LastUpdated = last.Format(time.RFC3339)
	}

	h.sendJSON(w, http.StatusOK, response)
}

// DeleteDocument handles requests to remove a document from the registry
// @Summary Remove document
// @Description Remove the document at the given position from the local registry. The remote index is not touched.
// @Tags documents
// @Produce json
// @Param index path int true "Document position"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/documents/{index} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid document index")
		return
	}

	h.logger.Printf("Delete document at index %d", index)

	if !h.registry.RemoveAt(index) {
		h.sendError(w, http.StatusNotFound, "Document not found")
		return
	}

	h.notifier.Notify("Document removed")
	h.sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Document removed",
	})
}

// StatusResponse represents the transient status message and active run
type StatusResponse struct {
	Message string               `json:"message,omitempty"`
	Run     *models.UploadRunDTO `json:"run,omitempty"`
}

// GetStatus handles requests for the transient status message
// @Summary Get status
// @Description Get the current transient status message and the latest upload run, if any
// @Tags general
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/v1/status [get]
func (h *DocumentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	response := StatusResponse{
		Message: h.notifier.Status(),
	}
	if run, ok := h.uploadService.ActiveRun(); ok {
		dto := run.ToDTO()
		response.Run = &dto
	}

	h.sendJSON(w, http.StatusOK, response)
}

func (h *DocumentHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *DocumentHandler) sendError(w http.ResponseWriter, status int, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Status:  status,
	})
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
