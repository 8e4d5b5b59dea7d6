package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"knowledge-search/internal/models"
)

// IngestClientInterface defines the interface for the hosted ingestion
// endpoint that indexes documents into the knowledge base
type IngestClientInterface interface {
	// UploadFiles transmits all files as a single multipart request.
	// Any 2xx response is success; everything else is an error carrying a
	// human-readable reason.
	UploadFiles(ctx context.Context, files []models.UploadFile) error
}

// IngestClient uploads documents to the hosted RAG ingestion endpoint
type IngestClient struct {
	uploadURL  string
	httpClient *http.Client
}

// NewIngestClient creates a new ingestion client
func NewIngestClient(uploadURL string, timeout time.Duration) *IngestClient {
	return &IngestClient{
		uploadURL: uploadURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// UploadFiles sends all files under the "files" form field in one request
func (c *IngestClient) UploadFiles(ctx context.Context, files []models.UploadFile) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to upload")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, file := range files {
		part, err := writer.CreatePart(filePartHeader(file))
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("failed to write file data: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, body)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// filePartHeader builds a multipart header preserving the file's PDF
// content type instead of the octet-stream default
func filePartHeader(file models.UploadFile) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
