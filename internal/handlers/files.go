package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/storage"
	"pdfvault/internal/vault"
)

// FileResponse represents one file record in HTTP responses.
type FileResponse struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Year     string   `json:"year,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Edition  string   `json:"edition,omitempty"`
	ISBN10   string   `json:"isbn10,omitempty"`
	ISBN13   string   `json:"isbn13,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Volume   string   `json:"volume,omitempty"`
	Pages    string   `json:"pages,omitempty"`
	Filename string   `json:"filename"`
	Keywords []string `json:"keywords,omitempty"`
}

// GroupedFilesResponse represents file records grouped by pdf type.
type GroupedFilesResponse struct {
	Files map[string][]FileResponse `json:"files"`
	Total int                       `json:"total"`
}

func toFileResponse(rec storage.FileRecord) FileResponse {
	return FileResponse{
		ID:       rec.ID,
		Type:     rec.Type,
		Title:    rec.Title,
		Authors:  rec.Authors,
		Year:     rec.Year,
		DOI:      rec.DOI,
		Edition:  rec.Edition,
		ISBN10:   rec.ISBN10,
		ISBN13:   rec.ISBN13,
		Journal:  rec.Journal,
		Volume:   rec.Volume,
		Pages:    rec.Pages,
		Filename: rec.Filename,
		Keywords: rec.Keywords,
	}
}

func toGroupedFilesResponse(grouped map[string][]storage.FileRecord) GroupedFilesResponse {
	resp := GroupedFilesResponse{Files: make(map[string][]FileResponse, len(grouped))}
	for pdfType, recs := range grouped {
		group := make([]FileResponse, len(recs))
		for i, rec := range recs {
			group[i] = toFileResponse(rec)
		}
		resp.Files[pdfType] = group
		resp.Total += len(recs)
	}
	return resp
}

// ListFilesHandler handles HTTP requests to list all indexed files.
type ListFilesHandler struct {
	svc vault.Service
}

// NewListFilesHandler creates a new ListFilesHandler.
func NewListFilesHandler(svc vault.Service) *ListFilesHandler {
	return &ListFilesHandler{svc: svc}
}

// ServeHTTP returns every indexed file record, grouped by pdf type.
func (h *ListFilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	grouped, err := h.svc.ListAllFiles(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list files")
		return
	}

	writeJSON(w, http.StatusOK, toGroupedFilesResponse(grouped))
}

// IngestHandler handles HTTP requests to ingest an extracted document.
type IngestHandler struct {
	svc vault.Service
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(svc vault.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// IngestPageRequest represents one extracted page in an ingest request.
type IngestPageRequest struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
}

// IngestRequest represents the HTTP request payload for ingest. PDFData is
// base64-encoded; when present, filename is required.
type IngestRequest struct {
	Metadata    map[string]string   `json:"metadata"`
	Pages       []IngestPageRequest `json:"pages"`
	ContentHash string              `json:"content_hash"`
	Type        string              `json:"type"`
	Filename    string              `json:"filename"`
	PDFData     string              `json:"pdf_data,omitempty"`
	PageErrors  map[int]string      `json:"page_errors,omitempty"`
}

// IngestResponse represents the HTTP response payload for ingest.
type IngestResponse struct {
	FileID       string         `json:"file_id"`
	PagesIndexed int            `json:"pages_indexed"`
	PageErrors   map[int]string `json:"page_errors,omitempty"`
}

// ServeHTTP decodes an extraction payload and hands it to the coordinator.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var pdfData []byte
	if req.PDFData != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.PDFData)
		if err != nil {
			logger.WarnContext(ctx, "invalid pdf data encoding", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid pdf_data: expected base64")
			return
		}
		pdfData = decoded
	}

	ext := vault.Extraction{
		Metadata:    req.Metadata,
		Pages:       make([]vault.ExtractedPage, len(req.Pages)),
		ContentHash: strings.TrimSpace(req.ContentHash),
		Type:        req.Type,
		Filename:    req.Filename,
		PDFData:     pdfData,
		PageErrors:  req.PageErrors,
	}
	for i, p := range req.Pages {
		ext.Pages[i] = vault.ExtractedPage{Text: p.Text, PageNumber: p.PageNumber}
	}

	result, err := h.svc.Ingest(ctx, ext, nil)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to ingest document")
		return
	}

	writeJSON(w, http.StatusCreated, IngestResponse{
		FileID:       result.FileID,
		PagesIndexed: result.PagesIndexed,
		PageErrors:   result.PageErrors,
	})
}

// RemoveFileHandler handles HTTP requests to remove a file and its pages.
type RemoveFileHandler struct {
	svc vault.Service
}

// NewRemoveFileHandler creates a new RemoveFileHandler.
func NewRemoveFileHandler(svc vault.Service) *RemoveFileHandler {
	return &RemoveFileHandler{svc: svc}
}

// RemoveFileResponse represents the HTTP response payload for a removal.
type RemoveFileResponse struct {
	FileID       string `json:"file_id"`
	FilesDeleted int64  `json:"files_deleted"`
	PagesDeleted int64  `json:"pages_deleted"`
}

// ServeHTTP cascades a delete for the file id in the URL. Removal is
// idempotent, so an unknown id still returns 200 with zero counts.
func (h *RemoveFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fileID := strings.TrimSpace(chi.URLParam(r, "fileID"))
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "File id is required")
		return
	}

	filesDeleted, pagesDeleted, err := h.svc.RemoveFile(ctx, fileID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to remove file")
		return
	}

	writeJSON(w, http.StatusOK, RemoveFileResponse{
		FileID:       fileID,
		FilesDeleted: filesDeleted,
		PagesDeleted: pagesDeleted,
	})
}
