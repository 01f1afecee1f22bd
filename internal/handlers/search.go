package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/vault"
)

// PageHitResponse represents one page search hit in HTTP responses.
type PageHitResponse struct {
	FileID     string  `json:"file_id"`
	Filename   string  `json:"filename"`
	PDFType    string  `json:"pdf_type"`
	PageNumber int     `json:"page_number"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet"`
}

// SearchPagesResponse represents the page search response payload.
type SearchPagesResponse struct {
	Query    string            `json:"query"`
	Hits     []PageHitResponse `json:"hits"`
	Dangling []string          `json:"dangling_file_ids,omitempty"`
}

// SearchPagesHandler handles HTTP requests for full-text page search.
type SearchPagesHandler struct {
	svc          vault.Service
	defaultLimit int
}

// NewSearchPagesHandler creates a new SearchPagesHandler.
func NewSearchPagesHandler(svc vault.Service, defaultLimit int) *SearchPagesHandler {
	return &SearchPagesHandler{svc: svc, defaultLimit: defaultLimit}
}

// ServeHTTP runs a page content search. Dangling page references are not an
// error at this layer: the valid hits are served and the orphaned file ids
// reported alongside them.
func (h *SearchPagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query, limit, ok := searchParams(w, r, h.defaultLimit)
	if !ok {
		return
	}

	hits, err := h.svc.SearchPages(ctx, query, limit)

	var dangling *vault.DanglingReferenceError
	if errors.As(err, &dangling) {
		logger.WarnContext(ctx, "search returned dangling references",
			"query", query, "file_ids", dangling.FileIDs)
		err = nil
	}
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search pages")
		return
	}

	resp := SearchPagesResponse{
		Query: query,
		Hits:  make([]PageHitResponse, len(hits)),
	}
	for i, hit := range hits {
		resp.Hits[i] = PageHitResponse{
			FileID:     hit.FileID,
			Filename:   hit.Filename,
			PDFType:    hit.PDFType,
			PageNumber: hit.PageNumber,
			Score:      hit.Score,
			Snippet:    hit.Snippet,
		}
	}
	if dangling != nil {
		resp.Dangling = dangling.FileIDs
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchFilesResponse represents the file search response payload.
type SearchFilesResponse struct {
	Query string                    `json:"query"`
	Files map[string][]FileResponse `json:"files"`
	Total int                       `json:"total"`
}

// SearchFilesHandler handles HTTP requests for title search over files.
type SearchFilesHandler struct {
	svc          vault.Service
	defaultLimit int
}

// NewSearchFilesHandler creates a new SearchFilesHandler.
func NewSearchFilesHandler(svc vault.Service, defaultLimit int) *SearchFilesHandler {
	return &SearchFilesHandler{svc: svc, defaultLimit: defaultLimit}
}

// ServeHTTP runs a title search and returns hits grouped by pdf type.
func (h *SearchFilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, limit, ok := searchParams(w, r, h.defaultLimit)
	if !ok {
		return
	}

	grouped, err := h.svc.SearchFiles(ctx, query, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search files")
		return
	}

	files := toGroupedFilesResponse(grouped)
	writeJSON(w, http.StatusOK, SearchFilesResponse{
		Query: query,
		Files: files.Files,
		Total: files.Total,
	})
}

// searchParams extracts and validates the q and limit query parameters,
// writing the error response itself when validation fails.
func searchParams(w http.ResponseWriter, r *http.Request, defaultLimit int) (string, int, bool) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter q is required")
		return "", 0, false
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return "", 0, false
		}
		limit = parsed
	}

	return query, limit, true
}
