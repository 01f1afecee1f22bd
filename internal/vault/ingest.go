package vault

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"pdfvault/internal/storage"
)

// ExtractedPage is one page of extracted text (primary plus any
// OCR-recovered content), as produced by the external PDF extractor.
type ExtractedPage struct {
	Text       string
	PageNumber int
}

// Extraction is the external extractor's output for one document. Metadata
// keys mirror the file record fields; absent keys become empty strings.
// PageErrors carries per-page extraction failures; they are non-fatal and
// pass through to the caller unchanged. PDFData, when present, holds the
// document bytes to place into the type directory; Filename is derived
// externally from metadata.
type Extraction struct {
	Metadata    map[string]string
	Pages       []ExtractedPage
	ContentHash string
	Type        string
	Filename    string
	PDFData     []byte
	PageErrors  map[int]string
}

// IngestResult reports what an ingest wrote, with the extractor's per-page
// errors passed through unchanged.
type IngestResult struct {
	FileID       string
	PagesIndexed int
	PageErrors   map[int]string
}

// Ingest turns an extraction into index state: the PDF bytes are stored
// first (a failed store must not leave index entries pointing at a missing
// file), then the file record, then every page record. The file-then-pages
// ordering keeps the soft foreign key valid: each page references a file
// record that is live at the time of the page write.
func (m *Manager) Ingest(ctx context.Context, ext Extraction, onProgress ProgressFunc) (*IngestResult, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if ext.ContentHash == "" {
		return nil, &ValidationError{Field: "content_hash", Message: "cannot be empty"}
	}
	if !IsValidType(ext.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, ext.Type)
	}
	if len(ext.PDFData) > 0 && ext.Filename == "" {
		return nil, &ValidationError{Field: "filename", Message: "required when pdf data is supplied"}
	}

	if len(ext.PDFData) > 0 {
		if err := m.layout.StorePDF(ext.Type, ext.Filename, ext.PDFData); err != nil {
			return nil, err
		}
	}

	rec := fileRecordFromExtraction(ext)
	if err := m.WriteFileRecord(ctx, rec); err != nil {
		return nil, err
	}

	pages := make([]storage.PageRecord, len(ext.Pages))
	for i, p := range ext.Pages {
		pages[i] = storage.PageRecord{
			ID:         hashText(p.Text),
			Text:       p.Text,
			FileID:     rec.ID,
			Filename:   rec.Filename,
			PDFType:    rec.Type,
			PageNumber: p.PageNumber,
		}
	}
	if err := m.WritePageRecords(ctx, pages, onProgress); err != nil {
		return nil, err
	}

	return &IngestResult{
		FileID:       rec.ID,
		PagesIndexed: len(pages),
		PageErrors:   ext.PageErrors,
	}, nil
}

// fileRecordFromExtraction maps extractor metadata onto a FileRecord.
// Absent keys become empty strings, never missing values. ISBNs are stored
// without separator dashes.
func fileRecordFromExtraction(ext Extraction) storage.FileRecord {
	md := ext.Metadata
	get := func(key string) string {
		return strings.TrimSpace(md[key])
	}
	return storage.FileRecord{
		ID:       ext.ContentHash,
		Type:     ext.Type,
		Title:    get("title"),
		Authors:  splitList(get("authors")),
		Year:     get("year"),
		DOI:      get("doi"),
		Edition:  get("edition"),
		ISBN10:   strings.ReplaceAll(get("isbn10"), "-", ""),
		ISBN13:   strings.ReplaceAll(get("isbn13"), "-", ""),
		Journal:  get("journal"),
		Volume:   get("volume"),
		Pages:    get("pages"),
		Filename: ext.Filename,
		Keywords: splitList(get("keywords")),
	}
}

// splitList splits a comma-separated metadata value, trimming whitespace
// and dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hashText returns the page id: a hex digest of the page's extracted text.
// Two pages with identical text collide by design.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", sum)
}
