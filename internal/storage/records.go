package storage

import (
	"encoding/json"
	"strings"
)

// FileRecord is the per-document metadata record, one per physical PDF.
// ID is a content-derived hash and acts as the idempotence key within the
// files collection. Scalar fields hold the empty string when absent, never
// a missing value.
type FileRecord struct {
	ID       string
	Type     string
	Title    string
	Authors  []string
	Year     string
	DOI      string
	Edition  string
	ISBN10   string
	ISBN13   string
	Journal  string
	Volume   string
	Pages    string
	Filename string
	Keywords []string
}

// Fields returns the record as a field map matching FilesSchema. Authors are
// stored verbatim as a JSON array; keywords are comma-joined so each keyword
// stays searchable as a discrete token.
func (r FileRecord) Fields() map[string]any {
	authors, err := json.Marshal(r.Authors)
	if err != nil || r.Authors == nil {
		authors = []byte("[]")
	}
	return map[string]any{
		"id":       r.ID,
		"type":     r.Type,
		"title":    r.Title,
		"authors":  string(authors),
		"year":     r.Year,
		"doi":      r.DOI,
		"edition":  r.Edition,
		"isbn10":   r.ISBN10,
		"isbn13":   r.ISBN13,
		"journal":  r.Journal,
		"volume":   r.Volume,
		"pages":    r.Pages,
		"filename": r.Filename,
		"keywords": strings.Join(r.Keywords, ","),
	}
}

// FileRecordFromDocument converts a stored document back into a FileRecord.
func FileRecordFromDocument(doc Document) FileRecord {
	rec := FileRecord{
		ID:       doc.String("id"),
		Type:     doc.String("type"),
		Title:    doc.String("title"),
		Year:     doc.String("year"),
		DOI:      doc.String("doi"),
		Edition:  doc.String("edition"),
		ISBN10:   doc.String("isbn10"),
		ISBN13:   doc.String("isbn13"),
		Journal:  doc.String("journal"),
		Volume:   doc.String("volume"),
		Pages:    doc.String("pages"),
		Filename: doc.String("filename"),
	}

	// "[]" maps back to the nil zero value, not an empty non-nil slice.
	if raw := doc.String("authors"); raw != "" && raw != "[]" {
		if err := json.Unmarshal([]byte(raw), &rec.Authors); err != nil {
			// Pre-JSON value; keep it rather than dropping it.
			rec.Authors = []string{raw}
		}
	}

	if raw := doc.String("keywords"); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				rec.Keywords = append(rec.Keywords, kw)
			}
		}
	}

	return rec
}

// PageRecord is the per-page content record, many per FileRecord. ID is a
// hash of the page's extracted text; two pages with identical text collide,
// which is acceptable. Filename and PDFType are denormalized copies of the
// parent FileRecord for cheap display without a join.
type PageRecord struct {
	ID         string
	Text       string
	FileID     string
	Filename   string
	PDFType    string
	PageNumber int
}

// Fields returns the record as a field map matching PagesSchema.
func (r PageRecord) Fields() map[string]any {
	return map[string]any{
		"id":          r.ID,
		"text":        r.Text,
		"file_id":     r.FileID,
		"filename":    r.Filename,
		"pdf_type":    r.PDFType,
		"page_number": r.PageNumber,
	}
}

// PageRecordFromDocument converts a stored document back into a PageRecord.
func PageRecordFromDocument(doc Document) PageRecord {
	return PageRecord{
		ID:         doc.String("id"),
		Text:       doc.String("text"),
		FileID:     doc.String("file_id"),
		Filename:   doc.String("filename"),
		PDFType:    doc.String("pdf_type"),
		PageNumber: doc.Int("page_number"),
	}
}
