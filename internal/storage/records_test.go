package storage

import (
	"reflect"
	"testing"
)

func TestFileRecord_RoundTrip(t *testing.T) {
	rec := FileRecord{
		ID:       "abc123",
		Type:     "books",
		Title:    "Introduction to Graph Theory",
		Authors:  []string{"West, Douglas B.", "Another, Author"},
		Year:     "2001",
		Edition:  "2nd",
		ISBN13:   "9780130144003",
		Filename: "west-graph-theory.pdf",
		Keywords: []string{"graphs", "combinatorics"},
	}

	fields := rec.Fields()
	if err := FilesSchema.validateFields(fields); err != nil {
		t.Fatalf("Fields() not valid against FilesSchema: %v", err)
	}

	// Simulate the store: every field comes back as its stored value.
	doc := Document{Fields: fields}
	got := FileRecordFromDocument(doc)
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestFileRecord_EmptyAuthors(t *testing.T) {
	rec := FileRecord{ID: "x", Type: "docs", Title: "Untitled", Filename: "x.pdf"}

	fields := rec.Fields()
	if got := fields["authors"]; got != "[]" {
		t.Errorf("authors = %q, want %q", got, "[]")
	}

	got := FileRecordFromDocument(Document{Fields: fields})
	if got.Authors != nil {
		t.Errorf("Authors = %v, want nil", got.Authors)
	}
}

func TestFileRecord_LegacyAuthorsValue(t *testing.T) {
	// A non-JSON authors value is kept as a single entry, not dropped.
	doc := Document{Fields: map[string]any{"id": "x", "authors": "Plain Name"}}
	got := FileRecordFromDocument(doc)
	if !reflect.DeepEqual(got.Authors, []string{"Plain Name"}) {
		t.Errorf("Authors = %v, want [Plain Name]", got.Authors)
	}
}

func TestPageRecord_RoundTrip(t *testing.T) {
	rec := PageRecord{
		ID:         "deadbeef",
		Text:       "page text",
		FileID:     "abc123",
		Filename:   "west-graph-theory.pdf",
		PDFType:    "books",
		PageNumber: 17,
	}

	fields := rec.Fields()
	if err := PagesSchema.validateFields(fields); err != nil {
		t.Fatalf("Fields() not valid against PagesSchema: %v", err)
	}

	// Int fields come back from the store as int64.
	fields["page_number"] = int64(17)
	got := PageRecordFromDocument(Document{Fields: fields})
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestSchema_Fingerprint(t *testing.T) {
	if FilesSchema.Fingerprint() == PagesSchema.Fingerprint() {
		t.Error("FilesSchema and PagesSchema fingerprints must differ")
	}

	reordered := Schema{
		Name:   PagesSchema.Name,
		Fields: append([]Field{PagesSchema.Fields[1], PagesSchema.Fields[0]}, PagesSchema.Fields[2:]...),
	}
	if reordered.Fingerprint() == PagesSchema.Fingerprint() {
		t.Error("field order must change the fingerprint")
	}
}
