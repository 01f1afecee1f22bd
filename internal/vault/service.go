package vault

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks pdfvault/internal/vault Service

import (
	"context"

	"pdfvault/internal/storage"
)

// ProgressFunc observes per-record progress during bulk writes. It is called
// once per record, synchronously, purely for observation; it must never
// alter control flow and must not block.
type ProgressFunc func(i int, rec storage.PageRecord)

// PageHit is one decorated page search result. Filename and PDFType carry
// the parent FileRecord's authoritative values, looked up at read time, so
// metadata edits are reflected without rewriting page records.
type PageHit struct {
	storage.PageRecord
	Score   float64
	Snippet string
}

// Stats reports record counts per collection.
type Stats struct {
	Files int64
	Pages int64
}

// Service is the coordinator surface the rest of the application talks to.
// It implements the dual-index protocol: validated atomic writes, cascading
// deletes, and cross-collection search joins.
type Service interface {
	// WriteFileRecord writes exactly one file record in one atomic writer
	// session. The record id is the idempotence key: a previous record with
	// the same id is replaced in the same session.
	WriteFileRecord(ctx context.Context, rec storage.FileRecord) error
	// WritePageRecords adds all records in a single writer session (one
	// commit), preserving the supplied order. onProgress may be nil.
	WritePageRecords(ctx context.Context, recs []storage.PageRecord, onProgress ProgressFunc) error
	// RemoveFile cascades: all pages referencing the file are deleted first,
	// then the file record itself. Idempotent; a second call returns (0, 0).
	// Cross-collection atomicity is not guaranteed: if the page deletion
	// fails the file record is left intact, and a failure after it means
	// pages may already be gone.
	RemoveFile(ctx context.Context, fileID string) (filesDeleted, pagesDeleted int64, err error)
	// ListAllFiles returns every file record grouped by type, each group in
	// stable natural order.
	ListAllFiles(ctx context.Context) (map[string][]storage.FileRecord, error)
	// SearchPages runs a text query against page content and decorates each
	// hit with its parent file's authoritative metadata. Orphaned hits are
	// filtered from the slice and reported via *DanglingReferenceError
	// alongside the remaining hits.
	SearchPages(ctx context.Context, query string, limit int) ([]PageHit, error)
	// SearchFiles runs a title-scoped query and groups hits by type; limit
	// caps the total across groups.
	SearchFiles(ctx context.Context, query string, limit int) (map[string][]storage.FileRecord, error)
	// Ingest consumes an external extractor's output: stores the PDF bytes
	// if supplied, writes the file record, then the page records. Per-page
	// extraction errors pass through unchanged in the result.
	Ingest(ctx context.Context, ext Extraction, onProgress ProgressFunc) (*IngestResult, error)
	// Stats returns record counts for both collections.
	Stats(ctx context.Context) (Stats, error)
	// Nuke permanently destroys the vault's index and type directories.
	// The manager is unusable afterwards.
	Nuke(ctx context.Context) error
}
