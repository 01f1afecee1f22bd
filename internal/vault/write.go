package vault

import (
	"context"
	"fmt"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/storage"
)

// WriteFileRecord validates and writes exactly one file record: one writer
// session, one add, one commit. Schema violations reject the write before
// any mutation. The record id is treated as the idempotence key: any
// previous record with the same id is replaced within the same session, so
// re-adding a document never duplicates it.
func (m *Manager) WriteFileRecord(ctx context.Context, rec storage.FileRecord) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	if rec.ID == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if !IsValidType(rec.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidType, rec.Type)
	}

	w, err := m.files.Writer(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	replaced, err := w.DeleteByTerm("id", rec.ID)
	if err != nil {
		return err
	}
	if err := w.Add(rec.Fields()); err != nil {
		return err
	}
	if err := w.Commit(); err != nil {
		return err
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "wrote file record", "id", rec.ID, "type", rec.Type, "replaced", replaced > 0)
	return nil
}

// WritePageRecords adds many page records in a single writer session: one
// commit covers all of them, for both atomicity and throughput. Records are
// processed in the order supplied (callers should supply ascending page
// order). onProgress, when non-nil, is invoked once per record purely for
// observation.
func (m *Manager) WritePageRecords(ctx context.Context, recs []storage.PageRecord, onProgress ProgressFunc) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	w, err := m.pages.Writer(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	for i, rec := range recs {
		if err := w.Add(rec.Fields()); err != nil {
			return fmt.Errorf("page %d: %w", rec.PageNumber, err)
		}
		if onProgress != nil {
			onProgress(i, rec)
		}
	}
	if err := w.Commit(); err != nil {
		return err
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "wrote page records", "count", len(recs), "file_id", recs[0].FileID)
	return nil
}
