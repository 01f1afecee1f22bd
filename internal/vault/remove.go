package vault

import (
	"context"

	"pdfvault/internal/contextutil"
)

// RemoveFile cascades a delete across both collections: every page record
// with file_id == fileID goes first, then the file record itself (0 or 1
// expected). Idempotent; a second call with the same id returns (0, 0).
//
// If the page deletion fails the file deletion does not run, leaving the
// file record and any undeleted pages intact. The reverse failure means
// pages may already be gone while the file record's status is unknown;
// callers must re-query before retrying. This page-then-file ordering is a
// deliberate mitigation, not a cross-collection atomicity guarantee.
func (m *Manager) RemoveFile(ctx context.Context, fileID string) (filesDeleted, pagesDeleted int64, err error) {
	if err := m.checkOpen(); err != nil {
		return 0, 0, err
	}

	// Capture filename/type before the record disappears so the physical
	// file can be removed afterwards.
	docs, err := m.files.FindByField(ctx, "id", []string{fileID})
	if err != nil {
		return 0, 0, err
	}

	pagesDeleted, err = m.pages.DeleteByTerm(ctx, "file_id", fileID)
	if err != nil {
		return 0, 0, err
	}

	filesDeleted, err = m.files.DeleteByTerm(ctx, "id", fileID)
	if err != nil {
		return 0, pagesDeleted, err
	}

	logger := contextutil.LoggerFromContext(ctx)

	// Best-effort physical cleanup; the index deletions above are the
	// authoritative outcome of this operation.
	for _, doc := range docs {
		if rmErr := m.layout.RemovePDF(doc.String("type"), doc.String("filename")); rmErr != nil {
			logger.WarnContext(ctx, "failed to remove stored pdf", "file_id", fileID, "error", rmErr)
		}
	}

	logger.InfoContext(ctx, "removed file", "file_id", fileID,
		"files_deleted", filesDeleted, "pages_deleted", pagesDeleted)
	return filesDeleted, pagesDeleted, nil
}
