package vault

import (
	"context"

	"pdfvault/internal/contextutil"
	"pdfvault/internal/search"
	"pdfvault/internal/storage"
)

// SearchPages parses the query scoped to page text, executes it against the
// pages collection, and joins every hit with its parent file record. The
// denormalized filename/pdf_type stored on the page are overwritten with the
// file-level values at read time, so metadata edits show up in results
// without touching page records.
//
// Hits whose file_id matches no file record are filtered from the returned
// slice and reported via a *DanglingReferenceError returned alongside the
// remaining hits; callers choose whether to surface or ignore it.
func (m *Manager) SearchPages(ctx context.Context, query string, limit int) ([]PageHit, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	q := search.Parse("text", query)
	docs, err := m.pages.Match(ctx, q.Match, limit)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	// Distinct parent ids, in hit order.
	var fileIDs []string
	seen := make(map[string]struct{})
	for _, doc := range docs {
		id := doc.String("file_id")
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			fileIDs = append(fileIDs, id)
		}
	}

	parentDocs, err := m.files.FindByField(ctx, "id", fileIDs)
	if err != nil {
		return nil, err
	}
	parents := make(map[string]storage.FileRecord, len(parentDocs))
	for _, doc := range parentDocs {
		rec := storage.FileRecordFromDocument(doc)
		parents[rec.ID] = rec
	}

	var hits []PageHit
	var orphans []string
	orphanSeen := make(map[string]struct{})
	for _, doc := range docs {
		rec := storage.PageRecordFromDocument(doc)
		parent, ok := parents[rec.FileID]
		if !ok {
			if _, dup := orphanSeen[rec.FileID]; !dup {
				orphanSeen[rec.FileID] = struct{}{}
				orphans = append(orphans, rec.FileID)
			}
			continue
		}
		rec.Filename = parent.Filename
		rec.PDFType = parent.Type
		hits = append(hits, PageHit{
			PageRecord: rec,
			Score:      doc.Score,
			Snippet:    search.Snippet(rec.Text, q.Terms),
		})
	}

	if len(orphans) > 0 {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "dangling page references",
			"file_ids", orphans)
		return hits, &DanglingReferenceError{FileIDs: orphans}
	}
	return hits, nil
}

// SearchFiles parses the query scoped to titles, executes it against the
// files collection, and groups the hits by type. The limit caps the total
// number of hits, not each group.
func (m *Manager) SearchFiles(ctx context.Context, query string, limit int) (map[string][]storage.FileRecord, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	q := search.Parse("title", query)
	docs, err := m.files.Match(ctx, q.Match, limit)
	if err != nil {
		return nil, err
	}
	return groupByType(docs), nil
}

// ListAllFiles returns every file record grouped by type. Ordering within a
// group is the store's natural order: stable for a fixed index state so
// callers can paginate deterministically.
func (m *Manager) ListAllFiles(ctx context.Context) (map[string][]storage.FileRecord, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	docs, err := m.files.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return groupByType(docs), nil
}

// groupByType buckets file documents by their type field, preserving the
// incoming order within each bucket.
func groupByType(docs []storage.Document) map[string][]storage.FileRecord {
	grouped := make(map[string][]storage.FileRecord)
	for _, doc := range docs {
		rec := storage.FileRecordFromDocument(doc)
		grouped[rec.Type] = append(grouped[rec.Type], rec)
	}
	return grouped
}
