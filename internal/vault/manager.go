package vault

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"pdfvault/internal/storage"
)

// BootstrapReport lists the artifacts newly created while opening a vault,
// relative to the vault root. An empty list means the vault was already
// fully initialized. The report feeds a human-readable status message; it is
// never an error condition.
type BootstrapReport struct {
	Created []string
}

// Manager coordinates the two collections of one vault. It is the sole
// entry point the rest of the application talks to. A Manager is either
// open or closed; every operation on a closed manager fails with ErrClosed.
// Safe for concurrent use: Close/Nuke may race in-flight operations, which
// then fail with ErrClosed or a closed-database error.
type Manager struct {
	layout *Layout
	files  *storage.Collection
	pages  *storage.Collection
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens the vault rooted at the given directory, bootstrapping any
// missing artifacts: the index directory, both schema-initialized
// collections, and the type subdirectories. It fails with ErrVaultNotFound
// if root is missing or not a directory, and with storage.ErrCorruptIndex
// if an existing collection does not match its declared schema. Open is
// idempotent; reopening an initialized vault reports nothing created.
func Open(ctx context.Context, root string) (*Manager, *BootstrapReport, error) {
	layout := NewLayout(root)

	created, err := layout.Ensure()
	if err != nil {
		return nil, nil, err
	}

	files, filesCreated, err := storage.Open(layout.IndexDir(), storage.FilesSchema)
	if err != nil {
		return nil, nil, err
	}
	if filesCreated {
		created = append(created, path.Join(indexDirName, "files.db"))
	}

	pages, pagesCreated, err := storage.Open(layout.IndexDir(), storage.PagesSchema)
	if err != nil {
		_ = files.Close()
		return nil, nil, err
	}
	if pagesCreated {
		created = append(created, path.Join(indexDirName, "pages.db"))
	}

	m := &Manager{
		layout: layout,
		files:  files,
		pages:  pages,
		logger: slog.Default(),
	}

	if stats, err := m.Stats(ctx); err == nil {
		m.logger.DebugContext(ctx, "vault opened", "root", root, "files", stats.Files, "pages", stats.Pages)
	}

	return m, &BootstrapReport{Created: created}, nil
}

// checkOpen guards every operation against use after Close/Nuke.
func (m *Manager) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Layout exposes the vault's directory contract.
func (m *Manager) Layout() *Layout {
	return m.layout
}

// Close releases both collections. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if err := m.files.Close(); err != nil {
		_ = m.pages.Close()
		return fmt.Errorf("failed to close files collection: %w", err)
	}
	if err := m.pages.Close(); err != nil {
		return fmt.Errorf("failed to close pages collection: %w", err)
	}
	return nil
}

// Stats returns the record counts of both collections.
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	if err := m.checkOpen(); err != nil {
		return Stats{}, err
	}
	files, err := m.files.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	pages, err := m.pages.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Files: files, Pages: pages}, nil
}

// Nuke permanently destroys the vault: both collections are closed and the
// index directory and every type subdirectory are removed. Irreversible; a
// subsequent Open performs a full re-bootstrap.
func (m *Manager) Nuke(ctx context.Context) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	if err := m.Close(); err != nil {
		return err
	}
	if err := m.layout.RemoveAll(); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "vault nuked", "root", m.layout.Root())
	return nil
}
