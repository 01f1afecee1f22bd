package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestVault(t *testing.T) *Manager {
	t.Helper()
	m, _, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = m.Close()
	})
	return m
}

func TestOpen_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")
	if _, _, err := Open(context.Background(), root); !errors.Is(err, ErrVaultNotFound) {
		t.Errorf("Open() error = %v, want ErrVaultNotFound", err)
	}
}

func TestOpen_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault")
	if err := os.WriteFile(root, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, _, err := Open(context.Background(), root); !errors.Is(err, ErrVaultNotFound) {
		t.Errorf("Open() error = %v, want ErrVaultNotFound", err)
	}
}

func TestOpen_BootstrapReport(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	m, report, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Fresh vault: index dir, 4 type dirs, both collection files.
	if len(report.Created) != 7 {
		t.Errorf("Created = %v, want 7 entries", report.Created)
	}
	for _, name := range append([]string{indexDirName}, PDFTypes...) {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s after bootstrap", name)
		}
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen: nothing to create.
	m2, report, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() reopen error = %v", err)
	}
	defer func() {
		_ = m2.Close()
	}()
	if len(report.Created) != 0 {
		t.Errorf("Created on reopen = %v, want empty", report.Created)
	}
}

func TestOpen_RestoresMissingTypeDir(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	m, _, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := os.Remove(filepath.Join(root, "thesis")); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	m2, report, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() {
		_ = m2.Close()
	}()
	if len(report.Created) != 1 || report.Created[0] != "thesis" {
		t.Errorf("Created = %v, want [thesis]", report.Created)
	}
}

func TestManager_Stats(t *testing.T) {
	m := openTestVault(t)
	ctx := context.Background()

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Files != 0 || stats.Pages != 0 {
		t.Errorf("Stats() = %+v, want zero counts", stats)
	}

	writeTestFile(t, m, "f1", "Some Title")
	writeTestPages(t, m, "f1", "one", "two")

	stats, err = m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Files != 1 || stats.Pages != 2 {
		t.Errorf("Stats() = %+v, want {1 2}", stats)
	}
}

func TestManager_NukeAndReopen(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	m, _, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	writeTestFile(t, m, "f1", "Doomed")

	if err := m.Nuke(ctx); err != nil {
		t.Fatalf("Nuke() error = %v", err)
	}

	// Every operation fails after Nuke.
	if _, err := m.Stats(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Stats() after Nuke error = %v, want ErrClosed", err)
	}
	if err := m.WriteFileRecord(ctx, testFileRecord("f2", "Late")); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteFileRecord() after Nuke error = %v, want ErrClosed", err)
	}
	if _, err := m.ListAllFiles(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("ListAllFiles() after Nuke error = %v, want ErrClosed", err)
	}
	if err := m.Nuke(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Nuke() second call error = %v, want ErrClosed", err)
	}

	if _, err := os.Stat(filepath.Join(root, indexDirName)); !os.IsNotExist(err) {
		t.Error("index directory still exists after Nuke")
	}

	// Reopen performs a full re-bootstrap with empty collections.
	m2, report, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open() after Nuke error = %v", err)
	}
	defer func() {
		_ = m2.Close()
	}()
	if len(report.Created) != 7 {
		t.Errorf("Created after Nuke = %v, want full bootstrap", report.Created)
	}
	stats, err := m2.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Files != 0 {
		t.Errorf("Stats().Files = %d, want 0 after Nuke", stats.Files)
	}
}

// Exercised with -race: readers hitting the manager while it shuts down must
// not race the closed flag. Errors are expected (ErrClosed or a closed
// database), panics and races are not.
func TestManager_ConcurrentOpsDuringClose(t *testing.T) {
	m, _, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	writeTestFile(t, m, "f1", "Concurrent")
	writeTestPages(t, m, "f1", "some page text")

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = m.Stats(ctx)
				_, _ = m.SearchPages(ctx, "page", 10)
				_, _ = m.ListAllFiles(ctx)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = m.Close()
	}()
	wg.Wait()

	if _, err := m.Stats(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Stats() after close error = %v, want ErrClosed", err)
	}
}

func TestManager_CloseIdempotent(t *testing.T) {
	m, _, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() second call error = %v", err)
	}
}
