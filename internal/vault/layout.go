package vault

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// PDFTypes is the fixed set of document types. The vault keeps one physical
// file subdirectory per type.
var PDFTypes = []string{"books", "papers", "thesis", "docs"}

// IsValidType reports whether t is one of the fixed PDF types.
func IsValidType(t string) bool {
	for _, pt := range PDFTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// indexDirName is the subdirectory holding both collections.
const indexDirName = "index"

// Layout owns the vault's on-disk directory contract: the index directory
// plus one subdirectory per type. Physical file naming is derived externally
// from metadata; the layout only places and removes the bytes it is given.
type Layout struct {
	root string
}

// NewLayout returns a layout rooted at the given vault directory.
func NewLayout(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the vault root directory.
func (l *Layout) Root() string {
	return l.root
}

// IndexDir returns the directory holding the collections.
func (l *Layout) IndexDir() string {
	return filepath.Join(l.root, indexDirName)
}

// TypeDir returns the physical file directory for the given type.
func (l *Layout) TypeDir(pdfType string) string {
	return filepath.Join(l.root, pdfType)
}

// PDFPath returns the physical path for a stored document.
func (l *Layout) PDFPath(pdfType, filename string) string {
	return filepath.Join(l.root, pdfType, filename)
}

// Ensure creates the index directory and every missing type directory. It
// returns the names of the artifacts it created, relative to the vault root,
// and is idempotent beyond the existence checks. The vault root itself must
// already exist.
func (l *Layout) Ensure() ([]string, error) {
	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, l.root)
	}

	var created []string
	dirs := append([]string{indexDirName}, PDFTypes...)
	for _, name := range dirs {
		path := filepath.Join(l.root, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		if err := os.Mkdir(path, 0o755); err != nil {
			return created, fmt.Errorf("failed to create %s: %w", name, err)
		}
		created = append(created, name)
	}
	return created, nil
}

// StorePDF atomically places document bytes into the type directory. Writing
// the same content to an existing path is a no-op; differing content is
// refused because filenames are metadata-derived and a collision means two
// distinct documents mapped to one name.
func (l *Layout) StorePDF(pdfType, filename string, data []byte) error {
	if !IsValidType(pdfType) {
		return fmt.Errorf("%w: %s", ErrInvalidType, pdfType)
	}
	path := l.PDFPath(pdfType, filename)

	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
		return fmt.Errorf("file %s already exists with different content", path)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to store pdf %s: %w", path, err)
	}
	return nil
}

// RemovePDF removes a stored document. A missing file is not an error; the
// index record is authoritative and the physical file may already be gone.
func (l *Layout) RemovePDF(pdfType, filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(l.PDFPath(pdfType, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pdf: %w", err)
	}
	return nil
}

// RemoveAll permanently deletes the index directory and every type
// subdirectory. Irreversible.
func (l *Layout) RemoveAll() error {
	dirs := append([]string{indexDirName}, PDFTypes...)
	for _, name := range dirs {
		if err := os.RemoveAll(filepath.Join(l.root, name)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}
