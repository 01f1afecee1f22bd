package storage

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKind describes how a declared field is stored and queried.
type FieldKind int

const (
	// KindID is an exact-match identifier token (hashes, enums).
	KindID FieldKind = iota
	// KindText is tokenized and stemmed for full-text matching.
	KindText
	// KindStored is stored verbatim and not independently queryable.
	KindStored
	// KindInt is a numeric field, exact/range queryable.
	KindInt
)

// Field is a single declared field of a collection schema.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the fixed field set of one collection. Documents written to the
// collection may only use declared field names; any schema change requires a
// new vault (no migration path).
type Schema struct {
	Name   string
	Fields []Field
}

// FilesSchema is the fixed schema of the per-document metadata collection.
var FilesSchema = Schema{
	Name: "files",
	Fields: []Field{
		{Name: "id", Kind: KindID},
		{Name: "type", Kind: KindID},
		{Name: "title", Kind: KindText},
		{Name: "authors", Kind: KindStored},
		{Name: "year", Kind: KindStored},
		{Name: "doi", Kind: KindStored},
		{Name: "edition", Kind: KindStored},
		{Name: "isbn10", Kind: KindStored},
		{Name: "isbn13", Kind: KindStored},
		{Name: "journal", Kind: KindStored},
		{Name: "volume", Kind: KindStored},
		{Name: "pages", Kind: KindStored},
		{Name: "filename", Kind: KindStored},
		{Name: "keywords", Kind: KindText},
	},
}

// PagesSchema is the fixed schema of the per-page content collection.
var PagesSchema = Schema{
	Name: "pages",
	Fields: []Field{
		{Name: "id", Kind: KindID},
		{Name: "text", Kind: KindText},
		{Name: "file_id", Kind: KindID},
		{Name: "filename", Kind: KindStored},
		{Name: "pdf_type", Kind: KindStored},
		{Name: "page_number", Kind: KindInt},
	},
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// TextFields returns the names of the full-text indexed fields, in
// declaration order.
func (s Schema) TextFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Kind == KindText {
			names = append(names, f.Name)
		}
	}
	return names
}

// Fingerprint returns a stable string identifying the schema layout. It is
// persisted in the collection metadata on creation and compared on every
// open to detect on-disk structures that no longer match.
func (s Schema) Fingerprint() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, fmt.Sprintf("%s/%d", f.Name, f.Kind))
	}
	return s.Name + ":" + strings.Join(parts, ",")
}

// validateFields checks that every field name is declared in the schema.
// It returns a *SchemaViolationError listing the unknown names otherwise.
func (s Schema) validateFields(fields map[string]any) error {
	var unknown []string
	for name := range fields {
		if _, ok := s.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &SchemaViolationError{Collection: s.Name, Unknown: unknown}
	}
	return nil
}

// quoteIdent quotes a column name for embedding in SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnList returns the quoted, comma-separated declared columns.
func (s Schema) columnList() string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = quoteIdent(f.Name)
	}
	return strings.Join(cols, ", ")
}

// createStatements returns the DDL initializing a fresh collection: the base
// records table, the external-content FTS5 table over the full-text fields
// with porter stemming, the triggers keeping them in sync, and an index per
// identifier field.
func (s Schema) createStatements() []string {
	var cols []string
	for _, f := range s.Fields {
		switch f.Kind {
		case KindInt:
			cols = append(cols, quoteIdent(f.Name)+" INTEGER NOT NULL DEFAULT 0")
		default:
			cols = append(cols, quoteIdent(f.Name)+" TEXT NOT NULL DEFAULT ''")
		}
	}

	stmts := []string{
		"CREATE TABLE records (rec_id INTEGER PRIMARY KEY AUTOINCREMENT, " + strings.Join(cols, ", ") + ")",
	}

	text := s.TextFields()
	quotedText := make([]string, len(text))
	newText := make([]string, len(text))
	oldText := make([]string, len(text))
	for i, name := range text {
		quotedText[i] = quoteIdent(name)
		newText[i] = "new." + quoteIdent(name)
		oldText[i] = "old." + quoteIdent(name)
	}

	stmts = append(stmts,
		"CREATE VIRTUAL TABLE records_fts USING fts5("+strings.Join(quotedText, ", ")+
			", content='records', content_rowid='rec_id', tokenize='porter unicode61')",
		"CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN "+
			"INSERT INTO records_fts(rowid, "+strings.Join(quotedText, ", ")+") VALUES (new.rec_id, "+strings.Join(newText, ", ")+"); END",
		"CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN "+
			"INSERT INTO records_fts(records_fts, rowid, "+strings.Join(quotedText, ", ")+") VALUES ('delete', old.rec_id, "+strings.Join(oldText, ", ")+"); END",
		"CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN "+
			"INSERT INTO records_fts(records_fts, rowid, "+strings.Join(quotedText, ", ")+") VALUES ('delete', old.rec_id, "+strings.Join(oldText, ", ")+"); "+
			"INSERT INTO records_fts(rowid, "+strings.Join(quotedText, ", ")+") VALUES (new.rec_id, "+strings.Join(newText, ", ")+"); END",
	)

	for _, f := range s.Fields {
		if f.Kind == KindID {
			stmts = append(stmts, fmt.Sprintf("CREATE INDEX idx_records_%s ON records(%s)", f.Name, quoteIdent(f.Name)))
		}
	}

	stmts = append(stmts, "CREATE TABLE collection_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)")
	return stmts
}
