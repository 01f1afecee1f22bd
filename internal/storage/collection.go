package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one stored record plus its relevance score when it came from a
// ranked match query.
type Document struct {
	Fields map[string]any
	Score  float64
}

// String returns the named field as a string, or "" if absent.
func (d Document) String(name string) string {
	if v, ok := d.Fields[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the named field as an int, or 0 if absent.
func (d Document) Int(name string) int {
	if v, ok := d.Fields[name].(int64); ok {
		return int(v)
	}
	return 0
}

// Collection wraps one physical persistent collection identified by its
// schema name within a vault's index directory. Each collection is its own
// SQLite database file.
type Collection struct {
	db     *sql.DB
	schema Schema
	path   string
}

// Open opens the named collection inside dir, creating and initializing it
// if it does not exist yet. The returned bool reports whether the collection
// was newly created. Open fails with ErrCorruptIndex if on-disk structures
// exist but do not match the declared schema.
func Open(dir string, schema Schema) (*Collection, bool, error) {
	path := filepath.Join(dir, schema.Name+".db")

	// A zero-byte file is indistinguishable from a fresh database to
	// SQLite, so treat it as one.
	existed := false
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		existed = true
	}

	db, err := openDatabase(path)
	if err != nil {
		if existed {
			return nil, false, fmt.Errorf("%w: collection %s is not a readable database: %v",
				ErrCorruptIndex, schema.Name, err)
		}
		return nil, false, fmt.Errorf("failed to open collection %s: %w", schema.Name, err)
	}

	c := &Collection{db: db, schema: schema, path: path}

	if !existed {
		if err := c.initialize(); err != nil {
			_ = db.Close()
			return nil, false, fmt.Errorf("failed to initialize collection %s: %w", schema.Name, ftsHint(err))
		}
		return c, true, nil
	}

	if err := c.verify(); err != nil {
		_ = db.Close()
		return nil, false, err
	}
	return c, false, nil
}

// initialize creates the schema tables and records the schema fingerprint.
func (c *Collection) initialize() error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range c.schema.createStatements() {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("ddl failed: %w", err)
		}
	}
	if _, err := tx.Exec(
		"INSERT INTO collection_meta (key, value) VALUES ('name', ?), ('schema', ?), ('version', '1')",
		c.schema.Name, c.schema.Fingerprint(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ftsHint annotates the failure mode of an SQLite build lacking the FTS5
// module. The driver compiles FTS5 in only under the fts5 build tag, and the
// raw error names the missing module without saying how to get it.
func ftsHint(err error) error {
	if err != nil && strings.Contains(err.Error(), "no such module: fts5") {
		return fmt.Errorf("%w (SQLite driver built without FTS5; rebuild with -tags fts5)", err)
	}
	return err
}

// verify compares the persisted schema fingerprint against the declared one.
func (c *Collection) verify() error {
	var stored string
	err := c.db.QueryRow("SELECT value FROM collection_meta WHERE key = 'schema'").Scan(&stored)
	if err != nil {
		return fmt.Errorf("%w: collection %s has no readable metadata", ErrCorruptIndex, c.schema.Name)
	}
	if stored != c.schema.Fingerprint() {
		return fmt.Errorf("%w: collection %s fingerprint mismatch", ErrCorruptIndex, c.schema.Name)
	}
	return nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.schema.Name
}

// Path returns the on-disk database path.
func (c *Collection) Path() string {
	return c.path
}

// Close closes the underlying database.
func (c *Collection) Close() error {
	return c.db.Close()
}

// Count returns the number of documents in the collection.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// DeleteByTerm removes every document whose field exactly equals value and
// returns the number removed. Zero matches is not an error.
func (c *Collection) DeleteByTerm(ctx context.Context, field, value string) (int64, error) {
	if _, ok := c.schema.Field(field); !ok {
		return 0, &SchemaViolationError{Collection: c.schema.Name, Unknown: []string{field}}
	}
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM records WHERE "+quoteIdent(field)+" = ?", value)
	if err != nil {
		return 0, fmt.Errorf("failed to delete by term %s: %w", field, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Match executes an FTS match expression against the collection and returns
// at most limit hits, best first. Ordering is bm25 with rowid as tiebreak,
// so it is deterministic for a fixed index state and query.
func (c *Collection) Match(ctx context.Context, match string, limit int) ([]Document, error) {
	if match == "" || limit <= 0 {
		return nil, nil
	}

	query := "SELECT " + prefixColumns(c.schema, "r.") + ", bm25(records_fts) " +
		"FROM records_fts JOIN records r ON r.rec_id = records_fts.rowid " +
		"WHERE records_fts MATCH ? ORDER BY bm25(records_fts), r.rec_id LIMIT ?"

	rows, err := c.db.QueryContext(ctx, query, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute match query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return c.scanDocuments(rows, true)
}

// FindByField returns every document whose field exactly equals any of the
// given values, in natural (insertion) order.
func (c *Collection) FindByField(ctx context.Context, field string, values []string) ([]Document, error) {
	if _, ok := c.schema.Field(field); !ok {
		return nil, &SchemaViolationError{Collection: c.schema.Name, Unknown: []string{field}}
	}
	if len(values) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	query := "SELECT " + c.schema.columnList() + " FROM records WHERE " +
		quoteIdent(field) + " IN (" + placeholders + ") ORDER BY rec_id"

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query by field %s: %w", field, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return c.scanDocuments(rows, false)
}

// ListAll returns every document in natural (insertion) order. The order is
// not semantically significant but is stable for a fixed index state.
func (c *Collection) ListAll(ctx context.Context) ([]Document, error) {
	query := "SELECT " + c.schema.columnList() + " FROM records ORDER BY rec_id"
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return c.scanDocuments(rows, false)
}

// scanDocuments scans declared columns (plus a trailing score column when
// scored is true) into Documents.
func (c *Collection) scanDocuments(rows *sql.Rows, scored bool) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		dest := make([]any, 0, len(c.schema.Fields)+1)
		strVals := make([]sql.NullString, len(c.schema.Fields))
		intVals := make([]sql.NullInt64, len(c.schema.Fields))
		for i, f := range c.schema.Fields {
			if f.Kind == KindInt {
				dest = append(dest, &intVals[i])
			} else {
				dest = append(dest, &strVals[i])
			}
		}
		var score float64
		if scored {
			dest = append(dest, &score)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		fields := make(map[string]any, len(c.schema.Fields))
		for i, f := range c.schema.Fields {
			if f.Kind == KindInt {
				fields[f.Name] = intVals[i].Int64
			} else {
				fields[f.Name] = strVals[i].String
			}
		}
		docs = append(docs, Document{Fields: fields, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// prefixColumns returns the schema's quoted column list with a table prefix.
func prefixColumns(s Schema, prefix string) string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = prefix + quoteIdent(f.Name)
	}
	return strings.Join(cols, ", ")
}
