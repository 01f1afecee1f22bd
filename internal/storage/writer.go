package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Writer is a scoped write session. Every document added through one Writer
// becomes visible atomically on Commit; Close before Commit rolls the whole
// session back. There are no implicit partial commits.
type Writer struct {
	tx     *sql.Tx
	schema Schema
	insert string
	done   bool
}

// Writer opens a new scoped write session on the collection.
func (c *Collection) Writer(ctx context.Context) (*Writer, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin writer session: %w", err)
	}
	return &Writer{
		tx:     tx,
		schema: c.schema,
		insert: buildInsert(c.schema),
	}, nil
}

// buildInsert prepares the INSERT statement covering every declared column.
func buildInsert(s Schema) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.Fields)), ", ")
	return "INSERT INTO records (" + s.columnList() + ") VALUES (" + placeholders + ")"
}

// Add validates the field names against the collection schema and stages one
// document. Validation failures reject the document before any mutation;
// absent declared fields default to the empty string (or 0 for numeric
// fields) so stored records never carry missing values.
func (w *Writer) Add(fields map[string]any) error {
	if w.done {
		return fmt.Errorf("writer session already closed")
	}
	if err := w.schema.validateFields(fields); err != nil {
		return err
	}

	args := make([]any, len(w.schema.Fields))
	for i, f := range w.schema.Fields {
		v, ok := fields[f.Name]
		if !ok {
			if f.Kind == KindInt {
				args[i] = int64(0)
			} else {
				args[i] = ""
			}
			continue
		}
		arg, err := coerceValue(f, v)
		if err != nil {
			return fmt.Errorf("collection %s: %w", w.schema.Name, err)
		}
		args[i] = arg
	}

	if _, err := w.tx.Exec(w.insert, args...); err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}

// DeleteByTerm removes, within this session, every document whose field
// exactly equals value. The deletions commit or roll back together with the
// session's additions.
func (w *Writer) DeleteByTerm(field, value string) (int64, error) {
	if w.done {
		return 0, fmt.Errorf("writer session already closed")
	}
	if _, ok := w.schema.Field(field); !ok {
		return 0, &SchemaViolationError{Collection: w.schema.Name, Unknown: []string{field}}
	}
	res, err := w.tx.Exec("DELETE FROM records WHERE "+quoteIdent(field)+" = ?", value)
	if err != nil {
		return 0, fmt.Errorf("failed to delete by term %s: %w", field, err)
	}
	return res.RowsAffected()
}

// Commit makes every staged document visible atomically.
func (w *Writer) Commit() error {
	if w.done {
		return fmt.Errorf("writer session already closed")
	}
	w.done = true
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit writer session: %w", err)
	}
	return nil
}

// Close rolls the session back if it has not committed. It is safe to defer
// unconditionally; after a successful Commit it is a no-op.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	if err := w.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back writer session: %w", err)
	}
	return nil
}

// coerceValue converts a caller-supplied value into the driver type for the
// field, rejecting mismatched types before they reach the database.
func coerceValue(f Field, v any) (any, error) {
	switch f.Kind {
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		default:
			return nil, fmt.Errorf("field %s expects an integer, got %T", f.Name, v)
		}
	default:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field %s expects a string, got %T", f.Name, v)
		}
		return s, nil
	}
}
