package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCorruptIndex is returned when on-disk structures exist but do not
	// match the expected schema version/layout. The vault is unusable until
	// rebuilt.
	ErrCorruptIndex = errors.New("corrupt index: on-disk schema does not match")
)

// SchemaViolationError is returned when a write uses field names outside the
// collection's declared schema. The write is rejected before any on-disk
// mutation.
type SchemaViolationError struct {
	Collection string
	Unknown    []string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in collection %s: unknown fields %s",
		e.Collection, strings.Join(e.Unknown, ", "))
}
