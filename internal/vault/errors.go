package vault

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrVaultNotFound is returned when the vault root does not exist or is
	// not a directory. Fatal to the session.
	ErrVaultNotFound = errors.New("vault directory does not exist")
	// ErrClosed is returned for any operation on a closed or nuked vault.
	ErrClosed = errors.New("vault is closed")
	// ErrInvalidType is returned when a record names a PDF type outside the
	// fixed set.
	ErrInvalidType = errors.New("invalid pdf type")
)

// DanglingReferenceError reports page hits whose file_id no longer matches
// any FileRecord. The orphaned hits are filtered from the result slice; the
// caller decides whether to surface or ignore the error.
type DanglingReferenceError struct {
	FileIDs []string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: no file record for id(s) %s",
		strings.Join(e.FileIDs, ", "))
}

// ValidationError reports a rejected coordinator input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
