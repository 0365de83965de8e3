// Package apperr defines the error taxonomy shared by the scanner, the graph
// pipeline and the outer surfaces.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound reports a vault root that does not exist or cannot be read.
	ErrInputNotFound = errors.New("input not found")
	// ErrDocumentRead reports a document that cannot be read or decoded as text.
	ErrDocumentRead = errors.New("document read failure")
	// ErrDuplicateIdentity reports two documents normalising to one identity.
	ErrDuplicateIdentity = errors.New("duplicate identity")
	ErrNotFound          = errors.New("not found")
)

// PathError ties a sentinel error to the vault path that triggered it.
type PathError struct {
	Kind error
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Is matches the sentinel kind so callers can use errors.Is(err, ErrDocumentRead).
func (e *PathError) Is(target error) bool {
	return target == e.Kind
}

func (e *PathError) Unwrap() error {
	return e.Err
}
