package merge

import (
	"errors"
	"fmt"
)

// ErrUsage marks operator input that could not be interpreted; callers re-prompt.
var ErrUsage = errors.New("unusable input")

func usageError(format string, values ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, values...))
}

// PreconditionError reports a merge pair that could not even be started. Nothing was changed on disk.
type PreconditionError struct {
	Path   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot merge %s: %s", e.Path, e.Reason)
}

// HalfMergedError reports a source whose contents were copied but which could not be removed completely afterwards.
// The destination is complete, the source is left partially deleted.
type HalfMergedError struct {
	Source      string
	Destination string
	cause       error
}

func (e *HalfMergedError) Error() string {
	return fmt.Sprintf("%s was copied into %s but could not be fully removed: %s", e.Source, e.Destination, e.cause)
}

func (e *HalfMergedError) Unwrap() error {
	return e.cause
}
