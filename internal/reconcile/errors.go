package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrSyncInProgress rejects a remote round-trip while another one is pending.
	ErrSyncInProgress = errors.New("a remote sync is already in progress")
	ErrNothingToSync  = errors.New("no staged orders to sync")
	ErrNotStaged      = errors.New("order is not staged")
)

type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

func NewValidationError(format string, args ...any) error {
	return ValidationError{message: fmt.Sprintf(format, args...)}
}

// IsValidation tells admission failures apart from infrastructure ones.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// SyncError reports a failed bulk write. Staged orders are left as they were,
// so the same batch can be retried.
type SyncError struct {
	Action  string
	Records int
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s of %d records failed: %v", e.Action, e.Records, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// LoadError reports a failed fetch of the remote snapshot. The in-memory state
// from before the fetch is kept.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load remote snapshot: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
