package context

import (
	"errors"
	"fmt"
)

// ErrAlreadyCommitted is returned when trying to add actions or commit
// after the RequestContext has already been committed.
var ErrAlreadyCommitted = errors.New("request context already committed")

// CommitError reports the action that failed and any rollbacks that failed after it.
type CommitError struct {
	Action       string
	Err          error
	RollbackErrs []error
}

// Error implements the error interface.
func (e *CommitError) Error() string {
	msg := fmt.Sprintf("action %q failed: %v", e.Action, e.Err)
	if len(e.RollbackErrs) > 0 {
		msg += fmt.Sprintf(" (%d rollback(s) failed)", len(e.RollbackErrs))
	}

	return msg
}

// Unwrap returns the failing action's error.
func (e *CommitError) Unwrap() error {
	return e.Err
}
