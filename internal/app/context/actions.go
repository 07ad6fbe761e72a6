package context

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
)

// Action represents a staged write operation.
type Action interface {
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute where possible.
	Rollback(ctx context.Context) error

	// Description names the action in logs and errors.
	Description() string
}

// stepAction adapts a pair of functions to Action.
type stepAction struct {
	description string
	do          func(ctx context.Context) error
	undo        func(ctx context.Context) error
}

// Step builds an Action from functions. undo may be nil for irreversible steps.
func Step(description string, do, undo func(ctx context.Context) error) Action {
	return &stepAction{description: description, do: do, undo: undo}
}

func (a *stepAction) Execute(ctx context.Context) error { return a.do(ctx) }

func (a *stepAction) Rollback(ctx context.Context) error {
	if a.undo == nil {
		return nil
	}

	return a.undo(ctx)
}

func (a *stepAction) Description() string { return a.description }

// AddAction stages an action for later execution.
func (rc *RequestContext) AddAction(action Action) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	rc.actions = append(rc.actions, action)

	return nil
}

// Commit executes all staged actions in order.
// On failure, executed actions are rolled back in reverse order and a *CommitError is returned.
// Rollbacks run on a context detached from ctx's cancellation so a timeout does not skip them.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	logger := logging.FromContext(ctx)

	for i, action := range rc.actions {
		err := action.Execute(ctx)
		if err == nil {
			continue
		}

		cerr := &CommitError{Action: action.Description(), Err: err}
		undoCtx := context.WithoutCancel(ctx)

		for j := i - 1; j >= 0; j-- {
			if rerr := rc.actions[j].Rollback(undoCtx); rerr != nil {
				logger.ErrorContext(ctx, "rollback failed",
					slog.String("action", rc.actions[j].Description()),
					slog.Any("error", rerr),
				)

				cerr.RollbackErrs = append(cerr.RollbackErrs, rerr)
			}
		}

		return cerr
	}

	rc.committed = true

	return nil
}

// Actions returns a copy of staged actions.
func (rc *RequestContext) Actions() []Action {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	result := make([]Action, len(rc.actions))
	copy(result, rc.actions)

	return result
}
