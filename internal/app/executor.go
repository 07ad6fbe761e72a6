package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/telemetry"
)

// Operations that change durable state run as Validate → Perform → Verify → Archive → Respond.
// Nothing is persisted until the performed result has been verified, so a failed
// generation or render never leaves a half-written order behind.

// ExecutionStep represents a step in the transactional pattern.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// FailureObserver is told about every failed step. Metrics implement it.
type FailureObserver interface {
	OperationFailed(operation, step string)
}

// Executor runs operations using the transactional pattern.
type Executor struct {
	logger   *slog.Logger
	observer FailureObserver
}

// NewExecutor creates a new executor. observer may be nil.
func NewExecutor(logger *slog.Logger, observer FailureObserver) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger, observer: observer}
}

// Operation defines the functions for each step of the transactional pattern.
// Nil steps are skipped.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation in logs, spans and metrics.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)

	// Verify must check the performed value independently; Perform's success is not proof.
	Verify  func(ctx context.Context, input I, performed P) (V, error)
	Archive func(ctx context.Context, input I, verified V) error
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs an operation through the full transactional pattern inside one span.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (result O, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, op.Name)
	defer span.End()

	logger := logging.FromContext(ctx)
	if logger == slog.Default() {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	defer func() {
		if err == nil {
			logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

			return
		}

		step, _ := GetExecutionStep(err)
		span.SetAttributes(attribute.String("operation.failed_step", string(step)))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(step))

		if exec.observer != nil {
			exec.observer.OperationFailed(op.Name, string(step))
		}
	}()

	if op.Validate != nil {
		if verr := op.Validate(ctx, input); verr != nil {
			logger.WarnContext(ctx, "validation failed", slog.Any("error", verr))

			return result, stepError(StepValidate, "input validation failed", verr)
		}
	}

	var performed P

	if op.Perform != nil {
		logger.DebugContext(ctx, "performing operation")

		performed, err = op.Perform(ctx, input)
		if err != nil {
			logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))

			return result, stepError(StepPerform, "operation failed", err)
		}
	}

	var verified V

	if op.Verify != nil {
		verified, err = op.Verify(ctx, input, performed)
		if err != nil {
			logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))

			return result, stepError(StepVerify, "verification failed", err)
		}
	}

	if op.Archive != nil {
		logger.DebugContext(ctx, "archiving state")

		if err = op.Archive(ctx, input, verified); err != nil {
			logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))

			return result, stepError(StepArchive, "state persistence failed", err)
		}
	}

	if op.Respond != nil {
		result, err = op.Respond(ctx, input, verified)
		if err != nil {
			logger.WarnContext(ctx, "respond formatting failed", slog.Any("error", err))

			return result, stepError(StepRespond, "response failed", err)
		}
	}

	return result, nil
}

// IsExecutionError checks if an error occurred during execution.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
