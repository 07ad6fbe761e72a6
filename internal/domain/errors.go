// Package domain holds the ritual service's business types: quiz submissions,
// the zodiac tables, orders, payments and generated rituals.
//
// Errors here describe business failures only. Adapters decide how they
// surface: an HTTP status, a CLI exit code, a log line.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the entity's current state does not allow the operation.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates caller input broke a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the operation is switched off or not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrPaymentUnverified indicates a payment event failed signature verification.
	// It is also a validation error.
	ErrPaymentUnverified = errors.New("payment event not verified")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error for entity id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError is a generic state conflict, e.g. a concurrent fulfilment run
// or an upstream resource that already exists.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// OrderStateError reports an operation the order's status does not allow,
// such as fulfilling an order that has not been paid.
type OrderStateError struct {
	OrderID   string
	Status    OrderStatus
	Operation string
}

func (e *OrderStateError) Error() string {
	return fmt.Sprintf("cannot %s order %q: order is %s", e.Operation, e.OrderID, e.Status)
}

func (e *OrderStateError) Unwrap() error {
	return ErrConflict
}

// NewOrderStateError creates an order state conflict.
func NewOrderStateError(orderID string, status OrderStatus, operation string) error {
	return &OrderStateError{OrderID: orderID, Status: status, Operation: operation}
}

// ValidationError names the offending field, using its JSON name where there is one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PaymentVerificationError is a payment event whose signature or timestamp was rejected.
type PaymentVerificationError struct {
	Reason string
}

func (e *PaymentVerificationError) Error() string {
	return "payment event not verified: " + e.Reason
}

// Unwrap matches both ErrPaymentUnverified and ErrValidation.
func (e *PaymentVerificationError) Unwrap() []error {
	return []error{ErrPaymentUnverified, ErrValidation}
}

// NewPaymentVerificationError creates a verification failure.
func NewPaymentVerificationError(reason string) error {
	return &PaymentVerificationError{Reason: reason}
}

// ForbiddenError names the refused operation.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError names the dependency that failed: openai, stripe, dynamodb and so on.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a conflict, including order state conflicts.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err is a validation error, including unverified payments.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsUnavailable reports whether err is an unavailable error.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsPaymentUnverified reports whether err is a rejected payment event.
func IsPaymentUnverified(err error) bool { return errors.Is(err, ErrPaymentUnverified) }
