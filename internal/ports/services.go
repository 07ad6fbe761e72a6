// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for anything that does I/O
//   - Return domain types, never SDK or wire types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// OrderRepository persists paid ritual orders.
type OrderRepository interface {
	// Get returns domain.ErrNotFound if the order does not exist.
	Get(ctx context.Context, id string) (*domain.Order, error)

	// Save creates or replaces the order.
	Save(ctx context.Context, order *domain.Order) error
}

// ResultRepository persists generated rituals.
type ResultRepository interface {
	// Save stores the result, assigning an ID when empty, and returns the ID.
	Save(ctx context.Context, result *domain.Result) (string, error)

	// Get returns domain.ErrNotFound if the result does not exist.
	Get(ctx context.Context, id string) (*domain.Result, error)

	// Delete removes a result. Missing results are not an error.
	Delete(ctx context.Context, id string) error
}

// ContentGenerator produces ritual text and illustrations.
type ContentGenerator interface {
	// GenerateRitual sends the system prompt and decodes the structured reply.
	GenerateRitual(ctx context.Context, prompt string) (*domain.Ritual, error)

	// GenerateImage returns the URL of one generated image.
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
}

// PaymentGateway opens checkout sessions and verifies webhook deliveries.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutSession, error)

	// ParseWebhook verifies the signature header against the raw payload.
	// Returns a domain.ValidationError when verification fails.
	ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error)
}

// ArtifactStore holds rendered documents.
type ArtifactStore interface {
	// Put uploads body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Mailer delivers finished rituals.
type Mailer interface {
	SendRitual(ctx context.Context, delivery *domain.RitualDelivery) error
}

// DocumentRenderer lays a ritual out as a PDF.
type DocumentRenderer interface {
	RenderRitual(ritual *domain.Ritual) ([]byte, error)
}

// LocationClient searches place names for the quiz form.
type LocationClient interface {
	SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error)
}

// Cache defines the contract for caching operations.
type Cache interface {
	// Get returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete does not return an error if the key does not exist.
	Delete(ctx context.Context, key string) error
}

// EventDeduplicator remembers processed webhook event IDs.
type EventDeduplicator interface {
	// FirstSeen atomically records id and reports whether it was new.
	FirstSeen(ctx context.Context, id string) (bool, error)

	// Forget drops id so a failed event can be redelivered.
	Forget(ctx context.Context, id string) error
}

// OrderLocker keeps two fulfilment runs of one order from overlapping.
type OrderLocker interface {
	// Lock takes a lease on orderID for ttl. ok is false while another run holds it.
	Lock(ctx context.Context, orderID string, ttl time.Duration) (token string, ok bool, err error)

	// Unlock releases the lease if token still owns it.
	Unlock(ctx context.Context, orderID, token string) error
}

// FulfilmentQueue hands paid orders to background workers.
type FulfilmentQueue interface {
	// Enqueue returns domain.ErrUnavailable when the queue is full or closed.
	Enqueue(ctx context.Context, orderID string) error
}

// Clock abstracts time.Now for deterministic prompts and timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
