package acl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// BaseAdapter carries the client and the name used in translated errors.
// Embed it in provider adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter panics if client is nil. The service name defaults to the client's.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	if client == nil {
		panic("acl: client is required")
	}

	if serviceName == "" {
		serviceName = client.ServiceName()
	}

	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// GetJSON performs a GET and decodes the reply into out.
// Failures are returned as domain errors.
func (a *BaseAdapter) GetJSON(ctx context.Context, path string, query url.Values, out any, operation string) error {
	return TranslateError(a.client.GetJSON(ctx, path, query, out), a.serviceName, operation)
}

// PostJSON posts in as JSON and decodes the reply into out.
// Failures are returned as domain errors.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, in, out any, operation string) error {
	return TranslateError(a.client.PostJSON(ctx, path, in, out), a.serviceName, operation)
}

// BearerAuth returns a clients.Config AuthFunc that sends key as a bearer token.
func BearerAuth(key string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}

// ValidateRequired returns a domain.ValidationError if value is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every item and fails on the first error.
// The result is never nil.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
