package context

import (
	"context"
	"fmt"
)

// Provider is a typed, keyed data source whose result is memoized per RequestContext.
type Provider[T any] interface {
	Key() string
	Fetch(ctx context.Context) (T, error)
}

// Load returns the provider's value, fetching it at most once per RequestContext.
func Load[T any](rc *RequestContext, p Provider[T]) (T, error) {
	var zero T

	v, err := rc.GetOrFetch(p.Key(), func(ctx context.Context) (any, error) {
		return p.Fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached %q is %T, not the requested type", p.Key(), v)
	}

	return typed, nil
}
