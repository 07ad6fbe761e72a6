package ports

import (
	"context"
)

// Feature flag names.
const (
	// FlagDirectSubmit exposes the unpaid submit endpoint that generates inline.
	FlagDirectSubmit = "direct_submit"

	// FlagSigilImages gates sigil generation independently of tarot art.
	FlagSigilImages = "sigil_images"
)

// FeatureFlags defines the contract for feature flag evaluation.
// Every getter returns defaultValue when the flag is missing or of the wrong type.
//
//	if flags.IsEnabled(ctx, ports.FlagDirectSubmit, false) {
//	    return s.rituals.Submit(ctx, sub)
//	}
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
	GetString(ctx context.Context, flag string, defaultValue string) string
	GetInt(ctx context.Context, flag string, defaultValue int) int
	GetFloat(ctx context.Context, flag string, defaultValue float64) float64

	// GetJSON decodes a structured flag into target.
	// Returns domain.ErrNotFound when the flag is absent.
	GetJSON(ctx context.Context, flag string, target any) error
}
