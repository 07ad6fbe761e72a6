// Package featureflags serves feature flags from the loaded configuration.
package featureflags

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// Static implements ports.FeatureFlags over the `features` config map.
//
// Values set through APP_FEATURES_* environment variables arrive as strings,
// so every getter also accepts the string form of its type.
type Static struct {
	flags map[string]any
}

// NewStatic copies flags so later config mutation cannot leak in.
func NewStatic(flags map[string]any) *Static {
	m := make(map[string]any, len(flags))
	for k, v := range flags {
		m[strings.ToLower(k)] = v
	}

	return &Static{flags: m}
}

func (s *Static) lookup(flag string) (any, bool) {
	v, ok := s.flags[strings.ToLower(flag)]

	return v, ok && v != nil
}

// IsEnabled returns the boolean value of flag.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return defaultValue
		}

		return parsed
	default:
		return defaultValue
	}
}

// GetString returns the string value of flag.
func (s *Static) GetString(_ context.Context, flag, defaultValue string) string {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	if str, isStr := v.(string); isStr {
		return str
	}

	return defaultValue
}

// GetInt returns the integer value of flag.
func (s *Static) GetInt(_ context.Context, flag string, defaultValue int) int {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}

	return defaultValue
}

// GetFloat returns the floating point value of flag.
func (s *Static) GetFloat(_ context.Context, flag string, defaultValue float64) float64 {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}

	return defaultValue
}

// GetJSON decodes flag into target. Maps from YAML are re-encoded first;
// strings are decoded as JSON documents.
func (s *Static) GetJSON(_ context.Context, flag string, target any) error {
	v, ok := s.lookup(flag)
	if !ok {
		return domain.NewNotFoundError("feature flag", flag)
	}

	var raw []byte

	if str, isStr := v.(string); isStr {
		raw = []byte(str)
	} else {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding flag %s: %w", flag, err)
		}

		raw = encoded
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding flag %s: %w", flag, err)
	}

	return nil
}
