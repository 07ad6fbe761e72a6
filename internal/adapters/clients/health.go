package clients

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck reports a downstream's circuit as an optional readiness check.
// An open circuit degrades readiness without taking the service out of rotation:
// checkout and read models keep working while generation is unavailable.
type HealthCheck struct {
	client *Client
}

// HealthCheck returns the readiness check for this client.
func (c *Client) HealthCheck() *HealthCheck {
	return &HealthCheck{client: c}
}

// Name implements ports.HealthChecker.
func (h *HealthCheck) Name() string { return h.client.serviceName }

// Optional implements ports.OptionalChecker.
func (h *HealthCheck) Optional() bool { return true }

// Check fails while the circuit is open.
func (h *HealthCheck) Check(context.Context) error {
	if h.client.cb.State() != StateOpen {
		return nil
	}

	return fmt.Errorf("%w: retry in %s", ErrCircuitOpen, h.client.cb.RetryAfter().Round(time.Second))
}
