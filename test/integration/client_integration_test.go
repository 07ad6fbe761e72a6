//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// TestGeocoder_CircuitBreakerLifecycle walks the breaker from closed to open
// and back while the geocoder fails and then recovers.
func TestGeocoder_CircuitBreakerLifecycle(t *testing.T) {
	var calls int32
	var failing atomic.Bool
	failing.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)

		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"Porto","country":"Portugal"}]}`))
	}))
	defer server.Close()

	client := clientFor(t, "geocoding", server.URL, func(c *clients.Config) {
		c.Retry.MaxAttempts = 1
		c.Circuit.MaxFailures = 2
		c.Circuit.Timeout = 50 * time.Millisecond
	})
	geo := acl.NewGeocodingClient(client, quiet())
	health := client.HealthCheck()
	ctx := context.Background()

	for range 2 {
		_, err := geo.SearchLocations(ctx, "Porto", 10)
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
	}

	assert.Equal(t, clients.StateOpen, client.CircuitState())
	require.Error(t, health.Check(ctx))

	_, err := geo.SearchLocations(ctx, "Porto", 10)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "an open circuit must not reach the geocoder")

	failing.Store(false)
	time.Sleep(80 * time.Millisecond)

	locations, err := geo.SearchLocations(ctx, "Porto", 10)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Porto", locations[0].Name)
	assert.Equal(t, clients.StateClosed, client.CircuitState())
	assert.NoError(t, health.Check(ctx))
}

// TestOpenAI_RateLimitedThenAccepted verifies 429 replies are retried.
func TestOpenAI_RateLimitedThenAccepted(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatCompletion(ritualReply))
	}))
	defer server.Close()

	gen := acl.NewOpenAIClient(acl.OpenAIConfig{Client: clientFor(t, "openai", server.URL), Logger: quiet()})

	ritual, err := gen.GenerateRitual(context.Background(), "You are a ritual writer.")

	require.NoError(t, err)
	assert.Equal(t, "Golden Threshold", ritual.Ritual.Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// TestOpenAI_PersistentRateLimit verifies exhausted retries become Unavailable.
func TestOpenAI_PersistentRateLimit(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	gen := acl.NewOpenAIClient(acl.OpenAIConfig{Client: clientFor(t, "openai", server.URL), Logger: quiet()})

	_, err := gen.GenerateRitual(context.Background(), "You are a ritual writer.")

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

// TestOpenAI_MissingModelIsUnavailable verifies a 404 is treated as misconfiguration.
func TestOpenAI_MissingModelIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"The model 'gpt-0' does not exist","type":"invalid_request_error","code":"model_not_found"}}`))
	}))
	defer server.Close()

	gen := acl.NewOpenAIClient(acl.OpenAIConfig{
		Client:    clientFor(t, "openai", server.URL),
		ChatModel: "gpt-0",
		Logger:    quiet(),
	})

	_, err := gen.GenerateRitual(context.Background(), "You are a ritual writer.")

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.False(t, domain.IsNotFound(err))
}

// TestOpenAI_RequestsPerSecondSpacesCalls verifies the outbound limiter.
func TestOpenAI_RequestsPerSecondSpacesCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"url":"https://img.example/card.png"}]}`))
	}))
	defer server.Close()

	gen := acl.NewOpenAIClient(acl.OpenAIConfig{
		Client: clientFor(t, "openai", server.URL, func(c *clients.Config) {
			c.RequestsPerSecond = 10
		}),
		Logger: quiet(),
	})

	start := time.Now()

	// The bucket holds ten tokens; the next five wait roughly 100ms each.
	for range 15 {
		_, err := gen.GenerateImage(context.Background(), domain.ImageRequest{Prompt: "sigil"})
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}

// TestGeocoder_ContextCancelled verifies cancellation is not retried or translated.
func TestGeocoder_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	geo := acl.NewGeocodingClient(clientFor(t, "geocoding", server.URL), quiet())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := geo.SearchLocations(ctx, "Porto", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
