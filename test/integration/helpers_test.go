//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/cache"
	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/ritual-service/internal/adapters/featureflags"
	httpadapter "github.com/jsamuelsen/ritual-service/internal/adapters/http"
	"github.com/jsamuelsen/ritual-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/config"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const ritualReply = `{
  "nameMeaning": {"overallVibe": "The luminous wanderer"},
  "ritual": {
    "title": "Golden Threshold",
    "paragraph": "Light a green candle at dusk and name what you are ready to receive.",
    "mantra": "I open the door to abundance",
    "physicalAction": "Place a coin on the windowsill."
  },
  "tarot": {
    "card1": {"name": "The Star", "position": "Upright", "meaning": "Hope.", "role": "Current Energy"},
    "card2": {"name": "Ace of Pentacles", "position": "Upright", "meaning": "New wealth.", "role": "Future Potential"}
  },
  "soulCity": {"city": "Kyoto", "country": "Japan", "energyType": "healing"}
}`

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// clientFor builds a downstream client with fast retries.
func clientFor(t *testing.T, name, baseURL string, mutate ...func(*clients.Config)) *clients.Client {
	t.Helper()

	cfg := &clients.Config{
		ServiceName: name,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: quiet(),
	}

	for _, m := range mutate {
		m(cfg)
	}

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return client
}

// chatCompletion wraps content the way the chat completions API does.
func chatCompletion(content string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"id": "chatcmpl-it",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	})

	return raw
}

// memoryResults is an in-process ports.ResultRepository.
type memoryResults struct {
	mu    sync.Mutex
	items map[string]*domain.Result
}

func newMemoryResults() *memoryResults {
	return &memoryResults{items: map[string]*domain.Result{}}
}

func (m *memoryResults) Save(_ context.Context, r *domain.Result) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	stored := *r
	m.items[r.ID] = &stored

	return r.ID, nil
}

func (m *memoryResults) Get(_ context.Context, id string) (*domain.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("result", id)
	}

	return r, nil
}

func (m *memoryResults) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)

	return nil
}

var _ ports.ResultRepository = (*memoryResults)(nil)

// stack is the service wired over stub upstreams, a real Redis protocol
// server and in-memory storage.
type stack struct {
	engine  *gin.Engine
	rituals *app.RitualService
	results *memoryResults
	redis   *miniredis.Miniredis
}

func newStack(t *testing.T, openAI, geocoding http.Handler) *stack {
	t.Helper()

	openAISrv := httptest.NewServer(openAI)
	t.Cleanup(openAISrv.Close)

	geoSrv := httptest.NewServer(geocoding)
	t.Cleanup(geoSrv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	prompts, err := app.NewPromptBuilder(ports.SystemClock{})
	require.NoError(t, err)

	results := newMemoryResults()

	rituals := app.NewRitualService(app.RitualServiceConfig{
		Prompts: prompts,
		Generator: acl.NewOpenAIClient(acl.OpenAIConfig{
			Client: clientFor(t, "openai", openAISrv.URL, func(c *clients.Config) {
				c.AuthFunc = acl.BearerAuth("sk-integration")
			}),
			Logger: quiet(),
		}),
		Results: results,
		Flags:   featureflags.NewStatic(map[string]any{ports.FlagDirectSubmit: true}),
		Logger:  quiet(),
	})

	locations := app.NewLocationService(
		acl.NewGeocodingClient(clientFor(t, "geocoding", geoSrv.URL), quiet()),
		cache.NewCache(rdb),
		time.Hour,
		nil,
		quiet(),
	)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(cache.NewCache(rdb)))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName: "ritual-service-it",
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("it", "none", "now"), nil),
		Rituals:     handlers.NewRitualHandler(rituals),
		Reference:   handlers.NewReferenceHandler(locations),
		Timeout:     10 * time.Second,
	})

	return &stack{engine: engine, rituals: rituals, results: results, redis: mr}
}

func (s *stack) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	req.RemoteAddr = "198.51.100.20:40000"

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	return w
}

const quizBody = `{
  "name": "Luna",
  "email": "luna@example.com",
  "dob": "1990-08-15",
  "birthPlace": "Lisbon, Portugal",
  "intention": "Attract abundance into my studio",
  "spellType": "Prosperity",
  "aesthetic": "No image",
  "termsAccepted": true
}`
