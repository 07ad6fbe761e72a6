package acl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/config"
)

// testConfig returns a single-attempt client config for baseURL.
func testConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "test-service",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *clients.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	return client
}

func statusErr(code int, body string) error {
	return fmt.Errorf("%w: %w", clients.ErrMaxRetriesExceeded, &clients.StatusError{StatusCode: code, Body: body})
}

// --- Error translation ---

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "openai", "generate ritual"))
}

func TestTranslateError_ClientErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"circuit open", clients.ErrCircuitOpen, "circuit breaker open during generate ritual"},
		{"retries exhausted", fmt.Errorf("%w: %w", clients.ErrMaxRetriesExceeded, errors.New("connection reset")), "max retries exceeded"},
		{"decode", fmt.Errorf("%w: unexpected EOF", clients.ErrDecode), "malformed response"},
		{"other", errors.New("dial tcp: refused"), "generate ritual failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateError(tt.err, "openai", "generate ritual")

			require.Error(t, err)
			assert.True(t, domain.IsUnavailable(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTranslateError_ContextPassesThrough(t *testing.T) {
	err := TranslateError(fmt.Errorf("%w: %w", clients.ErrMaxRetriesExceeded, context.Canceled), "openai", "generate image")

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsUnavailable(err))
}

func TestTranslateError_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected func(error) bool
	}{
		{http.StatusBadRequest, domain.IsValidation},
		{http.StatusUnprocessableEntity, domain.IsValidation},
		{http.StatusUnauthorized, domain.IsForbidden},
		{http.StatusForbidden, domain.IsForbidden},
		{http.StatusConflict, domain.IsConflict},
		{http.StatusNotFound, domain.IsUnavailable},
		{http.StatusTooManyRequests, domain.IsUnavailable},
		{http.StatusInternalServerError, domain.IsUnavailable},
		{http.StatusBadGateway, domain.IsUnavailable},
		{http.StatusServiceUnavailable, domain.IsUnavailable},
		{http.StatusTeapot, domain.IsValidation},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := TranslateError(statusErr(tt.status, ""), "openai", "generate ritual")

			require.Error(t, err)
			assert.True(t, tt.expected(err), "unexpected error type for status %d: %v", tt.status, err)
		})
	}
}

func TestTranslateError_UsesProviderMessage(t *testing.T) {
	body := `{"error":{"message":"Invalid value for 'size'","type":"invalid_request_error","param":"size","code":null}}`

	err := TranslateError(statusErr(http.StatusBadRequest, body), "openai", "generate image")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "size", ve.Field)
	assert.Equal(t, "Invalid value for 'size'", ve.Message)
}

func TestTranslateError_GeocoderReason(t *testing.T) {
	body := `{"error":true,"reason":"Parameter count must be between 1 and 100."}`

	err := TranslateError(statusErr(http.StatusBadRequest, body), "geocoding", "search locations")

	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "Parameter count must be between 1 and 100.")
}

func TestMapExternalCode(t *testing.T) {
	tests := []struct {
		code     string
		expected func(error) bool
	}{
		{ExternalCodeContentPolicy, domain.IsValidation},
		{ExternalCodeInvalidAPIKey, domain.IsForbidden},
		{ExternalCodeRateLimited, domain.IsUnavailable},
		{ExternalCodeInsufficientQuota, domain.IsUnavailable},
		{ExternalCodeModelNotFound, domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := MapExternalCode(tt.code, "test message", "", "openai", "generate ritual")
			require.Error(t, err)
			assert.True(t, tt.expected(err), "unexpected error type for code %s", tt.code)
		})
	}

	assert.NoError(t, MapExternalCode("server_error", "boom", "", "openai", "generate ritual"))
}

func TestMapExternalCode_ContentPolicyDefaultsToPrompt(t *testing.T) {
	err := MapExternalCode(ExternalCodeContentPolicy, "Your request was rejected", "", "openai", "generate image")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "prompt", ve.Field)
}

func TestTranslateError_CodeBeatsStatus(t *testing.T) {
	body := `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`

	// OpenAI reports an exhausted quota as 429 with a code; a bad key arrives as 401.
	assert.True(t, domain.IsUnavailable(TranslateError(statusErr(http.StatusTooManyRequests, body), "openai", "x")))

	body = `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`
	err := TranslateError(statusErr(http.StatusUnauthorized, body), "openai", "generate ritual")

	require.True(t, domain.IsForbidden(err))
	assert.NotContains(t, err.Error(), "Incorrect API key", "key hints are not surfaced")
}

// --- ParseErrorResponse ---

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
		code    string
		message string
	}{
		{name: "nested", body: `{"error":{"message":"bad","code":"invalid_api_key"}}`, code: "invalid_api_key", message: "bad"},
		{name: "type fallback", body: `{"error":{"message":"slow down","type":"rate_limit_exceeded"}}`, code: "rate_limit_exceeded", message: "slow down"},
		{name: "reason", body: `{"error":true,"reason":"No name"}`, message: "No name"},
		{name: "empty", body: "  ", wantNil: true},
		{name: "not json", body: "<html>bad gateway</html>", wantNil: true},
		{name: "no content", body: `{"error":{}}`, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ParseErrorResponse(tt.body)
			if tt.wantNil {
				assert.Nil(t, resp)
				return
			}

			require.NotNil(t, resp)
			assert.Equal(t, tt.code, resp.GetCode())
			assert.Equal(t, tt.message, resp.GetMessage())
		})
	}
}

// --- Translation helpers ---

func TestTranslateSlice_Success(t *testing.T) {
	got, err := TranslateSlice([]int{1, 2, 3}, func(n *int) (string, error) {
		return fmt.Sprint(*n * 2), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "6"}, got)
}

func TestTranslateSlice_Error(t *testing.T) {
	_, err := TranslateSlice([]string{"ok", ""}, func(s *string) (string, error) {
		return *s, ValidateRequired(*s, "name")
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "translating item 1")
}

func TestTranslateSlice_EmptyIsNotNil(t *testing.T) {
	got, err := TranslateSlice[int, int](nil, func(n *int) (int, error) { return *n, nil })

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateRequired(t *testing.T) {
	require.NoError(t, ValidateRequired("x", "name"))

	err := ValidateRequired("", "name")
	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "name")
}

// --- BaseAdapter ---

func TestNewBaseAdapter_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewBaseAdapter(nil, "x") })
}

func TestBaseAdapter_ServiceNameDefaultsToClient(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {})

	unnamed := NewBaseAdapter(client, "")
	assert.Equal(t, "test-service", unnamed.ServiceName())

	adapter := NewBaseAdapter(client, "renamed")
	assert.Equal(t, "renamed", adapter.ServiceName())
	assert.Same(t, client, adapter.Client())
}

func TestBaseAdapter_GetJSONTranslatesErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	adapter := NewBaseAdapter(client, "")

	var out map[string]any
	err := adapter.GetJSON(context.Background(), "/x", nil, &out, "get x")

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestBearerAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)

	BearerAuth("sk-test")(req)

	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
}
