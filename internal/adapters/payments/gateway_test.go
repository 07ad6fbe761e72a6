package payments

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const (
	testSecretKey     = "sk_test_ritual"
	testWebhookSecret = "whsec_ritual"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	cfg := Config{
		SecretKey:     testSecretKey,
		WebhookSecret: testWebhookSecret,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		cfg.Backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(srv.URL),
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		})
	}

	g, err := NewGateway(cfg)
	require.NoError(t, err)

	return g
}

func sign(t *testing.T, payload []byte) string {
	t.Helper()

	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	}).Header
}

func TestNewGateway_RequiresSecrets(t *testing.T) {
	_, err := NewGateway(Config{WebhookSecret: testWebhookSecret})
	require.Error(t, err)

	_, err = NewGateway(Config{SecretKey: testSecretKey})
	require.Error(t, err)
}

func TestGateway_CreateCheckoutSession(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer "+testSecretKey, r.Header.Get("Authorization"))
		assert.Equal(t, "checkout-order-1", r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "Custom Prosperity Ritual", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, domain.ProductDescription, r.PostForm.Get("line_items[0][price_data][product_data][description]"))
		assert.Equal(t, "999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "https://rituals.example/success/{CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://rituals.example", r.PostForm.Get("cancel_url"))
		assert.Equal(t, "luna@example.com", r.PostForm.Get("customer_email"))
		assert.Equal(t, "order-1", r.PostForm.Get("client_reference_id"))
		assert.Equal(t, "order-1", r.PostForm.Get("metadata[orderId]"))
		assert.Equal(t, "true", r.PostForm.Get("metadata[marketingOptIn]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	})

	got, err := g.CreateCheckoutSession(context.Background(), &domain.CheckoutRequest{
		OrderID:        "order-1",
		Email:          "luna@example.com",
		ProductName:    domain.ProductName(domain.SpellProsperity),
		Description:    domain.ProductDescription,
		UnitAmount:     999,
		Currency:       "usd",
		SuccessURL:     "https://rituals.example/success/{CHECKOUT_SESSION_ID}",
		CancelURL:      "https://rituals.example",
		MarketingOptIn: true,
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, got)
}

func TestGateway_CreateCheckoutSession_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected func(error) bool
	}{
		{
			name:     "invalid param",
			status:   http.StatusBadRequest,
			body:     `{"error":{"type":"invalid_request_error","param":"customer_email","message":"Invalid email address: nope"}}`,
			expected: domain.IsValidation,
		},
		{
			name:     "bad key",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`,
			expected: domain.IsUnavailable,
		},
		{
			name:     "outage",
			status:   http.StatusInternalServerError,
			body:     `{"error":{"type":"api_error","message":"Something went wrong"}}`,
			expected: domain.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := g.CreateCheckoutSession(context.Background(), &domain.CheckoutRequest{OrderID: "order-1", Currency: "usd"})

			require.Error(t, err)
			assert.True(t, tt.expected(err), "unexpected error: %v", err)
		})
	}
}

func checkoutCompleted(t *testing.T, object map[string]any) []byte {
	t.Helper()

	return checkoutEvent(t, "evt_1", domain.PaymentEventCheckoutCompleted, object)
}

func checkoutEvent(t *testing.T, id string, eventType domain.PaymentEventType, object map[string]any) []byte {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":     id,
		"object": "event",
		"type":   string(eventType),
		"data":   map[string]any{"object": object},
	})
	require.NoError(t, err)

	return payload
}

func TestGateway_ParseWebhook_CheckoutCompleted(t *testing.T) {
	g := newTestGateway(t, nil)

	payload := checkoutCompleted(t, map[string]any{
		"id":                  "cs_test_1",
		"object":              "checkout.session",
		"client_reference_id": "order-1",
		"customer_email":      "luna@example.com",
		"amount_total":        999,
		"currency":            "usd",
		"payment_status":      "paid",
		"metadata":            map[string]string{"orderId": "order-1", "marketingOptIn": "false"},
	})

	event, err := g.ParseWebhook(payload, sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, domain.PaymentEventCheckoutCompleted, event.Type)
	assert.Equal(t, &domain.Payment{
		EventID:       "evt_1",
		SessionID:     "cs_test_1",
		OrderID:       "order-1",
		Email:         "luna@example.com",
		AmountTotal:   999,
		Currency:      "usd",
		PaymentStatus: "paid",
		Metadata:      map[string]string{"orderId": "order-1", "marketingOptIn": "false"},
	}, event.Payment)
}

func TestGateway_ParseWebhook_Fallbacks(t *testing.T) {
	g := newTestGateway(t, nil)

	payload := checkoutCompleted(t, map[string]any{
		"id":               "cs_test_2",
		"object":           "checkout.session",
		"customer_details": map[string]any{"email": "sol@example.com"},
		"payment_status":   "paid",
		"metadata":         map[string]string{"orderId": "order-2"},
	})

	event, err := g.ParseWebhook(payload, sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, "order-2", event.Payment.OrderID)
	assert.Equal(t, "sol@example.com", event.Payment.Email)
}

func TestGateway_ParseWebhook_OtherEvent(t *testing.T) {
	g := newTestGateway(t, nil)

	payload := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1"}}}`)

	event, err := g.ParseWebhook(payload, sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentEventOther, event.Type)
	assert.Equal(t, "payment_intent.created", event.RawType)
	assert.Nil(t, event.Payment)
}

func TestGateway_ParseWebhook_BadSignature(t *testing.T) {
	g := newTestGateway(t, nil)

	payload := checkoutCompleted(t, map[string]any{"id": "cs_test_1"})

	tests := map[string]string{
		"missing":  "",
		"garbage":  "t=1,v1=deadbeef",
		"tampered": sign(t, []byte(`{"id":"evt_other"}`)),
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := g.ParseWebhook(payload, header)

			assert.True(t, domain.IsPaymentUnverified(err), "unexpected error: %v", err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestGateway_ParseWebhook_DelayedPayment(t *testing.T) {
	g := newTestGateway(t, nil)

	session := map[string]any{
		"id":                  "cs_test_3",
		"object":              "checkout.session",
		"client_reference_id": "order-3",
		"amount_total":        999,
		"currency":            "usd",
		"payment_status":      "unpaid",
	}

	completed := checkoutCompleted(t, session)

	event, err := g.ParseWebhook(completed, sign(t, completed))

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentEventCheckoutCompleted, event.Type)
	assert.Equal(t, domain.PaymentStatusUnpaid, event.Payment.PaymentStatus)
	assert.False(t, event.Payment.Settled())

	session["payment_status"] = "paid"
	succeeded := checkoutEvent(t, "evt_3", domain.PaymentEventAsyncPaymentSucceeded, session)

	event, err = g.ParseWebhook(succeeded, sign(t, succeeded))

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentEventAsyncPaymentSucceeded, event.Type)
	assert.Equal(t, "order-3", event.Payment.OrderID)
	assert.True(t, event.Payment.Settled())
}
