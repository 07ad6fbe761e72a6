// Package payments adapts Stripe Checkout to ports.PaymentGateway.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const (
	serviceName = "stripe"

	// Metadata keys written on every checkout session.
	MetadataOrderID        = "orderId"
	MetadataMarketingOptIn = "marketingOptIn"
)

// Config configures the Stripe gateway.
type Config struct {
	SecretKey     string
	WebhookSecret string

	// Backend overrides the Stripe API backend. Tests point it at httptest.
	Backend stripe.Backend

	Logger *slog.Logger
}

// Gateway implements ports.PaymentGateway with stripe-go.
type Gateway struct {
	sessions      session.Client
	webhookSecret string
	logger        *slog.Logger
}

// NewGateway returns an error if either secret is missing.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("payments: secret key is required")
	}

	if cfg.WebhookSecret == "" {
		return nil, errors.New("payments: webhook secret is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "payments.Gateway"))

	backend := cfg.Backend
	if backend == nil {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			LeveledLogger:     &leveledLogger{logger: logger},
			MaxNetworkRetries: stripe.Int64(2),
		})
	}

	return &Gateway{
		sessions:      session.Client{B: backend, Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}, nil
}

// CreateCheckoutSession opens a one-item hosted checkout page.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.OrderID),
	}
	params.Context = ctx
	params.AddMetadata(MetadataMarketingOptIn, strconv.FormatBool(req.MarketingOptIn))
	params.AddMetadata(MetadataOrderID, req.OrderID)
	params.SetIdempotencyKey("checkout-" + req.OrderID)

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, translateError(err, "create checkout session")
	}

	g.logger.DebugContext(ctx, "checkout session created", slog.String("session_id", s.ID))

	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// A rejected signature is a domain.PaymentVerificationError; a malformed
// payload is a validation error.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, domain.NewPaymentVerificationError(err.Error())
	}

	out := &domain.PaymentEvent{
		ID:      event.ID,
		Type:    domain.PaymentEventOther,
		RawType: string(event.Type),
	}

	eventType := domain.PaymentEventType(event.Type)
	if !eventType.CarriesPayment() {
		return out, nil
	}

	if event.Data == nil {
		return nil, domain.NewValidationError("data", "event has no payload")
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, domain.NewValidationError("data.object", fmt.Sprintf("decoding checkout session: %v", err))
	}

	out.Type = eventType
	out.Payment = translateSession(event.ID, &s)

	return out, nil
}

func translateSession(eventID string, s *stripe.CheckoutSession) *domain.Payment {
	p := &domain.Payment{
		EventID:       eventID,
		SessionID:     s.ID,
		OrderID:       s.ClientReferenceID,
		Email:         s.CustomerEmail,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}

	if p.OrderID == "" {
		p.OrderID = s.Metadata[MetadataOrderID]
	}

	if p.Email == "" && s.CustomerDetails != nil {
		p.Email = s.CustomerDetails.Email
	}

	return p
}

// translateError maps Stripe API errors to domain errors.
// Parameter errors become validation errors; everything else is an outage from our side.
func translateError(err error, operation string) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}

	if se.Type == stripe.ErrorTypeInvalidRequest && se.Param != "" {
		return domain.NewValidationError(se.Param, se.Msg)
	}

	return domain.NewUnavailableError(serviceName,
		fmt.Sprintf("%s failed with status %d: %s", operation, se.HTTPStatusCode, se.Msg))
}

// leveledLogger routes stripe-go's logging through slog.
type leveledLogger struct {
	logger *slog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l *leveledLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l *leveledLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *leveledLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
