package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

// ErrRecordPayment is returned when a verified payment could not be persisted.
// The processor will redeliver the event.
var ErrRecordPayment = errors.New("recording payment failed")

// CheckoutSettings are the commercial terms of one ritual.
type CheckoutSettings struct {
	UnitAmount int64
	Currency   string
	PublicURL  string
}

// CheckoutService opens payments and reacts to payment events.
type CheckoutService struct {
	orders   ports.OrderRepository
	gateway  ports.PaymentGateway
	dedup    ports.EventDeduplicator
	queue    ports.FulfilmentQueue
	clock    ports.Clock
	settings CheckoutSettings
	metrics  *metrics.Metrics
	logger   *slog.Logger
	newID    func() string
}

// CheckoutServiceConfig contains the dependencies of the checkout service.
type CheckoutServiceConfig struct {
	Orders   ports.OrderRepository
	Gateway  ports.PaymentGateway
	Dedup    ports.EventDeduplicator
	Queue    ports.FulfilmentQueue
	Clock    ports.Clock
	Settings CheckoutSettings
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// NewID overrides order ID generation in tests.
	NewID func() string
}

// NewCheckoutService creates the service. It panics when a required dependency is missing.
func NewCheckoutService(cfg CheckoutServiceConfig) *CheckoutService {
	if cfg.Orders == nil || cfg.Gateway == nil {
		panic("app: checkout service requires orders and gateway")
	}

	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &CheckoutService{
		orders:   cfg.Orders,
		gateway:  cfg.Gateway,
		dedup:    cfg.Dedup,
		queue:    cfg.Queue,
		clock:    cfg.Clock,
		settings: cfg.Settings,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.With(slog.String("component", "app.CheckoutService")),
		newID:    cfg.NewID,
	}
}

// CheckoutResult identifies the opened checkout.
type CheckoutResult struct {
	OrderID string
	URL     string
}

// CreateCheckout stores a pending order for the submission and opens a hosted checkout page.
func (s *CheckoutService) CreateCheckout(ctx context.Context, sub *domain.Submission) (*CheckoutResult, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := &domain.Order{
		ID:         s.newID(),
		Email:      sub.Email,
		Submission: sub,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx = logging.WithOrderID(ctx, order.ID)

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving pending order: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, &domain.CheckoutRequest{
		OrderID:        order.ID,
		Email:          sub.Email,
		ProductName:    domain.ProductName(sub.SpellType),
		Description:    domain.ProductDescription,
		UnitAmount:     s.settings.UnitAmount,
		Currency:       s.settings.Currency,
		SuccessURL:     SuccessURL(s.settings.PublicURL, order.ID),
		CancelURL:      strings.TrimRight(s.settings.PublicURL, "/"),
		MarketingOptIn: sub.MarketingOptIn,
	})
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	order.SessionID = session.ID
	order.UpdatedAt = s.clock.Now()

	if err := s.orders.Save(ctx, order); err != nil {
		// The session carries the order ID, so the webhook can still settle it.
		logging.FromContext(ctx).WarnContext(ctx, "storing session id failed", slog.Any("error", err))
	}

	s.metrics.CheckoutCreated()
	s.logger.InfoContext(ctx, "checkout created", slog.String("order_id", order.ID))

	return &CheckoutResult{OrderID: order.ID, URL: session.URL}, nil
}

// SuccessURL is where the processor sends the buyer after paying. The path
// carries the order ID so the page can poll GET /api/v1/orders/:id; the
// processor fills in the session ID placeholder.
func SuccessURL(publicURL, orderID string) string {
	return strings.TrimRight(publicURL, "/") + "/success/" + url.PathEscape(orderID) + "?session_id={CHECKOUT_SESSION_ID}"
}

// HandleWebhook verifies and applies one payment event.
// Duplicate and irrelevant events are acknowledged without side effects.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		label := "malformed"
		if domain.IsPaymentUnverified(err) {
			label = "unverified"
		}

		s.metrics.WebhookEvent(label, metrics.OutcomeFailure)

		return err
	}

	logger := s.logger.With(slog.String("event_id", event.ID), slog.String("event_type", event.RawType))

	if !event.Type.CarriesPayment() || event.Payment == nil {
		logger.DebugContext(ctx, "ignoring payment event")
		s.metrics.WebhookEvent(event.RawType, metrics.OutcomeIgnored)

		return nil
	}

	if !s.firstDelivery(ctx, logger, event.ID) {
		s.metrics.WebhookEvent(event.RawType, metrics.OutcomeDuplicate)

		return nil
	}

	order, err := s.recordPayment(ctx, event.Payment)
	if err != nil {
		s.forget(ctx, logger, event.ID)
		s.metrics.WebhookEvent(event.RawType, metrics.OutcomeFailure)
		logger.ErrorContext(ctx, "recording payment failed", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrRecordPayment, err)
	}

	s.metrics.WebhookEvent(event.RawType, metrics.OutcomeSuccess)
	logger.InfoContext(ctx, "payment recorded",
		slog.String("order_id", order.ID),
		slog.String("payment_status", event.Payment.PaymentStatus),
	)

	// Delayed payment methods complete checkout unpaid; fulfilment waits for
	// the async success event.
	if order.Status != domain.OrderPaid || !event.Payment.Settled() {
		logger.InfoContext(ctx, "order not ready for fulfilment",
			slog.String("order_id", order.ID),
			slog.String("order_status", string(order.Status)),
		)

		return nil
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, order.ID); err != nil {
			logger.WarnContext(ctx, "enqueueing fulfilment failed; order stays paid",
				slog.String("order_id", order.ID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// firstDelivery fails open: a dedup outage must not block payments.
func (s *CheckoutService) firstDelivery(ctx context.Context, logger *slog.Logger, eventID string) bool {
	if s.dedup == nil || eventID == "" {
		return true
	}

	first, err := s.dedup.FirstSeen(ctx, eventID)
	if err != nil {
		logger.WarnContext(ctx, "event dedup unavailable", slog.Any("error", err))

		return true
	}

	if !first {
		logger.InfoContext(ctx, "duplicate payment event acknowledged")
	}

	return first
}

func (s *CheckoutService) forget(ctx context.Context, logger *slog.Logger, eventID string) {
	if s.dedup == nil || eventID == "" {
		return
	}

	if err := s.dedup.Forget(ctx, eventID); err != nil {
		logger.WarnContext(ctx, "releasing event id failed", slog.Any("error", err))
	}
}

// recordPayment applies the payment to the referenced order, which becomes paid
// once the money is settled. A payment with no known order is stored as a new
// order keyed by its session ID so it is never lost.
func (s *CheckoutService) recordPayment(ctx context.Context, p *domain.Payment) (*domain.Order, error) {
	now := s.clock.Now()

	order, err := s.lookupOrder(ctx, p)
	if err != nil {
		return nil, err
	}

	if order == nil {
		order = &domain.Order{
			ID:        p.SessionID,
			Status:    domain.OrderPending,
			CreatedAt: now,
		}
	}

	if order.Status == domain.OrderFulfilled {
		return order, nil
	}

	order.RecordPayment(*p, now)

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *CheckoutService) lookupOrder(ctx context.Context, p *domain.Payment) (*domain.Order, error) {
	for _, id := range []string{p.OrderID, p.SessionID} {
		if id == "" {
			continue
		}

		order, err := s.orders.Get(ctx, id)
		if err == nil {
			return order, nil
		}

		if !domain.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, nil
}

// GetOrder returns an order's current state.
func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	return s.orders.Get(ctx, id)
}
