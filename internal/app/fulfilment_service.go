package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	reqctx "github.com/jsamuelsen/ritual-service/internal/app/context"
	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

const opFulfilOrder = "fulfil_order"

// DefaultLeaseTTL bounds how long one run may hold an order.
const DefaultLeaseTTL = 5 * time.Minute

// FulfilmentResult is returned once an order's ritual has been delivered.
type FulfilmentResult struct {
	OrderID  string
	ResultID string
	PDFURL   string
}

// FulfilmentService turns a paid order into a stored, mailed ritual PDF.
type FulfilmentService struct {
	exec     *Executor
	orders   ports.OrderRepository
	results  ports.ResultRepository
	rituals  *RitualService
	renderer ports.DocumentRenderer
	store    ports.ArtifactStore
	mailer   ports.Mailer
	locker   ports.OrderLocker
	leaseTTL time.Duration
	clock    ports.Clock
	metrics  *metrics.Metrics
	logger   *slog.Logger
	newID    func() string
}

// FulfilmentServiceConfig contains the dependencies of the fulfilment service.
type FulfilmentServiceConfig struct {
	Executor *Executor
	Orders   ports.OrderRepository
	Results  ports.ResultRepository
	Rituals  *RitualService
	Renderer ports.DocumentRenderer
	Store    ports.ArtifactStore
	Mailer   ports.Mailer
	Locker   ports.OrderLocker
	LeaseTTL time.Duration
	Clock    ports.Clock
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	NewID    func() string
}

// NewFulfilmentService creates the service. It panics when a required dependency is missing.
func NewFulfilmentService(cfg FulfilmentServiceConfig) *FulfilmentService {
	if cfg.Orders == nil || cfg.Results == nil || cfg.Rituals == nil || cfg.Renderer == nil || cfg.Store == nil {
		panic("app: fulfilment service requires orders, results, rituals, renderer and store")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Executor == nil {
		cfg.Executor = NewExecutor(cfg.Logger, cfg.Metrics)
	}

	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = DefaultLeaseTTL
	}

	return &FulfilmentService{
		exec:     cfg.Executor,
		orders:   cfg.Orders,
		results:  cfg.Results,
		rituals:  cfg.Rituals,
		renderer: cfg.Renderer,
		store:    cfg.Store,
		mailer:   cfg.Mailer,
		locker:   cfg.Locker,
		leaseTTL: cfg.LeaseTTL,
		clock:    cfg.Clock,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.With(slog.String("component", "app.FulfilmentService")),
		newID:    cfg.NewID,
	}
}

// orderProvider loads one order, memoized per fulfilment run.
type orderProvider struct {
	repo ports.OrderRepository
	id   string
}

func (p orderProvider) Key() string { return "order:" + p.id }

func (p orderProvider) Fetch(ctx context.Context) (*domain.Order, error) {
	return p.repo.Get(ctx, p.id)
}

// fulfilment carries state from Perform through Archive.
type fulfilment struct {
	order    *domain.Order
	ritual   *domain.Ritual
	pdf      []byte
	pdfURL   string
	resultID string
}

// Fulfil generates, renders, stores and mails the ritual for a paid order.
// Validation errors are domain errors; other failures mark the order failed so it can be retried.
// Only one run per order proceeds at a time; a concurrent call gets a conflict.
func (s *FulfilmentService) Fulfil(ctx context.Context, orderID string) (*FulfilmentResult, error) {
	orderID = strings.TrimSpace(orderID)
	start := time.Now()

	rc := reqctx.New(ctx)
	ctx = reqctx.WithContext(logging.WithOrderID(ctx, orderID), rc)
	load := orderProvider{repo: s.orders, id: orderID}

	var release func()
	defer func() {
		if release != nil {
			release()
		}
	}()

	op := Operation[string, *fulfilment, *fulfilment, *FulfilmentResult]{
		Name: opFulfilOrder,

		Validate: func(ctx context.Context, id string) error {
			if id == "" {
				return domain.NewValidationError("orderId", "Missing orderId")
			}

			held, err := s.acquire(ctx, id)
			if err != nil {
				return err
			}

			release = held

			order, err := reqctx.Load[*domain.Order](rc, load)
			if err != nil {
				return err
			}

			if !order.CanFulfil() {
				return domain.NewOrderStateError(id, order.Status, "fulfil")
			}

			if order.Submission == nil {
				return domain.NewValidationError("order", "has no quiz submission")
			}

			return nil
		},

		Perform: func(ctx context.Context, _ string) (*fulfilment, error) {
			order, err := reqctx.Load[*domain.Order](rc, load)
			if err != nil {
				return nil, err
			}

			ritual, err := s.rituals.Generate(ctx, order.Submission)
			if err != nil {
				return nil, err
			}

			return &fulfilment{order: order, ritual: ritual}, nil
		},

		Verify: func(_ context.Context, _ string, f *fulfilment) (*fulfilment, error) {
			if !f.ritual.IsComplete() {
				return nil, errors.New("generated ritual is missing its title or paragraph")
			}

			pdf, err := s.renderer.RenderRitual(f.ritual)
			if err != nil {
				return nil, fmt.Errorf("rendering pdf: %w", err)
			}

			if len(pdf) == 0 {
				return nil, errors.New("rendered pdf is empty")
			}

			f.pdf = pdf

			return f, nil
		},

		Archive: func(ctx context.Context, _ string, f *fulfilment) error {
			for _, a := range s.archiveActions(f) {
				if err := rc.AddAction(a); err != nil {
					return err
				}
			}

			return rc.Commit(ctx)
		},

		Respond: func(_ context.Context, _ string, f *fulfilment) (*FulfilmentResult, error) {
			return &FulfilmentResult{OrderID: f.order.ID, ResultID: f.resultID, PDFURL: f.pdfURL}, nil
		},
	}

	result, err := Execute(ctx, s.exec, op, orderID)
	if err != nil {
		s.metrics.Fulfilment(metrics.OutcomeFailure, time.Since(start))

		if step, _ := GetExecutionStep(err); step != StepValidate {
			s.markFailed(ctx, rc, load, err)
		}

		return nil, err
	}

	s.metrics.Fulfilment(metrics.OutcomeSuccess, time.Since(start))

	return result, nil
}

// acquire takes the order's lease and returns its release. It fails open
// when the lock store is unreachable.
func (s *FulfilmentService) acquire(ctx context.Context, orderID string) (func(), error) {
	if s.locker == nil {
		return nil, nil
	}

	token, ok, err := s.locker.Lock(ctx, orderID, s.leaseTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "order lease unavailable", slog.Any("error", err))

		return nil, nil
	}

	if !ok {
		return nil, domain.NewConflictError("order", "fulfilment already in progress")
	}

	return func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), orderID, token); err != nil {
			s.logger.WarnContext(ctx, "releasing order lease failed", slog.Any("error", err))
		}
	}, nil
}

// PDFKey is the object key of one fulfilment attempt's PDF. Each attempt gets
// its own key so rolling back a retry never removes an earlier delivery.
func PDFKey(orderID, resultID string) string {
	return "rituals/" + orderID + "/" + resultID + ".pdf"
}

// archiveActions stages the durable writes in dependency order.
func (s *FulfilmentService) archiveActions(f *fulfilment) []reqctx.Action {
	f.resultID = s.newID()
	key := PDFKey(f.order.ID, f.resultID)
	previous := *f.order

	actions := []reqctx.Action{
		reqctx.Step("upload pdf",
			func(ctx context.Context) error {
				url, err := s.store.Put(ctx, key, "application/pdf", f.pdf)
				f.pdfURL = url

				return err
			},
			func(ctx context.Context) error { return s.store.Delete(ctx, key) },
		),
		reqctx.Step("save result",
			func(ctx context.Context) error {
				res := &domain.Result{
					ID:        f.resultID,
					OrderID:   f.order.ID,
					Email:     f.order.Email,
					UserData:  f.order.Submission,
					Ritual:    f.ritual,
					PDFURL:    f.pdfURL,
					CreatedAt: s.clock.Now(),
				}
				if f.order.Submission != nil {
					res.Name = f.order.Submission.Name
				}

				id, err := s.results.Save(ctx, res)
				if id != "" {
					f.resultID = id
				}

				return err
			},
			func(ctx context.Context) error { return s.results.Delete(ctx, f.resultID) },
		),
		reqctx.Step("mark order fulfilled",
			func(ctx context.Context) error {
				f.order.MarkFulfilled(f.resultID, f.pdfURL, s.clock.Now())

				return s.orders.Save(ctx, f.order)
			},
			func(ctx context.Context) error {
				*f.order = previous

				return s.orders.Save(ctx, f.order)
			},
		),
	}

	if s.mailer != nil {
		actions = append(actions, reqctx.Step("send ritual email",
			func(ctx context.Context) error {
				delivery := domain.NewRitualDelivery(f.order, f.ritual, f.pdfURL)

				return s.mailer.SendRitual(ctx, &delivery)
			},
			nil,
		))
	}

	return actions
}

// markFailed records the failure on the order so the next attempt is allowed and visible.
func (s *FulfilmentService) markFailed(ctx context.Context, rc *reqctx.RequestContext, load orderProvider, cause error) {
	order, err := reqctx.Load[*domain.Order](rc, load)
	if err != nil {
		return
	}

	if order.Status == domain.OrderFulfilled {
		// An earlier delivery is still valid; keep it.
		return
	}

	order.MarkFailed(cause.Error(), s.clock.Now())

	if err := s.orders.Save(context.WithoutCancel(ctx), order); err != nil {
		s.logger.ErrorContext(ctx, "marking order failed", slog.Any("error", err))
	}
}
