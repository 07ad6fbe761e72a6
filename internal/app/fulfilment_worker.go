package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
)

// Fulfiller is the unit of work the pool runs for each queued order.
type Fulfiller interface {
	Fulfil(ctx context.Context, orderID string) (*FulfilmentResult, error)
}

// WorkerPoolConfig sizes the fulfilment pool.
type WorkerPoolConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// FulfilmentWorkers fulfils paid orders in the background.
// It implements ports.FulfilmentQueue.
type FulfilmentWorkers struct {
	fulfiller Fulfiller
	cfg       WorkerPoolConfig
	metrics   *metrics.Metrics
	logger    *slog.Logger

	jobs   chan string
	mu     sync.RWMutex
	closed bool
}

// NewFulfilmentWorkers creates a stopped pool. Call Run to start the workers.
func NewFulfilmentWorkers(f Fulfiller, cfg WorkerPoolConfig, m *metrics.Metrics, logger *slog.Logger) *FulfilmentWorkers {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}

	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FulfilmentWorkers{
		fulfiller: f,
		cfg:       cfg,
		metrics:   m,
		logger:    logger.With(slog.String("component", "app.FulfilmentWorkers")),
		jobs:      make(chan string, cfg.QueueSize),
	}
}

// Enqueue hands an order to the pool without blocking.
func (w *FulfilmentWorkers) Enqueue(_ context.Context, orderID string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return domain.NewUnavailableError("fulfilment queue", "closed")
	}

	select {
	case w.jobs <- orderID:
		w.metrics.QueueDepth(len(w.jobs))

		return nil
	default:
		return domain.NewUnavailableError("fulfilment queue", "full")
	}
}

// Run starts the workers and blocks until Close drains the queue or ctx is cancelled.
func (w *FulfilmentWorkers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for range w.cfg.Workers {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case id, ok := <-w.jobs:
					if !ok {
						return nil
					}

					w.metrics.QueueDepth(len(w.jobs))
					w.process(ctx, id)
				}
			}
		})
	}

	return g.Wait()
}

func (w *FulfilmentWorkers) process(ctx context.Context, orderID string) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.JobTimeout)
	defer cancel()

	logger := w.logger.With(slog.String("order_id", orderID))
	ctx = logging.WithContext(ctx, logger)

	res, err := w.fulfiller.Fulfil(ctx, orderID)
	if err != nil {
		logger.ErrorContext(ctx, "background fulfilment failed", slog.Any("error", err))

		return
	}

	logger.InfoContext(ctx, "order fulfilled", slog.String("result_id", res.ResultID))
}

// Close stops accepting work. Queued orders are still processed by Run.
func (w *FulfilmentWorkers) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	close(w.jobs)
}
