// Package app contains application services that orchestrate use cases.
// Services depend on port interfaces and never on SDKs or HTTP types.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

// Image kinds, used as log fields and metric labels.
const (
	imageTarot1 = "tarot_card1"
	imageTarot2 = "tarot_card2"
	imageSigil  = "sigil"
)

// RitualService generates rituals and serves stored results.
type RitualService struct {
	prompts   *PromptBuilder
	generator ports.ContentGenerator
	results   ports.ResultRepository
	flags     ports.FeatureFlags
	clock     ports.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// RitualServiceConfig contains the dependencies of the ritual service.
type RitualServiceConfig struct {
	Prompts   *PromptBuilder
	Generator ports.ContentGenerator
	Results   ports.ResultRepository
	Flags     ports.FeatureFlags
	Clock     ports.Clock
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// NewRitualService creates the service. It panics when a required dependency is missing.
func NewRitualService(cfg RitualServiceConfig) *RitualService {
	if cfg.Prompts == nil || cfg.Generator == nil || cfg.Results == nil {
		panic("app: ritual service requires prompts, generator and results")
	}

	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &RitualService{
		prompts:   cfg.Prompts,
		generator: cfg.Generator,
		results:   cfg.Results,
		flags:     cfg.Flags,
		clock:     cfg.Clock,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.With(slog.String("component", "app.RitualService")),
	}
}

// Generate produces a complete ritual for the submission.
// Illustration failures leave empty image URLs; only text generation failures are returned.
func (s *RitualService) Generate(ctx context.Context, sub *domain.Submission) (*domain.Ritual, error) {
	start := time.Now()
	logger := s.loggerFor(ctx)

	prompt, err := s.prompts.RitualPrompt(sub)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	logger.Log(ctx, logging.LevelTrace, "ritual prompt", slog.String("prompt", prompt))

	ritual, err := s.generator.GenerateRitual(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating ritual: %w", err)
	}

	s.illustrate(ctx, sub, ritual)

	ritual.SunSign, ritual.Element = sub.Astrology()

	s.metrics.Generation(time.Since(start))
	logger.InfoContext(ctx, "ritual generated",
		slog.String("sun_sign", string(ritual.SunSign)),
		slog.Duration("duration", time.Since(start)),
	)

	return ritual, nil
}

type imageJob struct {
	kind   string
	req    domain.ImageRequest
	assign func(url string)
}

// illustrate generates the tarot and sigil images concurrently.
func (s *RitualService) illustrate(ctx context.Context, sub *domain.Submission, r *domain.Ritual) {
	logger := s.loggerFor(ctx)
	jobs := make([]imageJob, 0, 3)

	addCard := func(kind string, card *domain.TarotCard) {
		if card.Name == "" {
			return
		}

		prompt, err := s.prompts.TarotPrompt(card.Name, sub.Aesthetic)
		if err != nil {
			logger.WarnContext(ctx, "tarot prompt failed", slog.String("image", kind), slog.Any("error", err))
			return
		}

		jobs = append(jobs, imageJob{
			kind:   kind,
			req:    domain.ImageRequest{Prompt: prompt, Size: domain.ImageSizePortrait},
			assign: func(url string) { card.ImageURL = url },
		})
	}

	addCard(imageTarot1, &r.Tarot.Card1)
	addCard(imageTarot2, &r.Tarot.Card2)

	if sub.WantsSigil() && s.sigilsEnabled(ctx) {
		r.Sigil = &domain.Sigil{}

		prompt, err := s.prompts.SigilPrompt(sub)
		if err != nil {
			logger.WarnContext(ctx, "sigil prompt failed", slog.Any("error", err))
		} else {
			jobs = append(jobs, imageJob{
				kind:   imageSigil,
				req:    domain.ImageRequest{Prompt: prompt, Size: domain.ImageSizeSquare},
				assign: func(url string) { r.Sigil.ImageURL = url },
			})
		}
	}

	if len(jobs) == 0 {
		return
	}

	fns := make([]func(context.Context) (string, error), len(jobs))
	for i, job := range jobs {
		fns[i] = func(ctx context.Context) (string, error) {
			return s.generator.GenerateImage(ctx, job.req)
		}
	}

	for i, res := range ParallelPartial(ctx, fns...) {
		if res.Err != nil {
			logger.WarnContext(ctx, "image generation failed",
				slog.String("image", jobs[i].kind),
				slog.Any("error", res.Err),
			)
			s.metrics.ImageDegraded(jobs[i].kind)

			continue
		}

		jobs[i].assign(res.Value)
	}
}

func (s *RitualService) sigilsEnabled(ctx context.Context) bool {
	return s.flags == nil || s.flags.IsEnabled(ctx, ports.FlagSigilImages, true)
}

// SubmitResult is the outcome of the direct-submit flow.
type SubmitResult struct {
	Ritual   *domain.Ritual
	ResultID string
}

// Submit generates a ritual without payment and stores it.
// A storage failure is logged and yields an empty ResultID; the ritual is still returned.
func (s *RitualService) Submit(ctx context.Context, sub *domain.Submission) (*SubmitResult, error) {
	if s.flags == nil || !s.flags.IsEnabled(ctx, ports.FlagDirectSubmit, false) {
		return nil, domain.NewForbiddenError("direct submit", "disabled; use checkout")
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	ritual, err := s.Generate(ctx, sub)
	if err != nil {
		return nil, err
	}

	id, err := s.results.Save(ctx, &domain.Result{
		Email:     sub.Email,
		Name:      sub.Name,
		UserData:  sub,
		Ritual:    ritual,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		s.loggerFor(ctx).ErrorContext(ctx, "saving result failed", slog.Any("error", err))

		id = ""
	}

	return &SubmitResult{Ritual: ritual, ResultID: id}, nil
}

// GetResult returns a stored ritual.
func (s *RitualService) GetResult(ctx context.Context, id string) (*domain.Result, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	return s.results.Get(ctx, id)
}

func (s *RitualService) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != slog.Default() {
		return logger.With(slog.String("component", "app.RitualService"))
	}

	return s.logger
}
