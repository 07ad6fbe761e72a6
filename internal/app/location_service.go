package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/platform/metrics"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

const (
	minLocationQuery   = 2
	locationLimit      = 10
	locationCacheName  = "locations"
	locationKeyPrefix  = "locations:"
	defaultLocationTTL = 24 * time.Hour
)

// LocationService suggests places for the quiz's birth place and location fields.
type LocationService struct {
	client  ports.LocationClient
	cache   ports.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLocationService creates the service. cache may be nil.
func NewLocationService(client ports.LocationClient, cache ports.Cache, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *LocationService {
	if ttl <= 0 {
		ttl = defaultLocationTTL
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LocationService{
		client:  client,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger.With(slog.String("component", "app.LocationService")),
	}
}

// Search returns up to ten matches. Queries shorter than two characters return none.
func (s *LocationService) Search(ctx context.Context, query string) ([]domain.Location, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minLocationQuery {
		return []domain.Location{}, nil
	}

	key := locationKeyPrefix + strings.ToLower(query)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	locations, err := s.client.SearchLocations(ctx, query, locationLimit)
	if err != nil {
		return nil, err
	}

	if locations == nil {
		locations = []domain.Location{}
	}

	s.store(ctx, key, locations)

	return locations, nil
}

func (s *LocationService) fromCache(ctx context.Context, key string) ([]domain.Location, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WarnContext(ctx, "location cache read failed", slog.Any("error", err))
		}

		s.metrics.CacheLookup(locationCacheName, false)

		return nil, false
	}

	var locations []domain.Location
	if err := json.Unmarshal(raw, &locations); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt cache entry", slog.String("key", key))
		s.metrics.CacheLookup(locationCacheName, false)

		return nil, false
	}

	s.metrics.CacheLookup(locationCacheName, true)

	return locations, true
}

func (s *LocationService) store(ctx context.Context, key string, locations []domain.Location) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(locations)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "location cache write failed", slog.Any("error", err))
	}
}
