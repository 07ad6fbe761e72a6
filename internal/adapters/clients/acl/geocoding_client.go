package acl

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const (
	geocodingSearchPath = "/v1/search"
	geocodingLanguage   = "en"
)

// GeocodingClient implements ports.LocationClient against the open-meteo geocoding API.
type GeocodingClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewGeocodingClient panics if client is nil.
func NewGeocodingClient(client *clients.Client, logger *slog.Logger) *GeocodingClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &GeocodingClient{
		BaseAdapter: NewBaseAdapter(client, ""),
		logger:      logger.With(slog.String("component", "acl.GeocodingClient")),
	}
}

type geocodingResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
}

// open-meteo omits "results" entirely when nothing matches.
type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// SearchLocations returns up to limit places matching query.
func (g *GeocodingClient) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	query = strings.TrimSpace(query)
	if err := ValidateRequired(query, "q"); err != nil {
		return nil, err
	}

	params := url.Values{
		"name":     {query},
		"count":    {strconv.Itoa(limit)},
		"language": {geocodingLanguage},
		"format":   {"json"},
	}

	var resp geocodingResponse
	if err := g.GetJSON(ctx, geocodingSearchPath, params, &resp, "search locations"); err != nil {
		return nil, err
	}

	locations, err := TranslateSlice(resp.Results, translateLocation)
	if err != nil {
		g.logger.WarnContext(ctx, "dropping malformed geocoding reply", slog.String("error", err.Error()))
		return nil, domain.NewUnavailableError(g.ServiceName(), "malformed search results")
	}

	return locations, nil
}

func translateLocation(r *geocodingResult) (domain.Location, error) {
	if err := ValidateRequired(strings.TrimSpace(r.Name), "name"); err != nil {
		return domain.Location{}, err
	}

	return domain.Location{
		ID:        r.ID,
		Name:      r.Name,
		Admin1:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}
