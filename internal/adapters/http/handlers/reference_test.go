package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/mocks"
)

func referenceEngine(t *testing.T) (*gin.Engine, *mocks.MockLocationClient) {
	t.Helper()

	client := mocks.NewMockLocationClient(t)
	h := NewReferenceHandler(app.NewLocationService(client, nil, time.Hour, nil, discardLogger()))

	engine := gin.New()
	engine.GET("/api/v1/zodiac", h.Zodiac)
	engine.GET("/api/v1/locations", h.Locations)

	return engine, client
}

func TestReferenceHandler_Zodiac(t *testing.T) {
	tests := []struct {
		dob  string
		want dto.ZodiacResponse
	}{
		{"1990-08-15", dto.ZodiacResponse{SunSign: "Leo", Element: "Fire", Energy: "action/passion"}},
		{"1985-01-10", dto.ZodiacResponse{SunSign: "Capricorn", Element: "Earth", Energy: "grounding/stability"}},
		{"2000-03-21", dto.ZodiacResponse{SunSign: "Aries", Element: "Fire", Energy: "action/passion"}},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			engine, _ := referenceEngine(t)

			w := do(engine, http.MethodGet, "/api/v1/zodiac?dob="+tt.dob, nil)

			assertStatus(t, w, http.StatusOK)
			assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))

			var resp dto.ZodiacResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestReferenceHandler_Zodiac_Invalid(t *testing.T) {
	for _, target := range []string{
		"/api/v1/zodiac",
		"/api/v1/zodiac?dob=15/08/1990",
		"/api/v1/zodiac?dob=1990-13-01",
	} {
		t.Run(target, func(t *testing.T) {
			engine, _ := referenceEngine(t)

			w := do(engine, http.MethodGet, target, nil)

			assertStatus(t, w, http.StatusBadRequest)
			assert.Contains(t, decodeError(t, w).Error.Details, "dob")
		})
	}
}

func TestReferenceHandler_Locations(t *testing.T) {
	engine, client := referenceEngine(t)

	client.EXPECT().SearchLocations(mock.Anything, "Lisb", 10).Return([]domain.Location{
		{ID: 2267057, Name: "Lisbon", Admin1: "Lisbon", Country: "Portugal", Latitude: 38.72, Longitude: -9.13, Timezone: "Europe/Lisbon"},
	}, nil)

	w := do(engine, http.MethodGet, "/api/v1/locations?q=Lisb", nil)

	assertStatus(t, w, http.StatusOK)

	var resp dto.LocationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Lisbon", resp.Results[0].Name)
	assert.Equal(t, "Europe/Lisbon", resp.Results[0].Timezone)
}

func TestReferenceHandler_Locations_ShortQuery(t *testing.T) {
	engine, _ := referenceEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/locations?q=L", nil)

	assertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestReferenceHandler_Locations_Upstream(t *testing.T) {
	engine, client := referenceEngine(t)

	client.EXPECT().SearchLocations(mock.Anything, "Porto", 10).
		Return(nil, domain.NewUnavailableError("geocoding", "circuit open"))

	w := do(engine, http.MethodGet, "/api/v1/locations?q=Porto", nil)

	assertStatus(t, w, http.StatusServiceUnavailable)
	assert.Equal(t, dto.ErrorCodeUnavailable, decodeError(t, w).Error.Code)
}
