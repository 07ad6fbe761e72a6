package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/mocks"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

type ritualFixture struct {
	engine  *gin.Engine
	gen     *mocks.MockContentGenerator
	results *mocks.MockResultRepository
	flags   *mocks.MockFeatureFlags
}

func newRitualFixture(t *testing.T) ritualFixture {
	t.Helper()

	f := ritualFixture{
		gen:     mocks.NewMockContentGenerator(t),
		results: mocks.NewMockResultRepository(t),
		flags:   mocks.NewMockFeatureFlags(t),
	}

	svc := app.NewRitualService(app.RitualServiceConfig{
		Prompts:   promptBuilder(t),
		Generator: f.gen,
		Results:   f.results,
		Flags:     f.flags,
		Clock:     fixedClock{},
		Logger:    discardLogger(),
	})

	h := NewRitualHandler(svc)

	f.engine = gin.New()
	f.engine.POST("/api/v1/rituals/submit", h.Submit)
	f.engine.GET("/api/v1/results/:id", h.GetResult)

	return f
}

func TestRitualHandler_Submit(t *testing.T) {
	f := newRitualFixture(t)

	f.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(true)
	f.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).Return(&domain.Ritual{
		Ritual: domain.RitualBody{Title: "Golden Threshold", Paragraph: "Light a candle."},
	}, nil)
	f.results.EXPECT().Save(mock.Anything, mock.MatchedBy(func(r *domain.Result) bool {
		return r.Email == "luna@example.com" && r.Ritual.SunSign == domain.SignLeo
	})).Return("res-1", nil)

	w := do(f.engine, http.MethodPost, "/api/v1/rituals/submit", jsonBody(t, validQuiz()))

	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Ritual   domain.Ritual `json:"ritual"`
		ResultID string        `json:"resultId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "res-1", resp.ResultID)
	assert.Equal(t, "Golden Threshold", resp.Ritual.Ritual.Title)
	assert.Equal(t, domain.SignLeo, resp.Ritual.SunSign)
	assert.Equal(t, domain.ElementFire, resp.Ritual.Element)
}

func TestRitualHandler_Submit_Disabled(t *testing.T) {
	f := newRitualFixture(t)

	f.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(false)

	w := do(f.engine, http.MethodPost, "/api/v1/rituals/submit", jsonBody(t, validQuiz()))

	assertStatus(t, w, http.StatusForbidden)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Error.Code)
}

func TestRitualHandler_Submit_InvalidQuiz(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(q map[string]any)
		field string
	}{
		{"missing name", func(q map[string]any) { delete(q, "name") }, "name"},
		{"bad email", func(q map[string]any) { q["email"] = "not-an-email" }, "email"},
		{"impossible date", func(q map[string]any) { q["dob"] = "1990-02-30" }, "dob"},
		{"unknown spell", func(q map[string]any) { q["spellType"] = "Curse" }, "spellType"},
		{"terms declined", func(q map[string]any) { q["termsAccepted"] = false }, "termsAccepted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRitualFixture(t)
			q := validQuiz()
			tt.edit(q)

			w := do(f.engine, http.MethodPost, "/api/v1/rituals/submit", jsonBody(t, q))

			assertStatus(t, w, http.StatusBadRequest)

			resp := decodeError(t, w)
			assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
			assert.Contains(t, resp.Error.Details, tt.field)
		})
	}
}

func TestRitualHandler_Submit_MalformedBody(t *testing.T) {
	f := newRitualFixture(t)

	w := do(f.engine, http.MethodPost, "/api/v1/rituals/submit", jsonBody(t, "not an object"))

	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Error.Code)
}

func TestRitualHandler_Submit_GeneratorUnavailable(t *testing.T) {
	f := newRitualFixture(t)

	f.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagDirectSubmit, false).Return(true)
	f.gen.EXPECT().GenerateRitual(mock.Anything, mock.Anything).
		Return(nil, domain.NewUnavailableError("openai", "circuit open"))

	w := do(f.engine, http.MethodPost, "/api/v1/rituals/submit", jsonBody(t, validQuiz()))

	assertStatus(t, w, http.StatusServiceUnavailable)
}

func TestRitualHandler_GetResult(t *testing.T) {
	f := newRitualFixture(t)

	f.results.EXPECT().Get(mock.Anything, "res-1").Return(&domain.Result{
		ID:        "res-1",
		Name:      "Luna",
		Email:     "luna@example.com",
		Ritual:    &domain.Ritual{Ritual: domain.RitualBody{Title: "Golden Threshold"}},
		CreatedAt: fixedNow,
	}, nil)

	w := do(f.engine, http.MethodGet, "/api/v1/results/res-1", nil)

	assertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"title":"Golden Threshold"`)
	assert.NotContains(t, w.Body.String(), "luna@example.com")
}

func TestRitualHandler_GetResult_NotFound(t *testing.T) {
	f := newRitualFixture(t)

	f.results.EXPECT().Get(mock.Anything, "missing").
		RunAndReturn(func(_ context.Context, id string) (*domain.Result, error) {
			return nil, domain.NewNotFoundError("result", id)
		})

	w := do(f.engine, http.MethodGet, "/api/v1/results/missing", nil)

	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, dto.ErrorCodeNotFound, decodeError(t, w).Error.Code)
}
