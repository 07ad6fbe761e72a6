package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func promptBuilder(t *testing.T) *app.PromptBuilder {
	t.Helper()

	b, err := app.NewPromptBuilder(fixedClock{})
	require.NoError(t, err)

	return b
}

func validQuiz() map[string]any {
	return map[string]any{
		"name":            "Luna",
		"email":           "luna@example.com",
		"dob":             "1990-08-15",
		"birthPlace":      "Lisbon, Portugal",
		"currentLocation": "Berlin, Germany",
		"intention":       "Attract abundance into my studio",
		"spellType":       "Prosperity",
		"aesthetic":       "No image",
		"termsAccepted":   true,
	}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(raw)
}

func do(engine *gin.Engine, method, target string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
