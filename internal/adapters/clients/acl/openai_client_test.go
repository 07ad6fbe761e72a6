package acl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const ritualJSON = `{
  "nameMeaning": {"overallVibe": "The luminous wanderer"},
  "ritual": {
    "title": "Golden Threshold",
    "paragraph": "Light a candle at dusk.",
    "mantra": "I open the door to abundance",
    "physicalAction": "Place a coin on the windowsill.",
    "timing": {"lunarPhase": "Waxing Crescent", "exactDate": "March 29-31, 2025", "timeOfDay": "sunset", "whatNotToDo": "Avoid the void-of-course moon."},
    "correspondences": {"color": "gold", "element": "Fire", "crystal": "citrine", "herb": "basil", "candle": "green", "day": "Thursday", "direction": "East", "planet": "Jupiter"}
  },
  "tarot": {
    "card1": {"name": "The Star", "position": "Upright", "meaning": "Hope.", "role": "Current Energy"},
    "card2": {"name": "Ace of Pentacles", "position": "Upright", "meaning": "New wealth.", "role": "Future Potential"}
  },
  "soulCity": {"city": "Kyoto", "country": "Japan", "energyType": "healing", "altCities": ["Lisbon", "Reykjavik"], "avoidRegions": []}
}`

func setupOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()

	return NewOpenAIClient(OpenAIConfig{
		Client: newTestClient(t, handler),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id": "chatcmpl-1",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}, "finish_reason": finish},
		},
		"usage": map[string]int{"prompt_tokens": 900, "completion_tokens": 700},
	}
}

func TestNewOpenAIClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewOpenAIClient(OpenAIConfig{}) })
}

func TestOpenAIClient_GenerateRitual(t *testing.T) {
	var got chatRequest

	client := setupOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, chatCompletionsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(t, w, chatReply(ritualJSON, "stop"))
	})

	ritual, err := client.GenerateRitual(context.Background(), "You are a master mystic.")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You are a master mystic.", got.Messages[0].Content)

	assert.Equal(t, "Golden Threshold", ritual.Ritual.Title)
	assert.Equal(t, "Jupiter", ritual.Ritual.Correspondences.Planet)
	assert.Equal(t, "Ace of Pentacles", ritual.Tarot.Card2.Name)
	assert.Equal(t, domain.EnergyHealing, ritual.SoulCity.EnergyType)
	assert.Equal(t, []string{"Lisbon", "Reykjavik"}, ritual.SoulCity.AltCities)
	assert.Nil(t, ritual.Sigil)
}

func TestOpenAIClient_GenerateRitual_ConfiguredModel(t *testing.T) {
	var model string

	c := NewOpenAIClient(OpenAIConfig{
		Client: newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			model = req.Model
			writeJSON(t, w, chatReply(ritualJSON, "stop"))
		}),
		ChatModel: "gpt-4o",
	})

	_, err := c.GenerateRitual(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", model)
}

func TestOpenAIClient_GenerateRitual_BadReplies(t *testing.T) {
	tests := []struct {
		name     string
		reply    map[string]any
		contains string
	}{
		{"no choices", map[string]any{"id": "x", "choices": []any{}}, "no choices"},
		{"empty content", chatReply("   ", "stop"), "completion is empty"},
		{"not json", chatReply("Here is your ritual!", "stop"), "not a ritual object"},
		{"truncated", chatReply(`{"ritual": {"title": "Golden`, "length"), "completion truncated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tt.reply)
			})

			_, err := client.GenerateRitual(context.Background(), "prompt")

			require.Error(t, err)
			assert.True(t, domain.IsUnavailable(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestOpenAIClient_GenerateRitual_EmptyPrompt(t *testing.T) {
	client := setupOpenAIClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GenerateRitual(context.Background(), " \n")

	assert.True(t, domain.IsValidation(err))
}

func TestOpenAIClient_GenerateRitual_ContentPolicy(t *testing.T) {
	client := setupOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Your request was rejected by our safety system.","type":"invalid_request_error","code":"content_policy_violation"}}`))
	})

	_, err := client.GenerateRitual(context.Background(), "prompt")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "prompt", ve.Field)
}

func TestOpenAIClient_GenerateImage(t *testing.T) {
	var got imageRequest

	client := setupOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, imageGenerationsPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(t, w, map[string]any{
			"created": 1710408600,
			"data":    []map[string]string{{"url": "https://img.example/star.png", "revised_prompt": "A star"}},
		})
	})

	url, err := client.GenerateImage(context.Background(), domain.ImageRequest{
		Prompt: "A mystical tarot card illustration for \"The Star\".",
		Size:   domain.ImageSizePortrait,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/star.png", url)
	assert.Equal(t, imageRequest{
		Model:   "dall-e-3",
		Prompt:  "A mystical tarot card illustration for \"The Star\".",
		N:       1,
		Size:    "1024x1792",
		Quality: "standard",
	}, got)
}

func TestOpenAIClient_GenerateImage_DefaultsToSquare(t *testing.T) {
	var size string

	client := setupOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		size = req.Size
		writeJSON(t, w, map[string]any{"data": []map[string]string{{"url": "https://img.example/sigil.png"}}})
	})

	_, err := client.GenerateImage(context.Background(), domain.ImageRequest{Prompt: "sigil"})

	require.NoError(t, err)
	assert.Equal(t, domain.ImageSizeSquare, size)
}

func TestOpenAIClient_GenerateImage_NoData(t *testing.T) {
	client := setupOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"data": []any{}})
	})

	_, err := client.GenerateImage(context.Background(), domain.ImageRequest{Prompt: "sigil"})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestOpenAIClient_GenerateImage_ServerError(t *testing.T) {
	client := setupOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GenerateImage(context.Background(), domain.ImageRequest{Prompt: "sigil"})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "test-service")
}
