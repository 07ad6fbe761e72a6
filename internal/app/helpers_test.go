package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSubmission(t *testing.T) *domain.Submission {
	t.Helper()

	dob, err := domain.ParseBirthDate("1990-07-30")
	require.NoError(t, err)

	return &domain.Submission{
		Name:            "Luna",
		Email:           "luna@example.com",
		DOB:             dob,
		BirthPlace:      "Lisbon, Portugal",
		CurrentLocation: "Berlin, Germany",
		Intention:       "Attract abundance into my studio",
		SpellType:       domain.SpellProsperity,
		Aesthetic:       domain.AestheticCosmic,
		TermsAccepted:   true,
	}
}

func testRitual() *domain.Ritual {
	return &domain.Ritual{
		Ritual: domain.RitualBody{
			Title:     "Golden Threshold",
			Paragraph: "Light a green candle at dawn.",
			Mantra:    "I welcome what is mine.",
		},
		Tarot: domain.TarotSpread{
			Card1: domain.TarotCard{Name: "The Star"},
			Card2: domain.TarotCard{Name: "Ace of Pentacles"},
		},
	}
}

func testPrompts(t *testing.T) *PromptBuilder {
	t.Helper()

	b, err := NewPromptBuilder(fixedClock{fixedNow})
	require.NoError(t, err)

	return b
}
