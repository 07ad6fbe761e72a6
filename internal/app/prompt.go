package app

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/osteele/liquid"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/ports"
)

//go:embed prompts/*.liquid
var promptFS embed.FS

// PromptBuilder renders the language-model and image prompts from embedded liquid templates.
type PromptBuilder struct {
	clock  ports.Clock
	ritual *liquid.Template
	tarot  *liquid.Template
	sigil  *liquid.Template
}

// NewPromptBuilder parses the embedded templates once.
func NewPromptBuilder(clock ports.Clock) (*PromptBuilder, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	engine := liquid.NewEngine()
	b := &PromptBuilder{clock: clock}

	for name, dst := range map[string]**liquid.Template{
		"ritual": &b.ritual,
		"tarot":  &b.tarot,
		"sigil":  &b.sigil,
	} {
		src, err := promptFS.ReadFile("prompts/" + name + ".liquid")
		if err != nil {
			return nil, fmt.Errorf("reading %s prompt: %w", name, err)
		}

		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parsing %s prompt: %w", name, perr)
		}

		*dst = tpl
	}

	return b, nil
}

// RitualPrompt renders the system prompt for one submission.
// The sun sign and element are computed here and pinned in the prompt.
func (b *PromptBuilder) RitualPrompt(sub *domain.Submission) (string, error) {
	userData, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("encoding submission: %w", err)
	}

	sign, element := sub.Astrology()

	out, rerr := b.ritual.RenderString(liquid.Bindings{
		"currentDate":     b.clock.Now().Format("2006-01-02"),
		"userData":        string(userData),
		"name":            sub.Name,
		"currentLocation": sub.CurrentLocation,
		"sunSign":         string(sign),
		"element":         string(element),
		"elementEnergy":   element.Energy(),
	})
	if rerr != nil {
		return "", fmt.Errorf("rendering ritual prompt: %w", rerr)
	}

	return out, nil
}

// TarotPrompt renders the illustration prompt for a named card.
func (b *PromptBuilder) TarotPrompt(card string, aesthetic domain.Aesthetic) (string, error) {
	out, err := b.tarot.RenderString(liquid.Bindings{
		"card":      card,
		"aesthetic": imageDirection(aesthetic),
	})
	if err != nil {
		return "", fmt.Errorf("rendering tarot prompt: %w", err)
	}

	return out, nil
}

// SigilPrompt renders the sigil prompt for the submission's intention.
func (b *PromptBuilder) SigilPrompt(sub *domain.Submission) (string, error) {
	out, err := b.sigil.RenderString(liquid.Bindings{
		"intention": sub.Intention,
		"spellType": string(sub.SpellType),
		"aesthetic": imageDirection(sub.Aesthetic),
	})
	if err != nil {
		return "", fmt.Errorf("rendering sigil prompt: %w", err)
	}

	return out, nil
}

func imageDirection(a domain.Aesthetic) string {
	if a == domain.AestheticNoImage {
		return ""
	}

	return string(a)
}
