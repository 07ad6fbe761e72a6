package domain

import "strings"

// SpellType is the kind of working the user asked for.
type SpellType string

// Spell types offered in the quiz.
const (
	SpellProsperity SpellType = "Prosperity"
	SpellProtection SpellType = "Protection"
	SpellLove       SpellType = "Love"
	SpellClarity    SpellType = "Clarity"
	SpellHealing    SpellType = "Healing"
	SpellCustom     SpellType = "Custom"
)

// Aesthetic is the visual style preference for generated imagery.
type Aesthetic string

// Aesthetics offered in the quiz.
const (
	AestheticMinimalSigil Aesthetic = "Minimal Sigil"
	AestheticBotanical    Aesthetic = "Botanical"
	AestheticCosmic       Aesthetic = "Cosmic"
	AestheticCrystal      Aesthetic = "Crystal"
	AestheticNoImage      Aesthetic = "No image"
)

// Submission is a completed quiz: identity, birth details, intention and preferences.
type Submission struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	DOB             BirthDate `json:"dob"`
	BirthTime       string    `json:"birthTime,omitempty"`
	BirthPlace      string    `json:"birthPlace"`
	CurrentLocation string    `json:"currentLocation,omitempty"`
	Intention       string    `json:"intention"`
	SpellType       SpellType `json:"spellType"`
	TargetName      string    `json:"targetName,omitempty"`
	Aesthetic       Aesthetic `json:"aesthetic"`
	MarketingOptIn  bool      `json:"marketingOptIn"`
	TermsAccepted   bool      `json:"termsAccepted"`
}

// Astrology returns the sun sign and element for the submission's birth date.
func (s *Submission) Astrology() (SunSign, Element) {
	if s.DOB.IsZero() {
		return SignUnknown, ElementUnknown
	}

	sign := ResolveSunSign(s.DOB)

	return sign, ResolveElement(sign)
}

// WantsSigil reports whether a sigil image should be generated.
func (s *Submission) WantsSigil() bool {
	return strings.TrimSpace(s.Intention) != "" &&
		s.SpellType != "" &&
		s.Aesthetic != AestheticNoImage
}

// Validate enforces rules that transport-level struct tags do not express.
func (s *Submission) Validate() error {
	if !s.TermsAccepted {
		return NewValidationError("termsAccepted", "you must accept the terms")
	}

	if s.DOB.IsZero() {
		return NewValidationError("dob", "is required")
	}

	return nil
}
