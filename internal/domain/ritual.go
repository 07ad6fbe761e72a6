package domain

import "time"

// Ritual is the generated reading delivered to the user.
// JSON names match the content schema the language model is asked to produce.
type Ritual struct {
	NameMeaning NameMeaning `json:"nameMeaning"`
	Ritual      RitualBody  `json:"ritual"`
	Tarot       TarotSpread `json:"tarot"`
	Astrology   Astrology   `json:"astrology"`
	ShadowWork  ShadowWork  `json:"shadowWork"`
	Reflection  Reflection  `json:"reflection"`
	Horoscope   Horoscope   `json:"horoscope"`
	SoulCity    SoulCity    `json:"soulCity"`
	Sigil       *Sigil      `json:"sigil,omitempty"`

	// SunSign and Element are computed locally, never taken from the model.
	SunSign SunSign `json:"sunSign"`
	Element Element `json:"element"`
}

// NameMeaning interprets the etymology of the user's name.
type NameMeaning struct {
	OverallVibe string `json:"overallVibe"`
}

// RitualBody is the practice itself.
type RitualBody struct {
	Title           string          `json:"title"`
	Paragraph       string          `json:"paragraph"`
	Mantra          string          `json:"mantra"`
	PhysicalAction  string          `json:"physicalAction"`
	Timing          RitualTiming    `json:"timing"`
	Correspondences Correspondences `json:"correspondences"`
}

// RitualTiming says when to perform the ritual.
type RitualTiming struct {
	LunarPhase  string `json:"lunarPhase"`
	ExactDate   string `json:"exactDate"`
	TimeOfDay   string `json:"timeOfDay"`
	WhatNotToDo string `json:"whatNotToDo"`
}

// Correspondences is the eight-field correspondence table.
type Correspondences struct {
	Color     string `json:"color"`
	Element   string `json:"element"`
	Crystal   string `json:"crystal"`
	Herb      string `json:"herb"`
	Candle    string `json:"candle"`
	Day       string `json:"day"`
	Direction string `json:"direction"`
	Planet    string `json:"planet"`
}

// TarotSpread is the two-card draw.
type TarotSpread struct {
	Card1 TarotCard `json:"card1"`
	Card2 TarotCard `json:"card2"`
}

// TarotCard is one drawn card and its illustration.
type TarotCard struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Meaning  string `json:"meaning"`
	Role     string `json:"role"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Astrology is the transit and elemental reading.
type Astrology struct {
	TransitInfluence string `json:"transitInfluence"`
	ElementalReading string `json:"elementalReading"`
}

// ShadowWork names an obstacle and how to work with it.
type ShadowWork struct {
	Obstacle string `json:"obstacle"`
	Guidance string `json:"guidance"`
}

// Reflection closes the reading.
type Reflection struct {
	JournalPrompt   string `json:"journalPrompt"`
	CosmicDirection string `json:"cosmicDirection"`
}

// Horoscope is daily and monthly guidance.
type Horoscope struct {
	Daily   string `json:"daily"`
	Monthly string `json:"monthly"`
}

// SoulCityEnergy classifies the energy of a soul city.
type SoulCityEnergy string

// Soul city energies.
const (
	EnergyLove       SoulCityEnergy = "love"
	EnergyCareer     SoulCityEnergy = "career"
	EnergyHealing    SoulCityEnergy = "healing"
	EnergyCreativity SoulCityEnergy = "creativity"
	EnergyGrowth     SoulCityEnergy = "growth"
)

// SoulCity is the symbolic travel destination for the reading.
type SoulCity struct {
	City              string         `json:"city"`
	Country           string         `json:"country"`
	RegionDescription string         `json:"regionDescription"`
	EnergyType        SoulCityEnergy `json:"energyType"`
	WhyItFits         string         `json:"whyItFits"`
	PowerDirection    string         `json:"powerDirection"`
	AltCities         []string       `json:"altCities"`
	AvoidRegions      []string       `json:"avoidRegions"`
	TravelTheme       string         `json:"travelTheme"`
}

// Sigil is the generated sigil illustration.
type Sigil struct {
	ImageURL string `json:"imageUrl"`
}

// IsComplete reports whether the ritual has the fields a deliverable needs.
func (r *Ritual) IsComplete() bool {
	return r != nil && r.Ritual.Title != "" && r.Ritual.Paragraph != ""
}

// Result is a persisted ritual, from either the direct or the paid flow.
type Result struct {
	ID        string
	OrderID   string
	Email     string
	Name      string
	UserData  *Submission
	Ritual    *Ritual
	PDFURL    string
	CreatedAt time.Time
}

// ImageRequest asks the generator for one illustration.
type ImageRequest struct {
	Prompt string
	Size   string
}

// Image sizes accepted by the image model.
const (
	ImageSizeSquare   = "1024x1024"
	ImageSizePortrait = "1024x1792"
)

// RitualDelivery is the email sent once an order's PDF is ready.
type RitualDelivery struct {
	OrderID string
	To      string
	Name    string
	Title   string
	Mantra  string
	SunSign SunSign
	PDFURL  string
}

// NewRitualDelivery builds the delivery email for a fulfilled order.
func NewRitualDelivery(o *Order, r *Ritual, pdfURL string) RitualDelivery {
	d := RitualDelivery{
		OrderID: o.ID,
		To:      o.Email,
		Title:   r.Ritual.Title,
		Mantra:  r.Ritual.Mantra,
		SunSign: r.SunSign,
		PDFURL:  pdfURL,
	}

	if o.Submission != nil {
		d.Name = o.Submission.Name
		if d.To == "" {
			d.To = o.Submission.Email
		}
	}

	return d
}
