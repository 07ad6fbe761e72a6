package dto

import (
	"strings"
	"time"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// QuizRequest is the completed quiz posted by the form.
type QuizRequest struct {
	Name            string `json:"name"            validate:"required,notempty,min=2,max=100"`
	Email           string `json:"email"           validate:"required,email,max=254"`
	DOB             string `json:"dob"             validate:"required,birthdate"`
	BirthTime       string `json:"birthTime"       validate:"omitempty,clocktime"`
	BirthPlace      string `json:"birthPlace"      validate:"required,notempty,min=2,max=200"`
	CurrentLocation string `json:"currentLocation" validate:"omitempty,max=200"`
	Intention       string `json:"intention"       validate:"required,notempty,min=10,max=2000"`
	SpellType       string `json:"spellType"       validate:"required,oneof=Prosperity Protection Love Clarity Healing Custom"`
	TargetName      string `json:"targetName"      validate:"omitempty,max=100"`
	Aesthetic       string `json:"aesthetic"       validate:"required,oneof='Minimal Sigil' Botanical Cosmic Crystal 'No image'"`
	MarketingOptIn  bool   `json:"marketingOptIn"`
	TermsAccepted   bool   `json:"termsAccepted"   validate:"required"`
}

// ToSubmission converts a validated request into the domain submission.
func (r *QuizRequest) ToSubmission() (*domain.Submission, error) {
	dob, err := domain.ParseBirthDate(strings.TrimSpace(r.DOB))
	if err != nil {
		return nil, err
	}

	return &domain.Submission{
		Name:            strings.TrimSpace(r.Name),
		Email:           strings.TrimSpace(r.Email),
		DOB:             dob,
		BirthTime:       strings.TrimSpace(r.BirthTime),
		BirthPlace:      strings.TrimSpace(r.BirthPlace),
		CurrentLocation: strings.TrimSpace(r.CurrentLocation),
		Intention:       strings.TrimSpace(r.Intention),
		SpellType:       domain.SpellType(r.SpellType),
		TargetName:      strings.TrimSpace(r.TargetName),
		Aesthetic:       domain.Aesthetic(r.Aesthetic),
		MarketingOptIn:  r.MarketingOptIn,
		TermsAccepted:   r.TermsAccepted,
	}, nil
}

// SubmitResponse is returned by the direct-submit flow.
// ResultID is empty when the ritual could not be stored.
type SubmitResponse struct {
	Ritual   *domain.Ritual `json:"ritual"`
	ResultID string         `json:"resultId,omitempty"`
}

// CheckoutResponse points the browser at the hosted checkout page.
type CheckoutResponse struct {
	OrderID string `json:"orderId"`
	URL     string `json:"url"`
}

// WebhookResponse acknowledges a payment event.
type WebhookResponse struct {
	Received bool `json:"received"`
}

// FulfilmentRequest asks for one order to be fulfilled.
type FulfilmentRequest struct {
	OrderID string `json:"orderId" validate:"required,notempty"`
}

// FulfilmentResponse reports a delivered order.
type FulfilmentResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	ResultID string `json:"resultId"`
	PDFURL   string `json:"pdfUrl"`
}

// OrderResponse is the public view of an order. The submission and payment
// details stay server side.
type OrderResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PDFURL        string    `json:"pdfUrl,omitempty"`
	ResultID      string    `json:"resultId,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		Status:        string(o.Status),
		PDFURL:        o.PDFURL,
		ResultID:      o.ResultID,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ResultResponse is a stored ritual. The email address is never returned.
type ResultResponse struct {
	ID        string         `json:"id"`
	OrderID   string         `json:"orderId,omitempty"`
	Name      string         `json:"name,omitempty"`
	Ritual    *domain.Ritual `json:"ritual"`
	PDFURL    string         `json:"pdfUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewResultResponse converts a domain result.
func NewResultResponse(r *domain.Result) *ResultResponse {
	return &ResultResponse{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Name:      r.Name,
		Ritual:    r.Ritual,
		PDFURL:    r.PDFURL,
		CreatedAt: r.CreatedAt,
	}
}

// ZodiacRequest is the query of the sign lookup.
type ZodiacRequest struct {
	DOB string `form:"dob" json:"dob" validate:"required,birthdate"`
}

// ZodiacResponse describes a sun sign.
type ZodiacResponse struct {
	SunSign string `json:"sunSign"`
	Element string `json:"element"`
	Energy  string `json:"energy"`
}

// LocationResponse is one place suggestion.
type LocationResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
	Label     string  `json:"label"`
}

// LocationsResponse wraps suggestions so the envelope can grow.
type LocationsResponse struct {
	Results []LocationResponse `json:"results"`
}

// NewLocationsResponse converts domain locations. The slice is never nil.
func NewLocationsResponse(locations []domain.Location) *LocationsResponse {
	out := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		l := &locations[i]
		out = append(out, LocationResponse{
			ID:        l.ID,
			Name:      l.Name,
			Admin1:    l.Admin1,
			Country:   l.Country,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Timezone:  l.Timezone,
			Label:     l.Label(),
		})
	}

	return &LocationsResponse{Results: out}
}
