package request

import (
	"strings"

	"instauto/internal/domain/entities"
	"instauto/internal/domain/quote"
)

type MotoristRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Plate     string `json:"plate"`
}

// SubmitQuoteRequest is the motorist payload for POST /quote-requests.
// Motorist contact is optional when the caller has a session.
type SubmitQuoteRequest struct {
	WorkshopID  string          `json:"workshop_id" binding:"required"`
	Motorist    MotoristRequest `json:"motorist"`
	Vehicle     VehicleRequest  `json:"vehicle"`
	ServiceType string          `json:"service_type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Urgency     string          `json:"urgency" binding:"required"`
	Images      []string        `json:"images"`
}

func (r SubmitQuoteRequest) ToSubmission() quote.Submission {
	return quote.Submission{
		WorkshopID: strings.TrimSpace(r.WorkshopID),
		Motorist: entities.MotoristContact{
			Name:  strings.TrimSpace(r.Motorist.Name),
			Email: strings.TrimSpace(r.Motorist.Email),
			Phone: strings.TrimSpace(r.Motorist.Phone),
		},
		Vehicle: entities.Vehicle{
			VehicleID: strings.TrimSpace(r.Vehicle.VehicleID),
			Brand:     strings.TrimSpace(r.Vehicle.Brand),
			Model:     strings.TrimSpace(r.Vehicle.Model),
			Year:      r.Vehicle.Year,
			Plate:     strings.ToUpper(strings.TrimSpace(r.Vehicle.Plate)),
		},
		ServiceType: entities.ServiceType(strings.ToLower(strings.TrimSpace(r.ServiceType))),
		Description: r.Description,
		Urgency:     entities.Urgency(strings.ToLower(strings.TrimSpace(r.Urgency))),
		Images:      r.Images,
	}
}

// RespondQuoteRequest is the workshop payload for PATCH /quote-requests/:id/respond.
type RespondQuoteRequest struct {
	Message        string   `json:"message" binding:"required"`
	EstimatedPrice *float64 `json:"estimated_price"`
	EstimatedDays  *int     `json:"estimated_days"`
}

func (r RespondQuoteRequest) ToOffer() quote.Offer {
	return quote.Offer{
		Message:        r.Message,
		EstimatedPrice: r.EstimatedPrice,
		EstimatedDays:  r.EstimatedDays,
	}
}
