package entities

import (
	"fmt"
	"strings"
	"time"
)

// QuoteStatus represents the lifecycle of a quote request (pedido de orçamento).
//
// Domain notes:
//   - pending is the only initial state.
//   - accepted, rejected and cancelled are terminal.
//   - Transitions are validated by internal/domain/quote; stores only persist them.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusResponded QuoteStatus = "responded"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCancelled:
		return true
	}
	return false
}

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusResponded, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCancelled:
		return true
	}
	return false
}

type ServiceType string

const (
	ServiceTypeMaintenance ServiceType = "maintenance"
	ServiceTypeRepair      ServiceType = "repair"
	ServiceTypeDiagnostic  ServiceType = "diagnostic"
	ServiceTypeOther       ServiceType = "other"
)

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeMaintenance, ServiceTypeRepair, ServiceTypeDiagnostic, ServiceTypeOther:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// MaxQuoteImages is the number of image references a single request may carry.
const MaxQuoteImages = 3

// MotoristContact is the denormalized motorist identity carried on each quote request.
// A motorist does not need a persisted profile to ask for a quote.
type MotoristContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NormalizedEmail is the form used for storage, lookups and identity matching.
func (c MotoristContact) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(c.Email))
}

// DisplayName falls back to the email when no name was informed.
func (c MotoristContact) DisplayName() string {
	if v := strings.TrimSpace(c.Name); v != "" {
		return v
	}
	return c.NormalizedEmail()
}

type Vehicle struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Plate     string `json:"plate,omitempty"`
}

// Summary renders "Brand Model Year" skipping empty parts, e.g. "Fiat Uno 2015".
func (v Vehicle) Summary() string {
	parts := make([]string, 0, 3)
	if b := strings.TrimSpace(v.Brand); b != "" {
		parts = append(parts, b)
	}
	if m := strings.TrimSpace(v.Model); m != "" {
		parts = append(parts, m)
	}
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Year))
	}
	return strings.Join(parts, " ")
}

// WorkshopResponse is the offer attached by the workshop. It is written once,
// together with the pending -> responded transition, and never edited.
type WorkshopResponse struct {
	Message        string    `json:"message"`
	EstimatedPrice *float64  `json:"estimated_price,omitempty"`
	EstimatedDays  *int      `json:"estimated_days,omitempty"`
	RespondedAt    time.Time `json:"responded_at"`
}

// QuoteRequest is the quote request aggregate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (workshop_id-created_at-index): workshop_id / created_at
//   - GSI2 (motorist_email-created_at-index): motorist_email / created_at
//
// Response is nil while Status is pending.
type QuoteRequest struct {
	ID         string `json:"id"`
	WorkshopID string `json:"workshop_id"`

	MotoristAccountID string          `json:"motorist_account_id,omitempty"`
	Motorist          MotoristContact `json:"motorist"`
	Vehicle           Vehicle         `json:"vehicle"`

	ServiceType ServiceType `json:"service_type"`
	Description string      `json:"description"`
	Urgency     Urgency     `json:"urgency"`
	Images      []string    `json:"images,omitempty"`

	Status    QuoteStatus       `json:"status"`
	Response  *WorkshopResponse `json:"response,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// StatusChange is one conditional write against a quote request: it is only
// applied when the stored status still equals From.
type StatusChange struct {
	From     QuoteStatus
	To       QuoteStatus
	Response *WorkshopResponse
	At       time.Time
}
