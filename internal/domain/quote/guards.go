package quote

import (
	"fmt"
	"math"
	"strings"

	"instauto/internal/domain/entities"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // populated when not allowed
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Submission is the motorist input for a new quote request.
type Submission struct {
	WorkshopID        string
	MotoristAccountID string
	Motorist          entities.MotoristContact
	Vehicle           entities.Vehicle
	ServiceType       entities.ServiceType
	Description       string
	Urgency           entities.Urgency
	Images            []string
}

// Offer is the workshop reply to a pending request.
type Offer struct {
	Message        string
	EstimatedPrice *float64
	EstimatedDays  *int
}

func (o Offer) normalizedMessage() string {
	return strings.TrimSpace(o.Message)
}

// ValidateSubmission checks the required fields of a new request.
// Rule: workshop, description, service type and urgency are mandatory and the
// motorist must hold a session account, which is where the workshop's reply is
// delivered. Contact email is optional.
func ValidateSubmission(s Submission) GuardResult {
	if strings.TrimSpace(s.WorkshopID) == "" {
		return deny("workshop_id is required")
	}
	if strings.TrimSpace(s.Description) == "" {
		return deny("description is required")
	}
	if !s.ServiceType.IsValid() {
		return deny("service_type %q is invalid", s.ServiceType)
	}
	if !s.Urgency.IsValid() {
		return deny("urgency %q is invalid", s.Urgency)
	}
	if strings.TrimSpace(s.MotoristAccountID) == "" {
		return deny("motorist session is required")
	}
	if s.Vehicle.Year < 0 {
		return deny("vehicle year %d is invalid", s.Vehicle.Year)
	}
	if len(s.Images) > entities.MaxQuoteImages {
		return deny("at most %d images are allowed, got %d", entities.MaxQuoteImages, len(s.Images))
	}
	for i, img := range s.Images {
		if strings.TrimSpace(img) == "" {
			return deny("image %d is empty", i)
		}
	}
	return GuardResult{Allowed: true}
}

// ValidateOffer checks a workshop response.
// Rule: the message is mandatory; price and days are optional but never negative.
func ValidateOffer(o Offer) GuardResult {
	if o.normalizedMessage() == "" {
		return deny("workshop response message is required")
	}
	if p := o.EstimatedPrice; p != nil && (*p < 0 || math.IsNaN(*p) || math.IsInf(*p, 0)) {
		return deny("estimated_price must be a non-negative amount")
	}
	if d := o.EstimatedDays; d != nil && *d < 0 {
		return deny("estimated_days must be non-negative")
	}
	return GuardResult{Allowed: true}
}

// CanReceiveQuotes evaluates whether a workshop is open for new quote requests.
// Rule: accepts_quotes and publicly listed. The plan tier is deliberately not
// consulted; quote requests are unlimited on every tier.
func CanReceiveQuotes(w entities.WorkshopProfile) GuardResult {
	if !w.AcceptsQuotes {
		return deny("workshop %s does not accept quote requests", w.ID)
	}
	if !w.IsPubliclyListed {
		return deny("workshop %s is not publicly listed", w.ID)
	}
	return GuardResult{Allowed: true}
}

// CanActAsWorkshop evaluates whether actor owns the workshop.
func CanActAsWorkshop(w entities.WorkshopProfile, actor entities.Actor) GuardResult {
	owner := strings.TrimSpace(w.OwnerAccountID)
	if owner == "" || owner != strings.TrimSpace(actor.AccountID) {
		return deny("account %q does not own workshop %s", actor.AccountID, w.ID)
	}
	return GuardResult{Allowed: true}
}

// CanActAsMotorist evaluates whether actor is the motorist who asked for q.
// Rule: when both sides carry a session account id it decides alone; otherwise
// the normalized contact email must match.
func CanActAsMotorist(q entities.QuoteRequest, actor entities.Actor) GuardResult {
	recorded := strings.TrimSpace(q.MotoristAccountID)
	caller := strings.TrimSpace(actor.AccountID)
	if recorded != "" && caller != "" {
		if recorded == caller {
			return GuardResult{Allowed: true}
		}
		return deny("account %q did not request quote %s", actor.AccountID, q.ID)
	}

	email := q.Motorist.NormalizedEmail()
	if email != "" && email == actor.Contact().NormalizedEmail() {
		return GuardResult{Allowed: true}
	}
	return deny("caller %q did not request quote %s", actor.Email, q.ID)
}
