package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"instauto/internal/domain/entities"
)

func validSubmission() Submission {
	return Submission{
		WorkshopID:        "w-1",
		MotoristAccountID: "acc-1",
		Motorist:          entities.MotoristContact{Name: "Ana", Email: "ana@example.com", Phone: "11999990000"},
		Vehicle:           entities.Vehicle{Brand: "Fiat", Model: "Uno", Year: 2015},
		ServiceType:       entities.ServiceTypeRepair,
		Description:       "Freio fazendo barulho",
		Urgency:           entities.UrgencyHigh,
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Submission)
		allowed bool
	}{
		{"valid", func(s *Submission) {}, true},
		{"valid without contact email", func(s *Submission) { s.Motorist.Email = "" }, true},
		{"valid with three images", func(s *Submission) { s.Images = []string{"a", "b", "c"} }, true},
		{"missing workshop", func(s *Submission) { s.WorkshopID = "  " }, false},
		{"missing description", func(s *Submission) { s.Description = "" }, false},
		{"missing service type", func(s *Submission) { s.ServiceType = "" }, false},
		{"unknown service type", func(s *Submission) { s.ServiceType = "painting" }, false},
		{"missing urgency", func(s *Submission) { s.Urgency = "" }, false},
		{"unknown urgency", func(s *Submission) { s.Urgency = "urgent" }, false},
		{"anonymous motorist", func(s *Submission) { s.MotoristAccountID = " " }, false},
		{"email without session", func(s *Submission) { s.MotoristAccountID = "" }, false},
		{"negative year", func(s *Submission) { s.Vehicle.Year = -1 }, false},
		{"four images", func(s *Submission) { s.Images = []string{"a", "b", "c", "d"} }, false},
		{"blank image", func(s *Submission) { s.Images = []string{"a", ""} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			res := ValidateSubmission(s)
			assert.Equal(t, tt.allowed, res.Allowed, res.Reason)
		})
	}
}

func TestValidateOffer(t *testing.T) {
	neg := -1.0
	zero := 0.0
	nan := math.NaN()
	inf := math.Inf(1)
	days := 2
	negDays := -2

	tests := []struct {
		name    string
		offer   Offer
		allowed bool
	}{
		{"message only", Offer{Message: "ok"}, true},
		{"free of charge", Offer{Message: "ok", EstimatedPrice: &zero, EstimatedDays: &days}, true},
		{"blank message", Offer{Message: "   "}, false},
		{"negative price", Offer{Message: "ok", EstimatedPrice: &neg}, false},
		{"nan price", Offer{Message: "ok", EstimatedPrice: &nan}, false},
		{"infinite price", Offer{Message: "ok", EstimatedPrice: &inf}, false},
		{"negative days", Offer{Message: "ok", EstimatedDays: &negDays}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, ValidateOffer(tt.offer).Allowed)
		})
	}
}

func TestCanReceiveQuotes_IgnoresPlanTier(t *testing.T) {
	for _, tier := range []entities.PlanTier{entities.PlanTierFree, entities.PlanTierPro, ""} {
		w := entities.WorkshopProfile{ID: "w-1", AcceptsQuotes: true, IsPubliclyListed: true, PlanTier: tier}
		assert.True(t, CanReceiveQuotes(w).Allowed, "tier %q", tier)
	}

	assert.False(t, CanReceiveQuotes(entities.WorkshopProfile{ID: "w-1", IsPubliclyListed: true}).Allowed)
	assert.False(t, CanReceiveQuotes(entities.WorkshopProfile{ID: "w-1", AcceptsQuotes: true}).Allowed)
	assert.False(t, CanReceiveQuotes(entities.WorkshopProfile{}).Allowed)
}

func TestCanActAsWorkshop(t *testing.T) {
	w := entities.WorkshopProfile{ID: "w-1", OwnerAccountID: "owner-1"}

	assert.True(t, CanActAsWorkshop(w, entities.Actor{AccountID: "owner-1"}).Allowed)
	assert.False(t, CanActAsWorkshop(w, entities.Actor{AccountID: "someone"}).Allowed)
	assert.False(t, CanActAsWorkshop(w, entities.Actor{}).Allowed)
	assert.False(t, CanActAsWorkshop(entities.WorkshopProfile{ID: "w-2"}, entities.Actor{}).Allowed)
}

func TestCanActAsMotorist(t *testing.T) {
	q := entities.QuoteRequest{
		ID:                "q-1",
		MotoristAccountID: "acc-1",
		Motorist:          entities.MotoristContact{Email: "Ana@Example.com "},
	}
	anonymous := entities.QuoteRequest{ID: "q-2", Motorist: entities.MotoristContact{Email: "ana@example.com"}}

	tests := []struct {
		name    string
		q       entities.QuoteRequest
		actor   entities.Actor
		allowed bool
	}{
		{"same account", q, entities.Actor{AccountID: "acc-1"}, true},
		{"session wins over matching email", q, entities.Actor{AccountID: "acc-2", Email: "ana@example.com"}, false},
		{"email fallback without session account", q, entities.Actor{Email: "ANA@example.com"}, true},
		{"email fallback on anonymous request", anonymous, entities.Actor{AccountID: "acc-9", Email: "ana@example.com"}, true},
		{"email mismatch", anonymous, entities.Actor{AccountID: "acc-9", Email: "bob@example.com"}, false},
		{"empty identity", entities.QuoteRequest{ID: "q-3"}, entities.Actor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanActAsMotorist(tt.q, tt.actor).Allowed)
		})
	}
}
