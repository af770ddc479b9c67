package response

import (
	"encoding/json"
	"testing"
	"time"

	"instauto/internal/domain/entities"
)

func TestFromQuoteRequest(t *testing.T) {
	now := time.Now().UTC()
	price := 250.0
	q := entities.QuoteRequest{
		ID:          "q-1",
		WorkshopID:  "w-1",
		Motorist:    entities.MotoristContact{Name: "Ana", Email: "ana@example.com"},
		Vehicle:     entities.Vehicle{Brand: "Fiat", Model: "Uno", Year: 2015},
		ServiceType: entities.ServiceTypeRepair,
		Urgency:     entities.UrgencyHigh,
		Status:      entities.QuoteStatusResponded,
		Response:    &entities.WorkshopResponse{Message: "ok", EstimatedPrice: &price, RespondedAt: now},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := FromQuoteRequest(q)
	if res.ID != "q-1" || res.Status != "responded" || res.ServiceType != "repair" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.VehicleSummary != "Fiat Uno 2015" {
		t.Fatalf("unexpected vehicle summary: %q", res.VehicleSummary)
	}
	if res.Response == nil || *res.Response.EstimatedPrice != 250 || res.Response.EstimatedDays != nil {
		t.Fatalf("unexpected response: %+v", res.Response)
	}
	if res.Images == nil {
		t.Fatalf("images must serialize as an empty list")
	}
}

func TestFromQuoteRequests_EmptyListIsNotNull(t *testing.T) {
	body, err := json.Marshal(FromQuoteRequests(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"items":[],"total":0}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
