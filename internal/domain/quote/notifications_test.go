package quote

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instauto/internal/domain/entities"
)

var testWorkshop = entities.WorkshopProfile{ID: "w-1", OwnerAccountID: "owner-1", Name: "Oficina do Zé"}

func testRequest() entities.QuoteRequest {
	return entities.QuoteRequest{
		ID:                "q-1",
		WorkshopID:        "w-1",
		MotoristAccountID: "acc-1",
		Motorist:          entities.MotoristContact{Name: "Ana", Email: "ana@example.com"},
		Vehicle:           entities.Vehicle{Brand: "Fiat", Model: "Uno", Year: 2015},
		ServiceType:       entities.ServiceTypeRepair,
		Urgency:           entities.UrgencyHigh,
		Status:            entities.QuoteStatusPending,
		CreatedAt:         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSubmittedNotice(t *testing.T) {
	n := SubmittedNotice(testRequest(), testWorkshop)

	assert.Equal(t, "owner-1", n.AccountID)
	assert.Equal(t, entities.NotificationQuoteRequested, n.Type)
	assert.Contains(t, n.Message, "Ana")
	assert.Contains(t, n.Message, "Fiat Uno 2015")
	assert.Contains(t, n.Message, "reparo")
	assert.Equal(t, "q-1", n.Data["quote_request_id"])
	assert.Equal(t, "repair", n.Data["service_type"])
}

func TestSubmittedNotice_FallsBackToEmail(t *testing.T) {
	q := testRequest()
	q.Motorist.Name = ""
	q.Vehicle = entities.Vehicle{}

	n := SubmittedNotice(q, testWorkshop)

	assert.Contains(t, n.Message, "ana@example.com")
	assert.Contains(t, n.Message, "veículo não informado")
}

func TestRespondedNotice_IncludesPrice(t *testing.T) {
	q := testRequest()
	price := 250.0
	days := 2
	q.Status = entities.QuoteStatusResponded
	q.Response = &entities.WorkshopResponse{Message: "Troca de pastilhas, 2 dias", EstimatedPrice: &price, EstimatedDays: &days}

	n := RespondedNotice(q, testWorkshop)

	assert.Equal(t, "acc-1", n.AccountID)
	assert.Equal(t, entities.NotificationQuoteResponded, n.Type)
	assert.Contains(t, n.Message, "Oficina do Zé")
	assert.Contains(t, n.Message, "Troca de pastilhas")
	assert.Contains(t, n.Message, "250.00")
	assert.Equal(t, "250.00", n.Data["estimated_price"])
	assert.Equal(t, 2, n.Data["estimated_days"])
}

func TestRespondedNotice_WithoutPrice(t *testing.T) {
	q := testRequest()
	q.Response = &entities.WorkshopResponse{Message: strings.Repeat("a", 300)}

	n := RespondedNotice(q, entities.WorkshopProfile{OwnerAccountID: "owner-1"})

	assert.NotContains(t, n.Message, "R$")
	assert.NotContains(t, n.Data, "estimated_price")
	assert.Contains(t, n.Message, "A oficina")
	excerpt, _ := n.Data["response_excerpt"].(string)
	assert.True(t, strings.HasSuffix(excerpt, "..."))
}

func TestResolvedNotice(t *testing.T) {
	q := testRequest()

	q.Status = entities.QuoteStatusAccepted
	n, ok := ResolvedNotice(q, testWorkshop)
	require.True(t, ok)
	assert.Equal(t, entities.NotificationQuoteAccepted, n.Type)
	assert.Equal(t, "owner-1", n.AccountID)
	assert.Contains(t, n.Message, "Ana")
	assert.Equal(t, "accepted", n.Data["outcome"])

	q.Status = entities.QuoteStatusRejected
	n, ok = ResolvedNotice(q, testWorkshop)
	require.True(t, ok)
	assert.Equal(t, entities.NotificationQuoteRejected, n.Type)

	q.Status = entities.QuoteStatusCancelled
	_, ok = ResolvedNotice(q, testWorkshop)
	assert.False(t, ok)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "curto", Excerpt("  curto ", 10))
	assert.Equal(t, "ação...", Excerpt("ação rápida", 4))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "250.00", FormatPrice(250))
	assert.Equal(t, "0.50", FormatPrice(0.5))
}
