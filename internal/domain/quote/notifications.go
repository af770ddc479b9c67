package quote

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"instauto/internal/domain/entities"
)

const responseExcerptLen = 120

var serviceTypeLabels = map[entities.ServiceType]string{
	entities.ServiceTypeMaintenance: "manutenção",
	entities.ServiceTypeRepair:      "reparo",
	entities.ServiceTypeDiagnostic:  "diagnóstico",
	entities.ServiceTypeOther:       "outro serviço",
}

// SubmittedNotice is addressed to the workshop owner when a request arrives.
func SubmittedNotice(q entities.QuoteRequest, w entities.WorkshopProfile) entities.Notification {
	vehicle := q.Vehicle.Summary()
	if vehicle == "" {
		vehicle = "veículo não informado"
	}
	return entities.Notification{
		AccountID: w.OwnerAccountID,
		Type:      entities.NotificationQuoteRequested,
		Title:     "Novo pedido de orçamento",
		Message: fmt.Sprintf("%s solicitou um orçamento de %s para %s",
			q.Motorist.DisplayName(), serviceLabel(q.ServiceType), vehicle),
		Data: map[string]any{
			"quote_request_id": q.ID,
			"workshop_id":      q.WorkshopID,
			"motorist_name":    q.Motorist.DisplayName(),
			"vehicle":          vehicle,
			"service_type":     string(q.ServiceType),
			"urgency":          string(q.Urgency),
		},
	}
}

// RespondedNotice is addressed to the motorist once the workshop has replied.
func RespondedNotice(q entities.QuoteRequest, w entities.WorkshopProfile) entities.Notification {
	data := map[string]any{
		"quote_request_id": q.ID,
		"workshop_id":      q.WorkshopID,
		"workshop_name":    w.Name,
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "%s respondeu seu pedido de orçamento", workshopName(w))
	if q.Response != nil {
		excerpt := Excerpt(q.Response.Message, responseExcerptLen)
		fmt.Fprintf(&msg, ": \"%s\"", excerpt)
		data["response_excerpt"] = excerpt
		if p := q.Response.EstimatedPrice; p != nil {
			price := FormatPrice(*p)
			fmt.Fprintf(&msg, ". Valor estimado: R$ %s", price)
			data["estimated_price"] = price
		}
		if d := q.Response.EstimatedDays; d != nil {
			data["estimated_days"] = *d
		}
	}

	return entities.Notification{
		AccountID: q.MotoristAccountID,
		Type:      entities.NotificationQuoteResponded,
		Title:     "Orçamento respondido",
		Message:   msg.String(),
		Data:      data,
	}
}

// ResolvedNotice is addressed to the workshop owner when the motorist accepts or
// rejects the offer. ok is false for any other status.
func ResolvedNotice(q entities.QuoteRequest, w entities.WorkshopProfile) (entities.Notification, bool) {
	n := entities.Notification{
		AccountID: w.OwnerAccountID,
		Data: map[string]any{
			"quote_request_id": q.ID,
			"workshop_id":      q.WorkshopID,
			"motorist_name":    q.Motorist.DisplayName(),
			"outcome":          string(q.Status),
		},
	}
	switch q.Status {
	case entities.QuoteStatusAccepted:
		n.Type = entities.NotificationQuoteAccepted
		n.Title = "Orçamento aceito"
		n.Message = fmt.Sprintf("%s aceitou seu orçamento", q.Motorist.DisplayName())
	case entities.QuoteStatusRejected:
		n.Type = entities.NotificationQuoteRejected
		n.Title = "Orçamento recusado"
		n.Message = fmt.Sprintf("%s recusou seu orçamento", q.Motorist.DisplayName())
	default:
		return entities.Notification{}, false
	}
	return n, true
}

// FormatPrice renders a monetary amount with two decimals, e.g. 250 -> "250.00".
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Excerpt trims s to at most n runes, appending "..." when cut.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func serviceLabel(t entities.ServiceType) string {
	if l, ok := serviceTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func workshopName(w entities.WorkshopProfile) string {
	if n := strings.TrimSpace(w.Name); n != "" {
		return n
	}
	return "A oficina"
}
