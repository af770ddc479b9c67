package response

import (
	"time"

	"instauto/internal/domain/entities"
)

type WorkshopResponseBody struct {
	Message        string    `json:"message"`
	EstimatedPrice *float64  `json:"estimated_price,omitempty"`
	EstimatedDays  *int      `json:"estimated_days,omitempty"`
	RespondedAt    time.Time `json:"responded_at"`
}

type QuoteRequestResponse struct {
	ID                string                   `json:"id"`
	WorkshopID        string                   `json:"workshop_id"`
	MotoristAccountID string                   `json:"motorist_account_id,omitempty"`
	Motorist          entities.MotoristContact `json:"motorist"`
	Vehicle           entities.Vehicle         `json:"vehicle"`
	VehicleSummary    string                   `json:"vehicle_summary"`
	ServiceType       string                   `json:"service_type"`
	Description       string                   `json:"description"`
	Urgency           string                   `json:"urgency"`
	Images            []string                 `json:"images"`
	Status            string                   `json:"status"`
	Response          *WorkshopResponseBody    `json:"response,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func FromQuoteRequest(q entities.QuoteRequest) QuoteRequestResponse {
	res := QuoteRequestResponse{
		ID:                q.ID,
		WorkshopID:        q.WorkshopID,
		MotoristAccountID: q.MotoristAccountID,
		Motorist:          q.Motorist,
		Vehicle:           q.Vehicle,
		VehicleSummary:    q.Vehicle.Summary(),
		ServiceType:       string(q.ServiceType),
		Description:       q.Description,
		Urgency:           string(q.Urgency),
		Images:            q.Images,
		Status:            string(q.Status),
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
	if res.Images == nil {
		res.Images = []string{}
	}
	if r := q.Response; r != nil {
		res.Response = &WorkshopResponseBody{
			Message:        r.Message,
			EstimatedPrice: r.EstimatedPrice,
			EstimatedDays:  r.EstimatedDays,
			RespondedAt:    r.RespondedAt,
		}
	}
	return res
}

type QuoteRequestListResponse struct {
	Items []QuoteRequestResponse `json:"items"`
	Total int                    `json:"total"`
}

func FromQuoteRequests(qs []entities.QuoteRequest) QuoteRequestListResponse {
	items := make([]QuoteRequestResponse, 0, len(qs))
	for _, q := range qs {
		items = append(items, FromQuoteRequest(q))
	}
	return QuoteRequestListResponse{Items: items, Total: len(items)}
}

type AttachmentResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func FromAttachment(a entities.Attachment) AttachmentResponse {
	return AttachmentResponse{Key: a.Key, URL: a.URL, ContentType: a.ContentType, Size: a.Size}
}
