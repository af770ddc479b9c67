// Package quote contains the pure business logic of the quote request lifecycle.
// No I/O happens here: callers pass the current time and pre-fetched context,
// and persist whatever change this package plans.
package quote

import (
	"strings"
	"time"

	"instauto/internal/domain/entities"
)

// Event is an action requested against a quote request.
type Event string

const (
	EventRespond Event = "respond"
	EventAccept  Event = "accept"
	EventReject  Event = "reject"
	EventCancel  Event = "cancel"
)

// graph lists every legal edge. Anything absent is rejected.
var graph = map[entities.QuoteStatus][]entities.QuoteStatus{
	entities.QuoteStatusPending:   {entities.QuoteStatusResponded, entities.QuoteStatusCancelled},
	entities.QuoteStatusResponded: {entities.QuoteStatusAccepted, entities.QuoteStatusRejected},
}

// eventEdges maps each event to the single edge it may traverse.
var eventEdges = map[Event]struct {
	from entities.QuoteStatus
	to   entities.QuoteStatus
}{
	EventRespond: {entities.QuoteStatusPending, entities.QuoteStatusResponded},
	EventAccept:  {entities.QuoteStatusResponded, entities.QuoteStatusAccepted},
	EventReject:  {entities.QuoteStatusResponded, entities.QuoteStatusRejected},
	EventCancel:  {entities.QuoteStatusPending, entities.QuoteStatusCancelled},
}

// InitialStatus returns the status of a freshly submitted request.
func InitialStatus() entities.QuoteStatus {
	return entities.QuoteStatusPending
}

// AllowedTransitions returns the statuses reachable in one step from s.
func AllowedTransitions(s entities.QuoteStatus) []entities.QuoteStatus {
	next := graph[s]
	out := make([]entities.QuoteStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
func CanTransition(from, to entities.QuoteStatus) bool {
	for _, s := range graph[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OutcomeEvent maps a resolution outcome to its event. Only accepted and
// rejected are valid outcomes.
func OutcomeEvent(outcome entities.QuoteStatus) (Event, bool) {
	switch outcome {
	case entities.QuoteStatusAccepted:
		return EventAccept, true
	case entities.QuoteStatusRejected:
		return EventReject, true
	}
	return "", false
}

// CheckTransition evaluates whether event may be applied to a request currently in status.
func CheckTransition(requestID string, status entities.QuoteStatus, event Event) GuardResult {
	edge, ok := eventEdges[event]
	if !ok {
		return deny("unknown event %q", event)
	}
	if status == edge.from {
		return GuardResult{Allowed: true}
	}
	if status.IsTerminal() {
		return deny("quote request %s is already %s", requestID, status)
	}
	return deny("quote request %s is %s; %s requires %s (next allowed: %s)",
		requestID, status, event, edge.from, joinStatuses(AllowedTransitions(status)))
}

func joinStatuses(statuses []entities.QuoteStatus) string {
	if len(statuses) == 0 {
		return "none"
	}
	parts := make([]string, len(statuses))
	for i, st := range statuses {
		parts[i] = string(st)
	}
	return strings.Join(parts, ", ")
}

// PlanStatusChange builds the conditional write for event. The caller must have
// checked the transition with CheckTransition first.
func PlanStatusChange(event Event, now time.Time) entities.StatusChange {
	edge := eventEdges[event]
	return entities.StatusChange{From: edge.from, To: edge.to, At: now.UTC()}
}

// PlanResponse builds the pending -> responded write carrying the workshop offer.
// RespondedAt never precedes createdAt, even with clock skew between writers.
func PlanResponse(offer Offer, createdAt, now time.Time) entities.StatusChange {
	respondedAt := now.UTC()
	if respondedAt.Before(createdAt) {
		respondedAt = createdAt.UTC()
	}

	change := PlanStatusChange(EventRespond, respondedAt)
	change.Response = &entities.WorkshopResponse{
		Message:        offer.normalizedMessage(),
		EstimatedPrice: offer.EstimatedPrice,
		EstimatedDays:  offer.EstimatedDays,
		RespondedAt:    respondedAt,
	}
	return change
}

// Apply returns q with change applied. It does not validate; stores use it to
// build the record they return after a successful conditional write.
func Apply(q entities.QuoteRequest, change entities.StatusChange) entities.QuoteRequest {
	q.Status = change.To
	q.UpdatedAt = change.At
	if change.Response != nil {
		resp := *change.Response
		q.Response = &resp
	}
	return q
}
