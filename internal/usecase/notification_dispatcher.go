package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instauto/internal/domain/entities"
	"instauto/internal/domain/quote"
	"instauto/internal/infrastructure/logger"
	"instauto/internal/usecase/interfaces"
)

const DefaultNotificationTimeout = 3 * time.Second

var errNoRecipient = errors.New("notification has no recipient account")

// NotificationDispatcher turns successful transitions into in-app notifications.
//
// Dispatch is best-effort: failures are logged and swallowed, nothing is
// retried and the caller's transition is never affected. Each call enqueues at
// most one notification. A nil dispatcher discards everything.
type NotificationDispatcher struct {
	sink      interfaces.INotificationSink
	workshops interfaces.IWorkshopProfileRepository
	log       *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewNotificationDispatcher(
	sink interfaces.INotificationSink,
	workshops interfaces.IWorkshopProfileRepository,
	log *zap.Logger,
	timeout time.Duration,
) *NotificationDispatcher {
	if timeout <= 0 {
		timeout = DefaultNotificationTimeout
	}
	return &NotificationDispatcher{
		sink:      sink,
		workshops: workshops,
		log:       logger.OrNop(log),
		timeout:   timeout,
		now:       time.Now,
	}
}

// QuoteSubmitted notifies the workshop owner about a new pending request.
func (d *NotificationDispatcher) QuoteSubmitted(ctx context.Context, q entities.QuoteRequest, w entities.WorkshopProfile) {
	d.enqueue(ctx, q, quote.SubmittedNotice(q, w))
}

// QuoteResponded notifies the motorist that the workshop replied.
func (d *NotificationDispatcher) QuoteResponded(ctx context.Context, q entities.QuoteRequest, w entities.WorkshopProfile) {
	d.enqueue(ctx, q, quote.RespondedNotice(q, w))
}

// QuoteResolved notifies the workshop owner that the motorist accepted or
// rejected the offer.
func (d *NotificationDispatcher) QuoteResolved(ctx context.Context, q entities.QuoteRequest) {
	if d == nil {
		return
	}
	w, err := d.lookupWorkshop(ctx, q.WorkshopID)
	if err != nil {
		t := entities.NotificationQuoteAccepted
		if q.Status == entities.QuoteStatusRejected {
			t = entities.NotificationQuoteRejected
		}
		d.failed(q, t, err)
		return
	}
	n, ok := quote.ResolvedNotice(q, w)
	if !ok {
		return
	}
	d.enqueue(ctx, q, n)
}

func (d *NotificationDispatcher) lookupWorkshop(ctx context.Context, id string) (entities.WorkshopProfile, error) {
	if d.workshops == nil {
		return entities.WorkshopProfile{}, errors.New("workshop lookup not configured")
	}
	w, err := d.workshops.GetByID(ctx, id)
	if err != nil {
		return entities.WorkshopProfile{}, err
	}
	if w.ID == "" {
		return entities.WorkshopProfile{}, errors.New("workshop not found")
	}
	return w, nil
}

func (d *NotificationDispatcher) enqueue(ctx context.Context, q entities.QuoteRequest, n entities.Notification) {
	if d == nil || d.sink == nil {
		return
	}
	if n.AccountID == "" {
		d.failed(q, n.Type, errNoRecipient)
		return
	}

	n.ID = uuid.NewString()
	n.CreatedAt = d.now().UTC()

	// The transition is already committed; a cancelled request context must not drop the notice.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if err := d.sink.Enqueue(sendCtx, n); err != nil {
		d.failed(q, n.Type, err)
		return
	}
	d.log.Debug("[quote][notification] enqueued",
		zap.String("quote_request_id", q.ID),
		zap.String("notification_id", n.ID),
		zap.String("type", string(n.Type)),
		zap.String("account_id", n.AccountID),
	)
}

func (d *NotificationDispatcher) failed(q entities.QuoteRequest, t entities.NotificationType, err error) {
	d.log.Warn("[quote][notification] dispatch failed",
		zap.String("quote_request_id", q.ID),
		zap.String("workshop_id", q.WorkshopID),
		zap.String("status", string(q.Status)),
		zap.String("type", string(t)),
		zap.Error(err),
	)
}
