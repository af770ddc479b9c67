package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	request "instauto/internal/adapter/http/dto/request"
	response "instauto/internal/adapter/http/dto/response"
	"instauto/internal/adapter/http/middleware"
	"instauto/internal/domain/entities"
	"instauto/internal/usecase"
	"instauto/pkg"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_REQUEST_INPUT", "Invalid quote request payload", http.StatusBadRequest)
	errSessionRequired     = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "A session is required", http.StatusUnauthorized)
)

// QuoteRequestHandler exposes the quote request lifecycle over HTTP.
type QuoteRequestHandler struct {
	usecase usecase.IQuoteRequestUseCase
}

func NewQuoteRequestHandler(uc usecase.IQuoteRequestUseCase) *QuoteRequestHandler {
	return &QuoteRequestHandler{usecase: uc}
}

// Submit godoc
// @Summary      Submit a quote request
// @Description  Authenticated motorist asks a workshop for a quote. Contact fields default to the session profile.
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Param        payload  body      request.SubmitQuoteRequest  true  "Quote request"
// @Success      201      {object}  response.QuoteRequestResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quote-requests [post]
func (h *QuoteRequestHandler) Submit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Submit(c.Request.Context(), actor, payload.ToSubmission())
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuoteRequest(q))
}

// Get godoc
// @Summary   Get a quote request
// @Tags      quote-requests
// @Produce   json
// @Param     id   path      string  true  "Quote request id"
// @Success   200  {object}  response.QuoteRequestResponse
// @Failure   403  {object}  pkg.HTTPError
// @Failure   404  {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/{id} [get]
func (h *QuoteRequestHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	q, err := h.usecase.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(q))
}

// Respond godoc
// @Summary   Respond to a pending quote request
// @Tags      quote-requests
// @Accept    json
// @Produce   json
// @Param     id       path      string                       true  "Quote request id"
// @Param     payload  body      request.RespondQuoteRequest  true  "Workshop offer"
// @Success   200      {object}  response.QuoteRequestResponse
// @Failure   403      {object}  pkg.HTTPError
// @Failure   409      {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/{id}/respond [patch]
func (h *QuoteRequestHandler) Respond(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.RespondQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Respond(c.Request.Context(), actor, c.Param("id"), payload.ToOffer())
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(q))
}

// Accept godoc
// @Summary   Accept a workshop offer
// @Tags      quote-requests
// @Produce   json
// @Param     id   path      string  true  "Quote request id"
// @Success   200  {object}  response.QuoteRequestResponse
// @Failure   409  {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/{id}/accept [patch]
func (h *QuoteRequestHandler) Accept(c *gin.Context) {
	h.transition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error) {
		return h.usecase.Resolve(ctx, actor, id, entities.QuoteStatusAccepted)
	})
}

// Reject godoc
// @Summary   Reject a workshop offer
// @Tags      quote-requests
// @Produce   json
// @Param     id   path      string  true  "Quote request id"
// @Success   200  {object}  response.QuoteRequestResponse
// @Failure   409  {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/{id}/reject [patch]
func (h *QuoteRequestHandler) Reject(c *gin.Context) {
	h.transition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error) {
		return h.usecase.Resolve(ctx, actor, id, entities.QuoteStatusRejected)
	})
}

// Cancel godoc
// @Summary   Cancel a pending quote request
// @Tags      quote-requests
// @Produce   json
// @Param     id   path      string  true  "Quote request id"
// @Success   200  {object}  response.QuoteRequestResponse
// @Failure   409  {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/{id}/cancel [patch]
func (h *QuoteRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.usecase.Cancel)
}

// ListPendingForWorkshop godoc
// @Summary   List pending quote requests of a workshop
// @Tags      workshops
// @Produce   json
// @Param     workshop_id  path      string  true  "Workshop id"
// @Success   200          {object}  response.QuoteRequestListResponse
// @Failure   403          {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /workshops/{workshop_id}/quote-requests/pending [get]
func (h *QuoteRequestHandler) ListPendingForWorkshop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	items, err := h.usecase.ListPendingForOwner(c.Request.Context(), actor, c.Param("workshop_id"))
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequests(items))
}

// ListMotoristHistory godoc
// @Summary   List the caller's quote requests
// @Tags      motorists
// @Produce   json
// @Success   200  {object}  response.QuoteRequestListResponse
// @Security  Bearer
// @Router    /motorists/me/quote-requests [get]
func (h *QuoteRequestHandler) ListMotoristHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	items, err := h.usecase.ListHistoryForMotorist(c.Request.Context(), actor)
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequests(items))
}

func (h *QuoteRequestHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, actor entities.Actor, id string) (entities.QuoteRequest, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	q, err := apply(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteRequest(q))
}

func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || strings.TrimSpace(actor.AccountID) == "" {
		c.JSON(errSessionRequired.HTTPStatus, errSessionRequired.ToHTTPError())
		return entities.Actor{}, false
	}
	return actor, true
}

func writeQuoteRequestError(c *gin.Context, err error) {
	appErr := mapQuoteRequestError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapQuoteRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteRequest):
		return pkg.NewDomainError("INVALID_QUOTE_REQUEST", detail(err), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", detail(err), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrNotAuthorized):
		return pkg.NewDomainErrorSimple("NOT_AUTHORIZED", "Not allowed to act on this quote request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrWorkshopNotEligible):
		return pkg.NewDomainErrorSimple("WORKSHOP_NOT_ELIGIBLE", "Workshop is not accepting quote requests", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteRequestNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_REQUEST_NOT_FOUND", "Quote request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidAttachment):
		return pkg.NewDomainError("INVALID_ATTACHMENT", detail(err), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrStorageDisabled):
		return pkg.NewDomainErrorSimple("ATTACHMENTS_DISABLED", "Attachment storage is not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// detail keeps the human readable part of a wrapped sentinel error.
func detail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
