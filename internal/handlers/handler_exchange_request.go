package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
)

// exchangeRequestHandler handles HTTP requests for the marketplace feed.
type exchangeRequestHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

func newExchangeRequestHandler(es portssvc.ExchangeSvcFacade) *exchangeRequestHandler {
	return &exchangeRequestHandler{exchangeService: es}
}

// registerExchangeRequestRoutes registers routes for exchange requests and
// their nested offers, messages and ledger entries.
func registerExchangeRequestRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newExchangeRequestHandler(services.Exchange)
	oh := newRateOfferHandler(services.Exchange)
	ch := newChatHandler(services.Chat)
	lh := newLedgerHandler(services.Ledger)

	requests := rg.Group("/exchange-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/cancel", h.cancelRequest)

		requests.POST("/:id/offers", oh.createOffer)
		requests.GET("/:id/offers", oh.listOffers)
		requests.POST("/:id/offers/:offerID/accept", oh.acceptOffer)

		requests.POST("/:id/messages", ch.postMessage)
		requests.GET("/:id/messages", ch.listMessages)

		requests.GET("/:id/transactions", lh.getRequestTransactions)
	}

	rg.GET("/users/me/exchange-requests", h.listMyRequests)
}

// createRequest godoc
// @Summary Post a new exchange request
// @Tags exchange-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateExchangeRequestRequest true "Exchange request details"
// @Success 201 {object} dto.ExchangeRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /exchange-requests [post]
func (h *exchangeRequestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateExchangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.exchangeService.CreateExchangeRequest(c.Request.Context(), req, requesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRequestResponse(request))
}

// listRequests godoc
// @Summary List exchange requests
// @Description Marketplace feed with optional status filter and cursor pagination
// @Tags exchange-requests
// @Produce json
// @Param status query string false "Filter by status" Enums(ACTIVE, COMPLETED, CANCELLED)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListExchangeRequestsResponse
// @Security BearerAuth
// @Router /exchange-requests [get]
func (h *exchangeRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListExchangeRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeService.ListExchangeRequests(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange requests")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listMyRequests godoc
// @Summary List the authenticated user's own exchange requests
// @Tags exchange-requests
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListExchangeRequestsResponse
// @Security BearerAuth
// @Router /users/me/exchange-requests [get]
func (h *exchangeRequestHandler) listMyRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListExchangeRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeService.ListUserExchangeRequests(c.Request.Context(), requesterID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list your exchange requests")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getRequest godoc
// @Summary Get an exchange request by ID
// @Tags exchange-requests
// @Produce json
// @Param id path string true "Exchange request ID"
// @Success 200 {object} dto.ExchangeRequestResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /exchange-requests/{id} [get]
func (h *exchangeRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	request, err := h.exchangeService.GetExchangeRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange request")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRequestResponse(request))
}

// cancelRequest godoc
// @Summary Cancel an exchange request
// @Description Owner only; rejects all pending offers
// @Tags exchange-requests
// @Produce json
// @Param id path string true "Exchange request ID"
// @Success 204 "Cancelled"
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Request is not active"
// @Security BearerAuth
// @Router /exchange-requests/{id}/cancel [post]
func (h *exchangeRequestHandler) cancelRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.exchangeService.CancelExchangeRequest(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to cancel exchange request")
		return
	}

	c.Status(http.StatusNoContent)
}
