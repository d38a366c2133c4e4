package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
)

// rateOfferHandler handles HTTP requests for offers and settlement.
type rateOfferHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

func newRateOfferHandler(es portssvc.ExchangeSvcFacade) *rateOfferHandler {
	return &rateOfferHandler{exchangeService: es}
}

// createOffer godoc
// @Summary Place a rate offer on an exchange request
// @Description Bidders compete on rate; the total amount is computed server-side
// @Tags offers
// @Accept json
// @Produce json
// @Param id path string true "Exchange request ID"
// @Param offer body dto.CreateRateOfferRequest true "Offer details"
// @Success 201 {object} dto.RateOfferResponse
// @Failure 400 {object} map[string]string "Invalid input or self-bid"
// @Failure 409 {object} map[string]string "Request is not active"
// @Security BearerAuth
// @Router /exchange-requests/{id}/offers [post]
func (h *rateOfferHandler) createOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bidderID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	offer, err := h.exchangeService.CreateRateOffer(c.Request.Context(), c.Param("id"), req, bidderID)
	if err != nil {
		respondError(c, logger, err, "Failed to place offer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRateOfferResponse(offer))
}

// listOffers godoc
// @Summary List offers on an exchange request
// @Tags offers
// @Produce json
// @Param id path string true "Exchange request ID"
// @Success 200 {array} dto.RateOfferResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /exchange-requests/{id}/offers [get]
func (h *rateOfferHandler) listOffers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	offers, err := h.exchangeService.ListOffersForRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list offers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateOfferResponse(offers))
}

// acceptOffer godoc
// @Summary Accept an offer and settle the exchange
// @Description Owner only. Atomically completes the request, rejects sibling offers, moves both currency legs and appends the ledger entries. At most one of any concurrent accepts succeeds.
// @Tags offers
// @Accept json
// @Produce json
// @Param id path string true "Exchange request ID"
// @Param offerID path string true "Rate offer ID"
// @Param body body dto.AcceptOfferRequest true "Terms acceptance"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Terms not accepted"
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Request already settled or offer not pending"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /exchange-requests/{id}/offers/{offerID}/accept [post]
func (h *rateOfferHandler) acceptOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	acceptingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AcceptOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.exchangeService.AcceptOffer(c.Request.Context(), c.Param("id"), c.Param("offerID"), acceptingUserID, req.TermsAccepted)
	if err != nil {
		respondError(c, logger, err, "Failed to accept offer")
		return
	}

	c.JSON(http.StatusOK, settlement)
}
