package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
)

// balanceHandler handles HTTP requests for per-currency balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance routes under the authenticated group.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.getBalances)
		balances.GET("/:currencyCode", h.getBalance)
		balances.POST("/deposit", h.depositFunds)
	}
}

// getBalances godoc
// @Summary List the authenticated user's balances
// @Tags balances
// @Produce json
// @Success 200 {array} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balances, err := h.balanceService.GetBalances(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// getBalance godoc
// @Summary Get the authenticated user's balance in one currency
// @Tags balances
// @Produce json
// @Param currencyCode path string true "Currency code"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Unknown currency"
// @Security BearerAuth
// @Router /balances/{currencyCode} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), userID, c.Param("currencyCode"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// depositFunds godoc
// @Summary Deposit funds into a balance
// @Description Credits the authenticated user's balance in one currency
// @Tags balances
// @Accept json
// @Produce json
// @Param deposit body dto.DepositFundsRequest true "Deposit details"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /balances/deposit [post]
func (h *balanceHandler) depositFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DepositFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	balance, err := h.balanceService.DepositFunds(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to deposit funds")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
