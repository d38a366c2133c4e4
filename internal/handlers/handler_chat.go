package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
)

// chatHandler handles HTTP requests for per-request negotiation messages.
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatService: cs}
}

// postMessage godoc
// @Summary Post a message to a request's negotiation feed
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Exchange request ID"
// @Param message body dto.CreateChatMessageRequest true "Message body"
// @Success 201 {object} dto.ChatMessageResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /exchange-requests/{id}/messages [post]
func (h *chatHandler) postMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	senderID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	message, err := h.chatService.PostMessage(c.Request.Context(), c.Param("id"), req, senderID)
	if err != nil {
		respondError(c, logger, err, "Failed to post message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToChatMessageResponse(message))
}

// listMessages godoc
// @Summary List a request's negotiation feed
// @Description Oldest first with cursor pagination
// @Tags chat
// @Produce json
// @Param id path string true "Exchange request ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListChatMessagesResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /exchange-requests/{id}/messages [get]
func (h *chatHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListChatMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.chatService.ListMessages(c.Request.Context(), c.Param("id"), params, callerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, resp)
}
