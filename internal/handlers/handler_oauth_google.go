package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/middleware"
	"github.com/peerfx/peerfx_backend/internal/platform/config"
)

// GoogleOAuthHandler handles the Google sign-in flow.
type GoogleOAuthHandler struct {
	googleOAuth portssvc.GoogleOAuthSvcFacade
	userService portssvc.UserSvcFacade
	auth        *AuthHandler
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, auth *AuthHandler) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuth: services.GoogleOAuth,
		userService: services.User,
		auth:        auth,
	}
}

// registerGoogleOAuthRoutes registers the Google sign-in routes.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	auth := NewAuthHandler(services.User, services.Token, cfg)
	h := NewGoogleOAuthHandler(services, auth)

	google := r.Group("/api/v1/auth/google")
	{
		google.POST("/callback", h.Callback)
	}
}

// googleCallbackRequest carries either the authorization code or a raw ID token.
type googleCallbackRequest struct {
	Code    string `json:"code"`
	IDToken string `json:"idToken"`
}

// Callback godoc
// @Summary Complete Google sign-in
// @Description Exchanges a Google authorization code (or validates an ID token) and logs the user in
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body googleCallbackRequest true "Authorization code or ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid Google credentials"
// @Router /auth/google/callback [post]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req googleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	idTokenString := req.IDToken
	if idTokenString == "" {
		if req.Code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either code or idToken is required"})
			return
		}
		token, err := h.googleOAuth.ExchangeCodeForToken(c.Request.Context(), req.Code)
		if err != nil {
			respondError(c, logger, err, "Failed to exchange authorization code")
			return
		}
		rawIDToken, ok := token.Extra("id_token").(string)
		if !ok || rawIDToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google token response missing id_token"})
			return
		}
		idTokenString = rawIDToken
	}

	payload, err := h.googleOAuth.ValidateGoogleIDToken(c.Request.Context(), idTokenString)
	if err != nil {
		respondError(c, logger, err, "Failed to validate Google ID token")
		return
	}

	info, err := h.googleOAuth.UserInfoFromIDTokenPayload(payload)
	if err != nil {
		respondError(c, logger, err, "Failed to extract Google profile")
		return
	}

	user, err := h.userService.CreateOAuthUser(c.Request.Context(), info.Name, info.Email)
	if err != nil {
		respondError(c, logger, err, "Failed to provision user")
		return
	}

	h.auth.issueTokens(c, user, logger)
}
