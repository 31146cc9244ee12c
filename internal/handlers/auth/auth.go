// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/auth"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the operator and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(
		c.Request.Context(),
		req.Email,
		req.Password,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout revokes the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Unauthorized(c, "missing authorization token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// LogoutAll revokes every active session
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authService.LogoutAll(c.Request.Context()); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "all sessions revoked", nil)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
