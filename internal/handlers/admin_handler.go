package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"snackbar/internal/middleware"
	"snackbar/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(adminService services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	token, err := h.adminService.Login(c.Request.Context(), req.Password, c.ClientIP())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid password"})
	case errors.Is(err, services.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many failed login attempts, try again later"})
	default:
		respondError(c, h.logger, err)
	}
}

// Logout handles POST /api/admin/logout. It always answers 204.
func (h *AdminHandler) Logout(c *gin.Context) {
	if token := middleware.BearerToken(c.GetHeader("Authorization")); token != "" {
		h.adminService.Logout(token)
	}
	c.Status(http.StatusNoContent)
}
