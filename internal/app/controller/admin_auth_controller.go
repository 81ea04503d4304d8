package controller

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
)

type AdminAuthController struct {
	authService service.AdminAuthService
}

func NewAdminAuthController(authService service.AdminAuthService) *AdminAuthController {
	return &AdminAuthController{
		authService: authService,
	}
}

type AdminLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// Login exchanges the shared secret for a session token with an explicit
// issued-at and TTL
// POST /api/admin/login
func (ctrl *AdminAuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	session, err := ctrl.authService.Login(req.Token)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidAdminToken) {
			errors.Unauthorized(c, "Unauthorized")
			return
		}
		log.Error("Failed to issue admin session", err)
		errors.InternalError(c, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    session.Token,
		"issuedAt": session.IssuedAt,
		"ttl":      session.TTL,
	})
}

// Logout revokes the presented session for the remainder of its TTL. A
// shared-secret credential has no session to revoke and is a no-op.
// POST /api/admin/logout
func (ctrl *AdminAuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := c.GetHeader(middleware.AdminTokenHeader)
	if token == "" {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
	}

	if token != "" && !ctrl.authService.VerifySecret(token) {
		if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil && !stderrors.Is(err, service.ErrInvalidAdminToken) {
			log.Error("Failed to revoke admin session", err)
			errors.InternalError(c, "Failed to log out")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
