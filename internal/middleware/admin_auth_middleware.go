package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
)

// AdminTokenHeader is the simple shared-secret header the admin panel sends.
const AdminTokenHeader = "x-admin-token"

type AdminAuthMiddleware struct {
	authService service.AdminAuthService
}

func NewAdminAuthMiddleware(authService service.AdminAuthService) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		authService: authService,
	}
}

// Authenticate gates every /api/admin route. The caller may present the
// shared secret via the x-admin-token header or a bearer value; the bearer
// value may also be a session token issued by login.
func (m *AdminAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					log.Warn("Invalid authorization header format", map[string]interface{}{
						"path": c.Request.URL.Path,
					})
					errors.Unauthorized(c, "Unauthorized")
					c.Abort()
					return
				}
				token = parts[1]
			}
		}

		if token == "" {
			log.Warn("Missing admin credentials", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		// Shared secret first, then session token.
		if m.authService.VerifySecret(token) {
			c.Next()
			return
		}

		if err := m.authService.ValidateSession(c.Request.Context(), token); err != nil {
			log.Warn("Admin authentication failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			switch {
			case stderrors.Is(err, service.ErrSessionExpired):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionExpired, "Unauthorized")
			case stderrors.Is(err, service.ErrSessionRevoked):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionRevoked, "Unauthorized")
			default:
				errors.Unauthorized(c, "Unauthorized")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
