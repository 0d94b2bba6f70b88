package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/common/logger"
	"github.com/yashrajoria/atelier-backend/services"
	"go.uber.org/zap"
)

// AdminUsernameKey holds the authenticated admin's username in the gin context.
const AdminUsernameKey = "admin_username"

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// AdminAuth rejects requests that do not carry the current admin session token.
func AdminAuth(admin services.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized.WithCode("UNAUTHORIZED"))
			return
		}

		session, err := admin.Validate(c.Request.Context(), token)
		if err != nil {
			appErr := apperrors.As(err)
			if appErr.Code >= http.StatusInternalServerError {
				logger.Error(c.Request.Context(), "Admin session check failed", err)
			} else {
				logger.Warn(c.Request.Context(), "Rejected admin request", zap.String("path", c.FullPath()))
			}
			c.AbortWithStatusJSON(appErr.Code, appErr.WithCode("UNAUTHORIZED"))
			return
		}

		c.Set(AdminUsernameKey, session.Username)
		c.Next()
	}
}
