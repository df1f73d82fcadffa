package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/contextkeys"
)

// AuthMiddleware validates the bearer token and stores its claims on the
// request context for handlers downstream.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header must be 'Bearer <token>'"))
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		c.Set(string(contextkeys.ClaimsContextKey), claims)
		c.Request = c.Request.WithContext(
			logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10)))
		c.Next()
	}
}

// AdminMiddleware requires the admin role. Mount after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(string(contextkeys.ClaimsContextKey))
		if !exists {
			abortWithError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		claims, ok := value.(*auth.Claims)
		if !ok || claims.Role != string(models.UserRoleAdmin) {
			abortWithError(c, apperrors.NewForbiddenError("Admin role required"))
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}
