package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/service"
)

const (
	UserIDContextKey = "userID"
	RoleContextKey   = "role"
)

func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			writeError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		claims, apiErr := authService.ParseToken(token)
		if apiErr != nil {
			writeError(c, apiErr)
			return
		}

		c.Set(UserIDContextKey, claims.Subject)
		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid bearer token is sent and
// lets guests through otherwise.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, apiErr := authService.ParseToken(token); apiErr == nil {
				c.Set(UserIDContextKey, claims.Subject)
				c.Set(RoleContextKey, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		writeError(c, apperrors.Forbidden("insufficient role"))
	}
}

func UserID(c *gin.Context) string {
	return contextString(c, UserIDContextKey)
}

func Role(c *gin.Context) string {
	return contextString(c, RoleContextKey)
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func contextString(c *gin.Context, key string) string {
	value, ok := c.Get(key)
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"details": apiErr.Details,
		},
	})
}
