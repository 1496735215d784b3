package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/freshline/backend/internal/infrastructure/auth"
	"github.com/freshline/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// ClaimsContextKey is the gin context key holding validated claims
	ClaimsContextKey = "jwt_claims"
	// UsernameContextKey is the gin context key holding the actor name
	UsernameContextKey = "jwt_username"
)

// Auth returns a middleware that requires a valid Bearer token and
// stores the operator identity on the context
func Auth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization header is missing or malformed")
			return
		}

		claims, err := authService.Validate(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Session has expired")
				return
			}
			abortUnauthorized(c, "Invalid session token")
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(UsernameContextKey, claims.Username)
		c.Next()
	}
}

// GetUsername returns the authenticated operator name, or "" when the
// request did not pass the Auth middleware
func GetUsername(c *gin.Context) string {
	return c.GetString(UsernameContextKey)
}

// GetClaims returns the validated claims, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsContextKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
