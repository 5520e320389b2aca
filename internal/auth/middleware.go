package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the authenticated
// username is stored.
const ContextUserKey = "auth.user"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Required aborts with 401 unless the request carries a valid token.
func Required(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := service.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// Optional records the user when a valid token is present and lets the
// request through either way. Handlers downgrade their response for
// anonymous callers.
func Optional(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := service.Verify(token); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// UserFrom returns the authenticated username, or "" for anonymous.
func UserFrom(c *gin.Context) string {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(string); ok {
			return user
		}
	}
	return ""
}
