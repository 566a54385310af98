package auth

import (
	"strings"

	"github.com/avpavlenko/jobboard/internal/platform/actor"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// AuthMiddleware validates JWT access tokens and stores the resolved
// actor in the request context for downstream handlers.
func AuthMiddleware(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(actorContextKey, claims.ToActor())
		c.Next()
	}
}

// GetActor extracts the resolved actor from context.
func GetActor(c *gin.Context) (*actor.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return nil, false
	}
	a, ok := value.(*actor.Actor)
	return a, ok
}

// MustGetActor extracts the actor or writes an UNAUTHORIZED response
// and reports false, so handlers can return early in one line.
func MustGetActor(c *gin.Context) (*actor.Actor, bool) {
	a, ok := GetActor(c)
	if !ok {
		httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Authentication required")
		return nil, false
	}
	return a, true
}
