package identity

import (
	"net/http"
	"strings"

	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRouteClaims is the key used to store route token claims in the Gin context.
	ContextRouteClaims = "routeClaims"
)

// Authorize rejects requests without a valid Bearer route token and stores
// the token's claims in the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing route token"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid route token"})
			return
		}

		c.Set(ContextRouteClaims, claims)
		c.Next()
	}
}

// ClaimedRouteID returns the route the request's token may write to.
func ClaimedRouteID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextRouteClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := claims[i.RouteIDClaim].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
