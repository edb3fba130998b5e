package i

import "github.com/gin-gonic/gin"

// Controller registers a group of endpoints on the router.
type Controller interface {
	// RegisterPublic registers endpoints reachable without a token.
	RegisterPublic(*gin.RouterGroup)
	// RegisterProtected registers endpoints behind the authorization middleware.
	RegisterProtected(*gin.RouterGroup)
}
