package i

import (
	"time"
)

// RouteIDClaim is the token claim naming the route a token may write to.
const RouteIDClaim = "routeID"

// Tokenizer defines methods for generating and decoding tokens.
type Tokenizer interface {
	// Generate creates a token with the given claims and expiration duration.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	Decode(token string) (map[string]interface{}, error)
}
