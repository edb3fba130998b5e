package maze

import (
	"math/rand"
	"time"
)

// Random is the source of randomness used when carving. *rand.Rand satisfies it.
// Implementations are not expected to be goroutine-safe; use one per carve.
type Random interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRandom returns a deterministic generator: the same seed always yields
// the same sequence, and therefore the same maze for the same grid and cells.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// maxSeed keeps generated seeds exactly representable as a JSON number.
const maxSeed = 1<<53 - 1

// NewSeed returns a clock-derived seed for callers that did not ask for a
// reproducible maze.
func NewSeed() int64 {
	return time.Now().UnixNano() & maxSeed
}
