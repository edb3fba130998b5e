package i

import (
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
)

// MazeMetrics records service-level measurements.
type MazeMetrics interface {
	// ObserveGeneration records one maze generation attempt.
	ObserveGeneration(outcome string, spec maze.GridSpec, elapsed time.Duration)

	// AddFixes records fixes accepted into route buffers.
	AddFixes(n int)
}
