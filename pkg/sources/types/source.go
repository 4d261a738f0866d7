package types

import (
	"context"
	"fmt"

	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/rs/zerolog"
)

type Source interface {
	fmt.Stringer
	// UID is the unique identifier of the source and its parameters.
	// Example: "redditsubreddit:programming:top"
	UID() lib.TypedUID
	// Name is a short human-readable descriptor.
	// Example: "Programming subreddit"
	Name() string
	// Description provides more context about the specific source parameters.
	// Example: "Top posts from r/programming"
	Description() string
	// Initialize injects the logger and provider config. It performs no I/O.
	Initialize(logger *zerolog.Logger, config *ProviderConfig) error
	// Connect creates the upstream client handle. Calling it again re-creates the handle.
	Connect(ctx context.Context) error
	// Fetch retrieves, normalizes and stores the results.
	// Invalid parameters and recoverable upstream failures yield an empty slice and a nil error.
	// A non-nil error means a load-bearing upstream call failed.
	Fetch(ctx context.Context) ([]Result, error)
	// Results returns the results of the last Fetch.
	Results() []Result
}

// DefaultLimit is the number of results a source fetches when no limit is given.
const DefaultLimit = 10

// LoggerOrNop lets sources run without Initialize, e.g. in tests.
func LoggerOrNop(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
