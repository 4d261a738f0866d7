package types

import "context"

// Fetcher provides preset search for a single source type.
// Each provider returns a static list of well known sources filtered by the query.
type Fetcher interface {
	SourceType() string
	Search(ctx context.Context, query string) ([]Source, error)
}
