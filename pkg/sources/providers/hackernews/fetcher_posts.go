package hackernews

import (
	"context"

	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

// PostsFetcher implements preset search functionality for HackerNews
type PostsFetcher struct {
	Logger *zerolog.Logger
}

func NewPostsFetcher(logger *zerolog.Logger) *PostsFetcher {
	return &PostsFetcher{
		Logger: logger,
	}
}

func (f *PostsFetcher) SourceType() string {
	return TypeHackerNewsPosts
}

func (f *PostsFetcher) Search(_ context.Context, _ string) ([]types.Source, error) {
	// Ignore the query, since the set of all available sources is small
	sources := make([]types.Source, 0, 3)
	for _, metric := range []string{MetricTop, MetricBest, MetricNew} {
		source := NewSourcePosts()
		source.Metric = metric
		sources = append(sources, source)
	}
	return sources, nil
}
