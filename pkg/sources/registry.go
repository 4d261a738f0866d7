package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fuseagg/fuse/pkg/sources/providers/awsblog"
	"github.com/fuseagg/fuse/pkg/sources/providers/hackernews"
	"github.com/fuseagg/fuse/pkg/sources/providers/medium"
	"github.com/fuseagg/fuse/pkg/sources/providers/reddit"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
)

// Registry searches the preset sources of every provider.
type Registry struct {
	fetchers []types.Fetcher
	logger   *zerolog.Logger
}

func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		fetchers: []types.Fetcher{
			reddit.NewSubredditFetcher(logger),
			medium.NewTagFetcher(logger),
			hackernews.NewPostsFetcher(logger),
			awsblog.NewCategoryFetcher(logger),
		},
		logger: types.LoggerOrNop(logger),
	}
}

// Search returns presets matching query, best match first. An empty query returns all presets.
func (r *Registry) Search(ctx context.Context, query string) ([]types.Source, error) {
	var candidates []types.Source
	for _, fetcher := range r.fetchers {
		found, err := fetcher.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", fetcher.SourceType(), err)
		}
		candidates = append(candidates, found...)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return candidates, nil
	}

	targets := make([]string, len(candidates))
	for i, source := range candidates {
		targets[i] = searchTarget(source)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	matches := make([]types.Source, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, candidates[rank.OriginalIndex])
	}

	r.logger.Debug().
		Str("query", query).
		Int("candidates", len(candidates)).
		Int("matches", len(matches)).
		Msg("Searched presets")

	return matches, nil
}

func searchTarget(source types.Source) string {
	return strings.Join([]string{source.UID().String(), source.Name(), source.Description()}, " ")
}
