package reddit

import (
	"context"
	"strings"

	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

// SubredditFetcher implements preset search functionality for Reddit subreddits
type SubredditFetcher struct {
	Logger *zerolog.Logger
}

func NewSubredditFetcher(logger *zerolog.Logger) *SubredditFetcher {
	return &SubredditFetcher{
		Logger: logger,
	}
}

func (f *SubredditFetcher) SourceType() string {
	return TypeRedditSubreddit
}

var popularSubreddits = []struct {
	name        string
	description string
}{
	{"programming", "Computer programming discussions"},
	{"MachineLearning", "Machine learning research and discussions"},
	{"javascript", "JavaScript programming language"},
	{"Python", "Python programming language"},
	{"golang", "Go programming language"},
	{"rust", "Rust programming language"},
	{"webdev", "Web development discussions"},
	{"startups", "Startup discussions and news"},
	{"technology", "Technology news and discussions"},
	{"science", "Science news and discussions"},
	{"showerthoughts", "Miniature epiphanies"},
	{"linux", "Linux operating system"},
	{"sysadmin", "System administration"},
	{"devops", "DevOps practices and tools"},
	{"netsec", "Network security news"},
}

func (f *SubredditFetcher) Search(_ context.Context, query string) ([]types.Source, error) {
	query = strings.ToLower(query)
	var matchingSources []types.Source

	for _, sub := range popularSubreddits {
		subName := strings.ToLower(sub.name)
		description := strings.ToLower(sub.description)

		if query == "" || strings.Contains(subName, query) || strings.Contains(description, query) {
			for _, metric := range []string{MetricHot, MetricTop} {
				source := NewSourceSubreddit()
				source.Subreddit = sub.name
				source.Metric = metric
				matchingSources = append(matchingSources, source)
			}
		}
	}

	types.LoggerOrNop(f.Logger).Debug().
		Str("query", query).
		Int("matches", len(matchingSources)).
		Msg("Reddit fetcher found subreddits")

	return matchingSources, nil
}
