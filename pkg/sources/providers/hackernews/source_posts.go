package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexferrari88/gohn/pkg/gohn"
	"github.com/alitto/pond/v2"
	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

const TypeHackerNewsPosts = "hackernewsposts"

const (
	MetricTop  = "top"
	MetricBest = "best"
	MetricNew  = "new"
)

type SourcePosts struct {
	Metric     string       `json:"metric"`
	Limit      int          `json:"limit"`
	HTTPClient *http.Client `json:"-"`
	// Sequential resolves story details one at a time. Output is identical to the fan-out.
	Sequential bool `json:"-"`
	// MaxConcurrency bounds the fan-out. Zero means one worker per story.
	MaxConcurrency int `json:"-"`
	client         *gohn.Client
	results        []types.Result
	logger         *zerolog.Logger
}

type listingParams struct {
	Metric string `validate:"required,oneof=top best new"`
	Limit  int    `validate:"min=0"`
}

func NewSourcePosts() *SourcePosts {
	return &SourcePosts{
		Metric: MetricTop,
		Limit:  types.DefaultLimit,
	}
}

func (s *SourcePosts) UID() lib.TypedUID {
	return lib.NewTypedUID(TypeHackerNewsPosts, strings.ToLower(s.Metric))
}

func (s *SourcePosts) Name() string {
	return fmt.Sprintf("%s on Hacker News", lib.Capitalize(strings.ToLower(s.Metric)))
}

func (s *SourcePosts) Description() string {
	switch strings.ToLower(s.Metric) {
	case MetricTop:
		return "Top trending stories from Hacker News"
	case MetricNew:
		return "Latest new stories from Hacker News"
	case MetricBest:
		return "Best stories from Hacker News"
	default:
		return fmt.Sprintf("%s stories from Hacker News", lib.Capitalize(s.Metric))
	}
}

func (s *SourcePosts) Initialize(logger *zerolog.Logger, config *types.ProviderConfig) error {
	l := types.LoggerOrNop(logger).With().Str("source_uid", s.UID().String()).Logger()
	s.logger = &l

	if config != nil {
		s.Sequential = s.Sequential || config.HackerNewsSequential
		if s.MaxConcurrency == 0 {
			s.MaxConcurrency = config.HackerNewsMaxConcurrency
		}
	}

	return nil
}

func (s *SourcePosts) Connect(_ context.Context) error {
	client, err := gohn.NewClient(lib.WithUserAgent(s.HTTPClient))
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	s.client = client

	return nil
}

// Fetch lists story IDs and resolves the first Limit of them.
// A failed listing is returned as an error, a failed story only blanks its own slot.
func (s *SourcePosts) Fetch(ctx context.Context) ([]types.Result, error) {
	logger := types.LoggerOrNop(s.logger)
	s.results = []types.Result{}

	params := listingParams{
		Metric: strings.ToLower(s.Metric),
		Limit:  s.Limit,
	}
	if err := lib.ValidateStruct(&params); err != nil {
		logger.Warn().Err(err).Msg("Skipping fetch with invalid parameters")
		return s.results, nil
	}

	if s.client == nil {
		if err := s.Connect(ctx); err != nil {
			return s.results, fmt.Errorf("connect: %w", err)
		}
	}

	storyIDs, err := s.fetchStoryIDs(ctx, params.Metric)
	if err != nil {
		return s.results, fmt.Errorf("fetch story IDs: %w", err)
	}

	if len(storyIDs) > params.Limit {
		storyIDs = storyIDs[:params.Limit]
	}

	var results []types.Result
	if s.Sequential {
		results = s.fetchStoriesSequential(ctx, storyIDs)
	} else {
		results = s.fetchStoriesConcurrent(ctx, storyIDs)
	}

	logger.Debug().
		Int("count", len(results)).
		Bool("sequential", s.Sequential).
		Msg("Fetched hacker news stories")

	s.results = results
	return s.results, nil
}

func (s *SourcePosts) fetchStoryIDs(ctx context.Context, metric string) ([]*int, error) {
	switch metric {
	case MetricTop:
		return s.client.Stories.GetTopIDs(ctx)
	case MetricNew:
		return s.client.Stories.GetNewIDs(ctx)
	case MetricBest:
		return s.client.Stories.GetBestIDs(ctx)
	default:
		return nil, fmt.Errorf("invalid metric: %s", metric)
	}
}

func (s *SourcePosts) fetchStoriesSequential(ctx context.Context, storyIDs []*int) []types.Result {
	results := make([]types.Result, len(storyIDs))
	for i, id := range storyIDs {
		results[i] = s.fetchStory(ctx, id)
	}
	return results
}

// fetchStoriesConcurrent fans out one task per story. Each task owns results[i],
// so the output follows the ID order regardless of completion order.
func (s *SourcePosts) fetchStoriesConcurrent(ctx context.Context, storyIDs []*int) []types.Result {
	results := make([]types.Result, len(storyIDs))
	if len(storyIDs) == 0 {
		return results
	}

	concurrency := s.MaxConcurrency
	if concurrency <= 0 || concurrency > len(storyIDs) {
		concurrency = len(storyIDs)
	}

	pool := pond.NewPool(concurrency)

	for i, id := range storyIDs {
		pool.Submit(func() {
			results[i] = s.fetchStory(ctx, id)
		})
	}

	pool.StopAndWait()

	return results
}

// fetchStory maps one story to a Result. Any failure yields the empty Result.
func (s *SourcePosts) fetchStory(ctx context.Context, id *int) types.Result {
	logger := types.LoggerOrNop(s.logger)

	if id == nil {
		logger.Debug().Msg("Skipping nil story ID")
		return types.Result{}
	}

	storyLogger := logger.With().Int("story_id", *id).Logger()

	story, err := s.client.Items.Get(ctx, *id)
	if err != nil {
		storyLogger.Warn().Err(err).Msg("Failed to fetch hacker news story")
		return types.Result{}
	}

	if story == nil {
		storyLogger.Debug().Msg("Fetched story is nil")
		return types.Result{}
	}

	return types.Result{
		Title: deref(story.Title),
		URL:   deref(story.URL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *SourcePosts) Results() []types.Result {
	return s.results
}

func (s *SourcePosts) String() string {
	return types.RenderResults(fmt.Sprintf("HackerNews Source Results [Metric: %s]", s.Metric), s.results)
}
