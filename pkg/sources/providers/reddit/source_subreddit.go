package reddit

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

const TypeRedditSubreddit = "redditsubreddit"

const (
	MetricHot = "hot"
	MetricTop = "top"
)

type SourceSubreddit struct {
	Subreddit string `json:"subreddit"`
	Limit     int    `json:"limit"`
	Metric    string `json:"metric"`
	// AppAuth overrides the credentials from the provider config.
	AppAuth struct {
		ID     string `json:"id"`
		Secret string `json:"secret"`
	} `json:"auth"`
	HTTPClient  *http.Client `json:"-"`
	credentials reddit.Credentials
	client      *reddit.Client
	results     []types.Result
	logger      *zerolog.Logger
}

// listingParams is the validated, normalized form of the listing parameters.
type listingParams struct {
	Subreddit string `validate:"required"`
	Limit     int    `validate:"min=0"`
	Metric    string `validate:"required,oneof=hot top"`
}

func NewSourceSubreddit() *SourceSubreddit {
	return &SourceSubreddit{
		Limit:  types.DefaultLimit,
		Metric: MetricHot,
	}
}

func (s *SourceSubreddit) UID() lib.TypedUID {
	return lib.NewTypedUID(TypeRedditSubreddit, s.Subreddit, strings.ToLower(s.Metric))
}

func (s *SourceSubreddit) Name() string {
	return fmt.Sprintf("%s subreddit", lib.Capitalize(s.Subreddit))
}

func (s *SourceSubreddit) Description() string {
	return fmt.Sprintf("%s posts from r/%s", lib.Capitalize(strings.ToLower(s.Metric)), s.Subreddit)
}

// Initialize resolves credentials once: explicit AppAuth wins over the provider config.
func (s *SourceSubreddit) Initialize(logger *zerolog.Logger, config *types.ProviderConfig) error {
	l := types.LoggerOrNop(logger).With().Str("source_uid", s.UID().String()).Logger()
	s.logger = &l

	s.credentials = reddit.Credentials{}
	switch {
	case s.AppAuth.ID != "" || s.AppAuth.Secret != "":
		s.credentials.ID = s.AppAuth.ID
		s.credentials.Secret = s.AppAuth.Secret
	case config != nil:
		s.credentials.ID = config.RedditClientID
		s.credentials.Secret = config.RedditClientSecret
	}

	if (s.credentials.ID == "") != (s.credentials.Secret == "") {
		return fmt.Errorf("reddit credentials require both client id and secret")
	}

	return nil
}

func (s *SourceSubreddit) Connect(_ context.Context) error {
	opts := []reddit.Opt{
		// The client is copied, the authenticated transport must not leak into shared clients.
		reddit.WithHTTPClient(lib.WithUserAgent(s.HTTPClient)),
		reddit.WithUserAgent(lib.FuseUserAgentString),
	}

	var client *reddit.Client
	var err error

	if s.credentials.ID != "" && s.credentials.Secret != "" {
		client, err = reddit.NewClient(s.credentials, opts...)
	} else {
		client, err = reddit.NewReadonlyClient(opts...)
	}

	if err != nil {
		return fmt.Errorf("create reddit client: %w", err)
	}

	s.client = client

	return nil
}

func (s *SourceSubreddit) Fetch(ctx context.Context) ([]types.Result, error) {
	logger := types.LoggerOrNop(s.logger)
	s.results = []types.Result{}

	params := listingParams{
		Subreddit: s.Subreddit,
		Limit:     s.Limit,
		Metric:    strings.ToLower(s.Metric),
	}
	if err := lib.ValidateStruct(&params); err != nil {
		logger.Warn().Err(err).Msg("Skipping fetch with invalid parameters")
		return s.results, nil
	}

	if s.client == nil {
		if err := s.Connect(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to connect")
			return s.results, nil
		}
	}

	posts, _, err := s.fetchByMetric(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch posts")
		return s.results, nil
	}

	logger.Debug().Int("count", len(posts)).Msg("Fetched posts")

	results := make([]types.Result, 0, len(posts))
	for _, post := range posts {
		if len(results) == params.Limit {
			break
		}
		results = append(results, types.Result{
			Title: html.UnescapeString(post.Title),
			URL:   post.URL,
		})
	}

	s.results = results
	return s.results, nil
}

func (s *SourceSubreddit) fetchByMetric(ctx context.Context, params listingParams) ([]*reddit.Post, *reddit.Response, error) {
	opts := reddit.ListOptions{
		Limit: params.Limit,
	}

	switch params.Metric {
	case MetricHot:
		return s.client.Subreddit.HotPosts(ctx, params.Subreddit, &opts)
	case MetricTop:
		return s.client.Subreddit.TopPosts(ctx, params.Subreddit, &reddit.ListPostOptions{
			ListOptions: opts,
		})
	}

	return nil, nil, fmt.Errorf("invalid metric: %s", params.Metric)
}

func (s *SourceSubreddit) Results() []types.Result {
	return s.results
}

func (s *SourceSubreddit) String() string {
	header := fmt.Sprintf("Reddit Source Results [Sub: %s, Metric: %s]", s.Subreddit, s.Metric)
	return types.RenderResults(header, s.results)
}
