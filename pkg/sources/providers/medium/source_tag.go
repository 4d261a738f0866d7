package medium

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

const TypeMediumTag = "mediumtag"

const defaultFeedURLTemplate = "https://medium.com/feed/tag/%s"

type SourceTag struct {
	Tag   string `json:"tag" validate:"required"`
	Limit int    `json:"limit" validate:"min=0"`
	// FeedURLTemplate receives the tag through a single %s verb.
	FeedURLTemplate string       `json:"feedUrlTemplate,omitempty"`
	HTTPClient      *http.Client `json:"-" validate:"-"`
	parser          *gofeed.Parser
	results         []types.Result
	logger          *zerolog.Logger
}

func NewSourceTag() *SourceTag {
	return &SourceTag{
		Limit:           types.DefaultLimit,
		FeedURLTemplate: defaultFeedURLTemplate,
	}
}

func (s *SourceTag) UID() lib.TypedUID {
	return lib.NewTypedUID(TypeMediumTag, s.Tag)
}

func (s *SourceTag) Name() string {
	return fmt.Sprintf("Medium #%s", s.Tag)
}

func (s *SourceTag) Description() string {
	return fmt.Sprintf("Latest stories tagged with #%s on Medium", s.Tag)
}

func (s *SourceTag) Initialize(logger *zerolog.Logger, _ *types.ProviderConfig) error {
	l := types.LoggerOrNop(logger).With().Str("source_uid", s.UID().String()).Logger()
	s.logger = &l
	return nil
}

// Connect prepares the feed parser. Feeds need no session.
func (s *SourceTag) Connect(_ context.Context) error {
	parser := gofeed.NewParser()
	parser.UserAgent = lib.FuseUserAgentString
	parser.Client = s.HTTPClient
	if parser.Client == nil {
		parser.Client = lib.DefaultHTTPClient
	}
	s.parser = parser
	return nil
}

func (s *SourceTag) Fetch(ctx context.Context) ([]types.Result, error) {
	logger := types.LoggerOrNop(s.logger)
	s.results = []types.Result{}

	if err := lib.ValidateStruct(s); err != nil {
		logger.Warn().Err(err).Msg("Skipping fetch with invalid parameters")
		return s.results, nil
	}

	if s.parser == nil {
		if err := s.Connect(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to connect")
			return s.results, nil
		}
	}

	feed, err := s.parser.ParseURLWithContext(s.feedURL(), ctx)
	if err != nil {
		logger.Error().Err(err).Str("url", s.feedURL()).Msg("Failed to parse feed")
		return s.results, nil
	}

	items := feed.Items
	if len(items) > s.Limit {
		items = items[:s.Limit]
	}

	results := make([]types.Result, 0, len(items))
	for _, item := range items {
		results = append(results, types.Result{
			Title: item.Title,
			URL:   item.Link,
		})
	}

	logger.Debug().Int("count", len(results)).Msg("Fetched stories")

	s.results = results
	return s.results, nil
}

func (s *SourceTag) Results() []types.Result {
	return s.results
}

func (s *SourceTag) String() string {
	return types.RenderResults(fmt.Sprintf("Medium Source Results [Tag: %s]", s.Tag), s.results)
}

func (s *SourceTag) feedURL() string {
	template := s.FeedURLTemplate
	if template == "" {
		template = defaultFeedURLTemplate
	}
	return fmt.Sprintf(template, s.Tag)
}
