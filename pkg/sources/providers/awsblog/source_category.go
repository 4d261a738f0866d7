package awsblog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

const TypeAWSBlogCategory = "awsblogcategory"

const defaultBaseURL = "https://aws.amazon.com/blogs"

// SourceCategory reads the feed of a single AWS blog category.
// No category check is done up front: an unknown category 404s upstream
// and yields an empty result.
type SourceCategory struct {
	Category   string       `json:"category"`
	Limit      int          `json:"limit" validate:"min=0"`
	BaseURL    string       `json:"baseUrl,omitempty"`
	HTTPClient *http.Client `json:"-" validate:"-"`
	parser     *gofeed.Parser
	results    []types.Result
	logger     *zerolog.Logger
}

func NewSourceCategory() *SourceCategory {
	return &SourceCategory{
		Limit:   types.DefaultLimit,
		BaseURL: defaultBaseURL,
	}
}

func (s *SourceCategory) UID() lib.TypedUID {
	return lib.NewTypedUID(TypeAWSBlogCategory, s.Category)
}

func (s *SourceCategory) Name() string {
	return fmt.Sprintf("AWS %s Blog", lib.Capitalize(strings.ReplaceAll(s.Category, "-", " ")))
}

func (s *SourceCategory) Description() string {
	return fmt.Sprintf("Posts from the AWS %s blog", s.Category)
}

func (s *SourceCategory) Initialize(logger *zerolog.Logger, _ *types.ProviderConfig) error {
	l := types.LoggerOrNop(logger).With().Str("source_uid", s.UID().String()).Logger()
	s.logger = &l
	return nil
}

func (s *SourceCategory) Connect(_ context.Context) error {
	parser := gofeed.NewParser()
	parser.UserAgent = lib.FuseUserAgentString
	parser.Client = s.HTTPClient
	if parser.Client == nil {
		parser.Client = lib.DefaultHTTPClient
	}
	s.parser = parser
	return nil
}

func (s *SourceCategory) Fetch(ctx context.Context) ([]types.Result, error) {
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

	feedURL := s.feedURL()
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		logger.Error().Err(err).Str("url", feedURL).Msg("Failed to parse feed")
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
			URL:   itemURL(item),
		})
	}

	s.results = results
	return s.results, nil
}

func (s *SourceCategory) Results() []types.Result {
	return s.results
}

func (s *SourceCategory) String() string {
	return types.RenderResults(fmt.Sprintf("AWS Blog Source Results [Category: %s]", s.Category), s.results)
}

func (s *SourceCategory) feedURL() string {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/%s/feed", strings.TrimRight(base, "/"), s.Category)
}

// itemURL prefers the first entry of the links collection.
func itemURL(item *gofeed.Item) string {
	if len(item.Links) > 0 && item.Links[0] != "" {
		return item.Links[0]
	}
	return item.Link
}
