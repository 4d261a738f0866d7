package medium

import (
	"context"

	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

// TagFetcher implements preset search functionality for Medium tags
type TagFetcher struct {
	Logger *zerolog.Logger
}

func NewTagFetcher(logger *zerolog.Logger) *TagFetcher {
	return &TagFetcher{
		Logger: logger,
	}
}

func (f *TagFetcher) SourceType() string {
	return TypeMediumTag
}

var presetTags = []string{
	"programming",
	"software-engineering",
	"golang",
	"python",
	"javascript",
	"rust",
	"devops",
	"kubernetes",
	"machine-learning",
	"data-science",
	"startup",
	"productivity",
}

func (f *TagFetcher) Search(_ context.Context, query string) ([]types.Source, error) {
	sources := make([]types.Source, 0, len(presetTags))
	for _, tag := range presetTags {
		source := NewSourceTag()
		source.Tag = tag
		sources = append(sources, source)
	}

	// Custom tag (that's not necessarily valid) so any Medium tag can be followed
	if query != "" && !containsTag(query) {
		source := NewSourceTag()
		source.Tag = query
		sources = append(sources, source)
	}

	return sources, nil
}

func containsTag(tag string) bool {
	for _, t := range presetTags {
		if t == tag {
			return true
		}
	}
	return false
}
