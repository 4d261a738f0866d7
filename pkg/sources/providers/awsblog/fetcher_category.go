package awsblog

import (
	"context"

	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

// CategoryFetcher implements preset search functionality for AWS blog categories
type CategoryFetcher struct {
	Logger *zerolog.Logger
}

func NewCategoryFetcher(logger *zerolog.Logger) *CategoryFetcher {
	return &CategoryFetcher{
		Logger: logger,
	}
}

func (f *CategoryFetcher) SourceType() string {
	return TypeAWSBlogCategory
}

// Source: https://aws.amazon.com/blogs/
var presetCategories = []string{
	"aws",
	"architecture",
	"compute",
	"containers",
	"database",
	"devops",
	"developer",
	"machine-learning",
	"networking-and-content-delivery",
	"opensource",
	"security",
	"storage",
}

func (f *CategoryFetcher) Search(_ context.Context, _ string) ([]types.Source, error) {
	// Ignore the query, the category list is small and ranked by the registry
	sources := make([]types.Source, 0, len(presetCategories))
	for _, category := range presetCategories {
		source := NewSourceCategory()
		source.Category = category
		sources = append(sources, source)
	}
	return sources, nil
}
