package sources

import (
	"fmt"

	"github.com/fuseagg/fuse/pkg/sources/providers/awsblog"
	"github.com/fuseagg/fuse/pkg/sources/providers/hackernews"
	"github.com/fuseagg/fuse/pkg/sources/providers/medium"
	"github.com/fuseagg/fuse/pkg/sources/providers/reddit"
	sourcetypes "github.com/fuseagg/fuse/pkg/sources/types"
)

// NewSource returns a source of the given type with default parameters.
func NewSource(sourceType string) (sourcetypes.Source, error) {
	var s sourcetypes.Source

	switch sourceType {
	case reddit.TypeRedditSubreddit:
		s = reddit.NewSourceSubreddit()
	case medium.TypeMediumTag:
		s = medium.NewSourceTag()
	case hackernews.TypeHackerNewsPosts:
		s = hackernews.NewSourcePosts()
	case awsblog.TypeAWSBlogCategory:
		s = awsblog.NewSourceCategory()
	default:
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}

	return s, nil
}

// SourceTypes lists every type accepted by NewSource.
func SourceTypes() []string {
	return []string{
		reddit.TypeRedditSubreddit,
		medium.TypeMediumTag,
		hackernews.TypeHackerNewsPosts,
		awsblog.TypeAWSBlogCategory,
	}
}
