package sources

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SearchAll(t *testing.T) {
	r := NewRegistry(nil)

	all, err := r.Search(context.Background(), "")
	require.NoError(t, err)

	types := map[string]bool{}
	for _, s := range all {
		types[s.UID().Type()] = true
	}
	assert.Len(t, types, len(SourceTypes()))
}

func TestRegistry_SearchRanksMatches(t *testing.T) {
	r := NewRegistry(nil)

	matches, err := r.Search(context.Background(), "golang")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Contains(t, matches[0].UID().String(), "golang")

	uids := make([]string, len(matches))
	for i, s := range matches {
		uids[i] = s.UID().String()
	}
	assert.Contains(t, uids, "redditsubreddit:golang:hot")
	assert.Contains(t, uids, "mediumtag:golang")
}

func TestRegistry_SearchNoMatch(t *testing.T) {
	r := NewRegistry(nil)

	matches, err := r.Search(context.Background(), "qqqqqqqqzzzz")
	require.NoError(t, err)

	// Only the custom medium tag built from the query itself can match.
	for _, s := range matches {
		assert.True(t, strings.HasPrefix(s.UID().String(), "mediumtag:"), s.UID().String())
	}
}
