package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fuseagg/fuse/pkg/lib/libtest"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHN struct {
	listings atomic.Int32
	items    atomic.Int32
	// listing is served for every *stories.json request
	listing string
	// item handles /v0/item/<id>.json
	item func(w http.ResponseWriter, id int)
}

func (f *fakeHN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "stories.json"):
		f.listings.Add(1)
		if f.listing == "" {
			http.Error(w, "listing unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, f.listing)
	case strings.Contains(r.URL.Path, "/item/"):
		f.items.Add(1)
		var id int
		_, err := fmt.Sscanf(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], "%d.json", &id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		f.item(w, id)
	default:
		http.NotFound(w, r)
	}
}

func writeStory(w http.ResponseWriter, id int) {
	_, _ = fmt.Fprintf(w, `{"id":%d,"type":"story","title":"Story %d","url":"https://example.com/%d"}`, id, id, id)
}

func newTestSource(t *testing.T, fake *fakeHN, metric string, limit int) *SourcePosts {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client, _ := libtest.NewClient(srv)

	logger := zerolog.Nop()
	s := NewSourcePosts()
	s.Metric = metric
	s.Limit = limit
	s.HTTPClient = client
	require.NoError(t, s.Initialize(&logger, &types.ProviderConfig{}))
	return s
}

func TestSourcePosts_Fetch(t *testing.T) {
	fake := &fakeHN{listing: `[11,22,33,44]`, item: writeStory}

	s := newTestSource(t, fake, "top", 3)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []types.Result{
		{Title: "Story 11", URL: "https://example.com/11"},
		{Title: "Story 22", URL: "https://example.com/22"},
		{Title: "Story 33", URL: "https://example.com/33"},
	}, results)
	assert.EqualValues(t, 1, fake.listings.Load())
	assert.EqualValues(t, 3, fake.items.Load())
}

func TestSourcePosts_FetchPreservesOrderWhenCompletedOutOfOrder(t *testing.T) {
	secondDone := make(chan struct{})

	fake := &fakeHN{
		listing: `[1,2,3]`,
		item: func(w http.ResponseWriter, id int) {
			if id == 2 {
				writeStory(w, id)
				close(secondDone)
				return
			}
			select {
			case <-secondDone:
			case <-time.After(5 * time.Second):
			}
			writeStory(w, id)
		},
	}

	s := newTestSource(t, fake, "best", 3)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []types.Result{
		{Title: "Story 1", URL: "https://example.com/1"},
		{Title: "Story 2", URL: "https://example.com/2"},
		{Title: "Story 3", URL: "https://example.com/3"},
	}, results)
}

func TestSourcePosts_FetchFailedStoryYieldsPlaceholder(t *testing.T) {
	fake := &fakeHN{
		listing: `[1,2,3]`,
		item: func(w http.ResponseWriter, id int) {
			if id == 2 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			writeStory(w, id)
		},
	}

	s := newTestSource(t, fake, "new", 3)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, types.Result{Title: "Story 1", URL: "https://example.com/1"}, results[0])
	assert.Equal(t, types.Result{}, results[1])
	assert.Equal(t, types.Result{Title: "Story 3", URL: "https://example.com/3"}, results[2])
}

func TestSourcePosts_FetchMissingFields(t *testing.T) {
	fake := &fakeHN{
		listing: `[7]`,
		item: func(w http.ResponseWriter, id int) {
			// Ask HN posts carry text instead of an url.
			_, _ = fmt.Fprintf(w, `{"id":%d,"type":"story","title":"Ask HN: anything"}`, id)
		},
	}

	results, err := newTestSource(t, fake, "top", 5).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Result{{Title: "Ask HN: anything"}}, results)
}

func TestSourcePosts_SequentialMatchesConcurrent(t *testing.T) {
	item := func(w http.ResponseWriter, id int) {
		if id%2 == 0 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		writeStory(w, id)
	}

	concurrent := newTestSource(t, &fakeHN{listing: `[1,2,3,4,5,6,7]`, item: item}, "top", 6)
	concurrentResults, err := concurrent.Fetch(context.Background())
	require.NoError(t, err)

	sequential := newTestSource(t, &fakeHN{listing: `[1,2,3,4,5,6,7]`, item: item}, "top", 6)
	sequential.Sequential = true
	sequentialResults, err := sequential.Fetch(context.Background())
	require.NoError(t, err)

	bounded := newTestSource(t, &fakeHN{listing: `[1,2,3,4,5,6,7]`, item: item}, "top", 6)
	bounded.MaxConcurrency = 2
	boundedResults, err := bounded.Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, concurrentResults, 6)
	assert.Equal(t, concurrentResults, sequentialResults)
	assert.Equal(t, concurrentResults, boundedResults)
}

func TestSourcePosts_FetchListingFailureIsFatal(t *testing.T) {
	fake := &fakeHN{item: writeStory}

	s := newTestSource(t, fake, "top", 3)
	results, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Empty(t, results)
	assert.Empty(t, s.Results())
	assert.Zero(t, fake.items.Load())
}

func TestSourcePosts_FetchInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		limit  int
	}{
		{name: "unknown metric", metric: "hot", limit: 3},
		{name: "empty metric", metric: "", limit: 3},
		{name: "negative limit", metric: "top", limit: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeHN{listing: `[1]`, item: writeStory}

			results, err := newTestSource(t, fake, tt.metric, tt.limit).Fetch(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
			assert.Zero(t, fake.listings.Load(), "no listing call expected")
		})
	}
}

func TestSourcePosts_MetricIsCaseInsensitive(t *testing.T) {
	fake := &fakeHN{listing: `[5]`, item: writeStory}

	results, err := newTestSource(t, fake, "BEST", 1).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Result{{Title: "Story 5", URL: "https://example.com/5"}}, results)
}

func TestSourcePosts_InitializeReadsProviderConfig(t *testing.T) {
	logger := zerolog.Nop()
	s := NewSourcePosts()
	require.NoError(t, s.Initialize(&logger, &types.ProviderConfig{
		HackerNewsSequential:     true,
		HackerNewsMaxConcurrency: 4,
	}))
	assert.True(t, s.Sequential)
	assert.Equal(t, 4, s.MaxConcurrency)
}

func TestSourcePosts_String(t *testing.T) {
	fake := &fakeHN{
		listing: `[1,2]`,
		item: func(w http.ResponseWriter, id int) {
			if id == 2 {
				http.NotFound(w, nil)
				return
			}
			writeStory(w, id)
		},
	}

	s := newTestSource(t, fake, "top", 2)
	_, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "HackerNews Source Results [Metric: top]\n* \t Story 1: https://example.com/1\n\n", s.String())
}
