package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fuseagg/fuse/pkg/lib/libtest"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(titles ...string) string {
	children := make([]string, 0, len(titles))
	for i, title := range titles {
		children = append(children, fmt.Sprintf(
			`{"kind":"t3","data":{"id":"p%d","name":"t3_p%d","title":%q,"url":"https://example.com/%d","created_utc":1700000000}}`,
			i, i, title, i,
		))
	}
	return fmt.Sprintf(`{"kind":"Listing","data":{"after":null,"before":null,"children":[%s]}}`, strings.Join(children, ","))
}

type upstream struct {
	listings atomic.Int32
	tokens   atomic.Int32
	lastAuth atomic.Value
}

func newUpstream(t *testing.T) (*upstream, *http.Client) {
	t.Helper()

	u := &upstream{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/api/v1/access_token"):
			u.tokens.Add(1)
			_, _ = fmt.Fprint(w, `{"access_token":"test-token","token_type":"bearer","expires_in":3600}`)
		case strings.Contains(r.URL.Path, "/r/golang/hot"):
			u.listings.Add(1)
			u.lastAuth.Store(r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, listing("Hot 1", "Hot 2", "Hot 3"))
		case strings.Contains(r.URL.Path, "/r/golang/top"):
			u.listings.Add(1)
			u.lastAuth.Store(r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, listing("Top &amp; 1", "Top 2"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, _ := libtest.NewClient(srv)
	return u, client
}

func newTestSource(t *testing.T, client *http.Client, subreddit, metric string, limit int) *SourceSubreddit {
	t.Helper()

	logger := zerolog.Nop()
	s := NewSourceSubreddit()
	s.Subreddit = subreddit
	s.Metric = metric
	s.Limit = limit
	s.HTTPClient = client
	require.NoError(t, s.Initialize(&logger, &types.ProviderConfig{}))
	return s
}

func TestSourceSubreddit_FetchHot(t *testing.T) {
	u, client := newUpstream(t)

	s := newTestSource(t, client, "golang", "hot", 2)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []types.Result{
		{Title: "Hot 1", URL: "https://example.com/0"},
		{Title: "Hot 2", URL: "https://example.com/1"},
	}, results)
	assert.EqualValues(t, 1, u.listings.Load())
}

func TestSourceSubreddit_FetchTopIsCaseInsensitive(t *testing.T) {
	_, client := newUpstream(t)

	s := newTestSource(t, client, "golang", "TOP", 10)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []types.Result{
		{Title: "Top & 1", URL: "https://example.com/0"},
		{Title: "Top 2", URL: "https://example.com/1"},
	}, results)
}

func TestSourceSubreddit_FetchInvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		subreddit string
		metric    string
		limit     int
	}{
		{name: "bogus metric", subreddit: "golang", metric: "bogus", limit: 5},
		{name: "empty subreddit", subreddit: "", metric: "hot", limit: 5},
		{name: "negative limit", subreddit: "golang", metric: "hot", limit: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, client := newUpstream(t)

			s := newTestSource(t, client, tt.subreddit, tt.metric, tt.limit)
			require.NoError(t, s.Connect(context.Background()))

			results, err := s.Fetch(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
			assert.Zero(t, u.listings.Load(), "no listing call expected")
		})
	}
}

func TestSourceSubreddit_FetchUpstreamFailure(t *testing.T) {
	u, client := newUpstream(t)

	s := newTestSource(t, client, "unknown", "hot", 5)
	results, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, u.listings.Load())
}

func TestSourceSubreddit_Credentials(t *testing.T) {
	logger := zerolog.Nop()
	config := &types.ProviderConfig{RedditClientID: "env-id", RedditClientSecret: "env-secret"}

	t.Run("falls back to provider config", func(t *testing.T) {
		s := NewSourceSubreddit()
		require.NoError(t, s.Initialize(&logger, config))
		assert.Equal(t, "env-id", s.credentials.ID)
		assert.Equal(t, "env-secret", s.credentials.Secret)
	})

	t.Run("explicit credentials win", func(t *testing.T) {
		s := NewSourceSubreddit()
		s.AppAuth.ID = "flag-id"
		s.AppAuth.Secret = "flag-secret"
		require.NoError(t, s.Initialize(&logger, config))
		assert.Equal(t, "flag-id", s.credentials.ID)
		assert.Equal(t, "flag-secret", s.credentials.Secret)
	})

	t.Run("incomplete pair is rejected", func(t *testing.T) {
		s := NewSourceSubreddit()
		s.AppAuth.ID = "flag-id"
		assert.Error(t, s.Initialize(&logger, config))
	})

	t.Run("no credentials uses the read-only client", func(t *testing.T) {
		s := NewSourceSubreddit()
		require.NoError(t, s.Initialize(&logger, &types.ProviderConfig{}))
		require.NoError(t, s.Connect(context.Background()))
		assert.NotNil(t, s.client)
		assert.Empty(t, s.credentials.ID)
	})
}

func TestSourceSubreddit_FetchAuthenticated(t *testing.T) {
	u, client := newUpstream(t)

	logger := zerolog.Nop()
	s := NewSourceSubreddit()
	s.Subreddit = "golang"
	s.Metric = "hot"
	s.Limit = 1
	s.HTTPClient = client
	require.NoError(t, s.Initialize(&logger, &types.ProviderConfig{
		RedditClientID:     "id",
		RedditClientSecret: "secret",
	}))

	results, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Result{{Title: "Hot 1", URL: "https://example.com/0"}}, results)
	assert.EqualValues(t, 1, u.tokens.Load())
	assert.Equal(t, "Bearer test-token", u.lastAuth.Load())
}

func TestSourceSubreddit_String(t *testing.T) {
	_, client := newUpstream(t)

	s := newTestSource(t, client, "golang", "hot", 1)
	_, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Reddit Source Results [Sub: golang, Metric: hot]\n* \t Hot 1: https://example.com/0\n", s.String())
}
