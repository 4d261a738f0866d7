package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/sources/providers/awsblog"
	"github.com/fuseagg/fuse/pkg/sources/providers/hackernews"
	"github.com/fuseagg/fuse/pkg/sources/providers/medium"
	"github.com/fuseagg/fuse/pkg/sources/providers/reddit"
	sourcetypes "github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	httpswagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openapiSpecYaml string

type PostsResponse struct {
	Posts map[string]string `json:"posts"`
}

type Source struct {
	Uid         string `json:"uid"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Server struct {
	sourceRegistry sourceRegistry
	providerConfig *sourcetypes.ProviderConfig
	httpClient     *http.Client
	cache          *lib.Cache[PostsResponse]
	logger         *zerolog.Logger
	http           http.Server
}

type sourceRegistry interface {
	Search(ctx context.Context, query string) ([]sourcetypes.Source, error)
}

type Option func(*Server)

// WithHTTPClient sets the client every backend source uses for upstream calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Server) {
		s.httpClient = client
	}
}

var _ ServerInterface = (*Server)(nil)

func NewServer(
	logger *zerolog.Logger,
	config *Config,
	providerConfig *sourcetypes.ProviderConfig,
	sourceRegistry sourceRegistry,
	opts ...Option,
) (*Server, error) {
	if err := lib.ValidateStruct(config); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	server := &Server{
		logger:         logger,
		providerConfig: providerConfig,
		sourceRegistry: sourceRegistry,
		cache:          lib.NewCache[PostsResponse](config.CacheTTL, logger),
		http: http.Server{
			Addr:    config.Addr(),
			Handler: corsMiddleware(mux, config.CORSOrigin),
		},
	}

	for _, opt := range opts {
		opt(server)
	}

	HandlerFromMux(server, mux)
	server.registerApiDocsHandlers(mux)

	return server, nil
}

func corsMiddleware(next http.Handler, originConfig string) http.Handler {
	origins := strings.Split(originConfig, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestOrigin := r.Header.Get("Origin")

		if len(origins) == 1 && origins[0] == "*" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if requestOrigin != "" && slices.Contains(origins, requestOrigin) {
			// CORS doesn't support multiple origins,
			// so we either set the origin in the header or not at all.
			w.Header().Set("Access-Control-Allow-Origin", requestOrigin)
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerApiDocsHandlers(mux *http.ServeMux) {
	mux.Handle("/docs/", httpswagger.Handler(
		httpswagger.URL("/docs/openapi.yaml"),
	))
	mux.HandleFunc("/docs/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")

		_, err := w.Write([]byte(openapiSpecYaml))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			s.logger.Error().Err(err).Msg("response write error")
		}
	})
}

// Handler returns the root handler, including middlewares.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Addr() string {
	return s.http.Addr
}

func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) Stop() error {
	return s.http.Close()
}

func (s *Server) GetRoot(w http.ResponseWriter, _ *http.Request) {
	s.serializeRes(w, struct{}{})
}

func (s *Server) ListSources(w http.ResponseWriter, r *http.Request, params ListSourcesParams) {
	var query string
	if params.Query != nil {
		query = *params.Query
	}

	result, err := s.sourceRegistry.Search(r.Context(), query)
	if err != nil {
		s.internalError(w, err, "search source presets")
		return
	}

	s.serializeRes(w, serializeSources(result))
}

func (s *Server) GetRedditPosts(w http.ResponseWriter, r *http.Request, subreddit string, metric string, params ListPostsParams) {
	source := reddit.NewSourceSubreddit()
	source.Subreddit = subreddit
	source.Metric = metric
	source.Limit = limitOrDefault(params.Limit)
	source.HTTPClient = s.httpClient

	s.servePosts(w, r, source, source.Limit)
}

func (s *Server) GetMediumPosts(w http.ResponseWriter, r *http.Request, tag string, params ListPostsParams) {
	source := medium.NewSourceTag()
	source.Tag = tag
	source.Limit = limitOrDefault(params.Limit)
	source.HTTPClient = s.httpClient

	s.servePosts(w, r, source, source.Limit)
}

func (s *Server) GetHackerNewsPosts(w http.ResponseWriter, r *http.Request, metric string, params ListPostsParams) {
	source := hackernews.NewSourcePosts()
	source.Metric = metric
	source.Limit = limitOrDefault(params.Limit)
	source.HTTPClient = s.httpClient

	s.servePosts(w, r, source, source.Limit)
}

func (s *Server) GetAWSBlogPosts(w http.ResponseWriter, r *http.Request, category string, params ListPostsParams) {
	source := awsblog.NewSourceCategory()
	source.Category = category
	source.Limit = limitOrDefault(params.Limit)
	source.HTTPClient = s.httpClient

	s.servePosts(w, r, source, source.Limit)
}

func (s *Server) servePosts(w http.ResponseWriter, r *http.Request, source sourcetypes.Source, limit int) {
	key := lib.HashParams(source.UID().String(), strconv.Itoa(limit))
	if res, ok := s.cache.Get(key); ok {
		s.serializeRes(w, res)
		return
	}

	if err := source.Initialize(s.logger, s.providerConfig); err != nil {
		s.badRequest(w, err, "initialize source")
		return
	}

	if err := source.Connect(r.Context()); err != nil {
		s.internalError(w, err, "connect source")
		return
	}

	results, err := source.Fetch(r.Context())
	if err != nil {
		s.badGateway(w, err, "fetch posts")
		return
	}

	res := PostsResponse{Posts: sourcetypes.ResultsToMap(results)}
	s.cache.Set(key, res)
	s.serializeRes(w, res)
}

func limitOrDefault(limit *int) int {
	if limit == nil {
		return sourcetypes.DefaultLimit
	}
	return *limit
}

func (s *Server) serializeRes(w http.ResponseWriter, res any) {
	w.Header().Add("Content-Type", "application/json")

	if res == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		s.internalError(w, err, "serialize response")
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error, msg string) {
	s.logger.Err(err).Msg(msg)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) badRequest(w http.ResponseWriter, err error, msg string) {
	s.logger.Err(err).Msg(msg)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (s *Server) badGateway(w http.ResponseWriter, err error, msg string) {
	s.logger.Err(err).Msg(msg)
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func serializeSources(in []sourcetypes.Source) []Source {
	out := make([]Source, 0, len(in))
	for _, e := range in {
		out = append(out, serializeSource(e))
	}
	return out
}

func serializeSource(in sourcetypes.Source) Source {
	return Source{
		Uid:         in.UID().String(),
		Type:        in.UID().Type(),
		Name:        in.Name(),
		Description: in.Description(),
	}
}
