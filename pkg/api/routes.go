package api

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// ListPostsParams defines parameters shared by the post listing endpoints.
type ListPostsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListSourcesParams defines parameters for ListSources.
type ListSourcesParams struct {
	Query *string `form:"query,omitempty" json:"query,omitempty"`
}

// ServerInterface represents all server handlers described in openapi.yaml.
type ServerInterface interface {
	// (GET /)
	GetRoot(w http.ResponseWriter, r *http.Request)
	// (GET /sources)
	ListSources(w http.ResponseWriter, r *http.Request, params ListSourcesParams)
	// (GET /reddit/{subreddit}/{metric})
	GetRedditPosts(w http.ResponseWriter, r *http.Request, subreddit string, metric string, params ListPostsParams)
	// (GET /medium/{tag})
	GetMediumPosts(w http.ResponseWriter, r *http.Request, tag string, params ListPostsParams)
	// (GET /hackernews/{metric})
	GetHackerNewsPosts(w http.ResponseWriter, r *http.Request, metric string, params ListPostsParams)
	// (GET /aws/{category})
	GetAWSBlogPosts(w http.ResponseWriter, r *http.Request, category string, params ListPostsParams)
}

// InvalidParamFormatError is reported when a path or query parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ServerInterfaceWrapper binds request parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) GetRoot(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetRoot(w, r)
}

func (siw *ServerInterfaceWrapper) ListSources(w http.ResponseWriter, r *http.Request) {
	var params ListSourcesParams

	err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &params.Query)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "query", Err: err})
		return
	}

	siw.Handler.ListSources(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetRedditPosts(w http.ResponseWriter, r *http.Request) {
	subreddit, ok := siw.bindPathParam(w, r, "subreddit")
	if !ok {
		return
	}

	metric, ok := siw.bindPathParam(w, r, "metric")
	if !ok {
		return
	}

	params, ok := siw.bindListPostsParams(w, r)
	if !ok {
		return
	}

	siw.Handler.GetRedditPosts(w, r, subreddit, metric, params)
}

func (siw *ServerInterfaceWrapper) GetMediumPosts(w http.ResponseWriter, r *http.Request) {
	tag, ok := siw.bindPathParam(w, r, "tag")
	if !ok {
		return
	}

	params, ok := siw.bindListPostsParams(w, r)
	if !ok {
		return
	}

	siw.Handler.GetMediumPosts(w, r, tag, params)
}

func (siw *ServerInterfaceWrapper) GetHackerNewsPosts(w http.ResponseWriter, r *http.Request) {
	metric, ok := siw.bindPathParam(w, r, "metric")
	if !ok {
		return
	}

	params, ok := siw.bindListPostsParams(w, r)
	if !ok {
		return
	}

	siw.Handler.GetHackerNewsPosts(w, r, metric, params)
}

func (siw *ServerInterfaceWrapper) GetAWSBlogPosts(w http.ResponseWriter, r *http.Request) {
	category, ok := siw.bindPathParam(w, r, "category")
	if !ok {
		return
	}

	params, ok := siw.bindListPostsParams(w, r)
	if !ok {
		return
	}

	siw.Handler.GetAWSBlogPosts(w, r, category, params)
}

func (siw *ServerInterfaceWrapper) bindPathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var value string

	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, r.PathValue(name), &value)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return "", false
	}

	return value, true
}

func (siw *ServerInterfaceWrapper) bindListPostsParams(w http.ResponseWriter, r *http.Request) (ListPostsParams, bool) {
	var params ListPostsParams

	err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return params, false
	}

	return params, true
}

// HandlerFromMux registers every route of si on m.
func HandlerFromMux(si ServerInterface, m *http.ServeMux) http.Handler {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
	}

	m.HandleFunc("GET /{$}", wrapper.GetRoot)
	m.HandleFunc("GET /sources", wrapper.ListSources)
	m.HandleFunc("GET /reddit/{subreddit}/{metric}", wrapper.GetRedditPosts)
	m.HandleFunc("GET /medium/{tag}", wrapper.GetMediumPosts)
	m.HandleFunc("GET /hackernews/{metric}", wrapper.GetHackerNewsPosts)
	m.HandleFunc("GET /aws/{category}", wrapper.GetAWSBlogPosts)

	return m
}
