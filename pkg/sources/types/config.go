package types

// ProviderConfig carries the ambient settings shared by all providers.
// It is resolved once from the environment and injected through Source.Initialize.
type ProviderConfig struct {
	RedditClientID     string `env:"REDDIT_CLIENT_ID,default="`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET,default=" validate:"required_with=RedditClientID"`

	// HackerNewsSequential resolves story details one at a time instead of fanning out.
	// Some debuggers do not cope with many concurrent goroutines doing network I/O.
	HackerNewsSequential bool `env:"HACKERNEWS_SEQUENTIAL,default=false"`
	// HackerNewsMaxConcurrency bounds the detail fan-out. Zero means one worker per story.
	HackerNewsMaxConcurrency int `env:"HACKERNEWS_MAX_CONCURRENCY,default=0" validate:"min=0"`
}
