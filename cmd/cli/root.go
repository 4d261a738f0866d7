package main

import (
	"errors"
	"fmt"

	"github.com/fuseagg/fuse/pkg/sources"
	"github.com/fuseagg/fuse/pkg/sources/providers/awsblog"
	"github.com/fuseagg/fuse/pkg/sources/providers/hackernews"
	"github.com/fuseagg/fuse/pkg/sources/providers/medium"
	"github.com/fuseagg/fuse/pkg/sources/providers/reddit"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var ErrBadConfig = errors.New("bad config")

// options mirrors the root command flags.
type options struct {
	Reddit       bool
	Subreddit    string
	Metric       string
	RedditID     string
	RedditSecret string

	Medium bool
	Tag    string

	HackerNews bool
	HNMetric   string

	AWS      bool
	Category string

	Limit int
}

func (o *options) anySelected() bool {
	return o.Reddit || o.Medium || o.HackerNews || o.AWS
}

func newRootCmd(logger *zerolog.Logger, providerConfig *types.ProviderConfig) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "fuse",
		Short:         "Aggregate posts from Reddit, Medium, Hacker News and the AWS blogs",
		Long:          "Fuse fetches the latest posts from the selected sources and prints their titles and urls, one source after another.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.anySelected() {
				return cmd.Help()
			}

			if err := normalizeConfig(&opts, providerConfig); err != nil {
				return err
			}

			manager := sources.NewManager(logger, cmd.OutOrStdout())
			for _, source := range buildSources(&opts) {
				if err := source.Initialize(logger, providerConfig); err != nil {
					return fmt.Errorf("initialize %s: %w", source.UID(), err)
				}
				manager.Add(source)
			}

			return manager.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Reddit, "reddit", false, "Fetch posts from a subreddit")
	flags.StringVar(&opts.Subreddit, "sub", "", "Subreddit to fetch (required with --reddit)")
	flags.StringVar(&opts.Metric, "metric", reddit.MetricHot, "Subreddit listing: hot or top")
	flags.StringVar(&opts.RedditID, "reddit-id", "", "Reddit client id (overrides REDDIT_CLIENT_ID)")
	flags.StringVar(&opts.RedditSecret, "reddit-secret", "", "Reddit client secret (overrides REDDIT_CLIENT_SECRET)")
	flags.BoolVar(&opts.Medium, "medium", false, "Fetch posts from a Medium tag")
	flags.StringVar(&opts.Tag, "tag", "", "Medium tag to fetch (required with --medium)")
	flags.BoolVar(&opts.HackerNews, "hackernews", false, "Fetch Hacker News stories")
	flags.StringVar(&opts.HNMetric, "hn-metric", hackernews.MetricTop, "Hacker News listing: top, best or new")
	flags.BoolVar(&opts.AWS, "aws", false, "Fetch posts from an AWS blog category")
	flags.StringVar(&opts.Category, "category", "", "AWS blog category, e.g. aws or devops (required with --aws)")
	flags.IntVarP(&opts.Limit, "limit", "l", types.DefaultLimit, "Maximum number of posts per source")

	cmd.AddCommand(newPresetsCmd(logger))
	cmd.AddCommand(newSourceCmd(logger, providerConfig))

	return cmd
}

// normalizeConfig checks flag combinations and fills reddit credentials from
// the environment when the flags leave them out.
func normalizeConfig(opts *options, providerConfig *types.ProviderConfig) error {
	if opts.Reddit {
		if opts.Subreddit == "" {
			return fmt.Errorf("%w: --reddit requires --sub", ErrBadConfig)
		}

		if opts.RedditID == "" && opts.RedditSecret == "" && providerConfig != nil {
			opts.RedditID = providerConfig.RedditClientID
			opts.RedditSecret = providerConfig.RedditClientSecret
		}
		if opts.RedditID == "" || opts.RedditSecret == "" {
			return fmt.Errorf("%w: --reddit requires a client id and secret", ErrBadConfig)
		}
	}

	if opts.Medium && opts.Tag == "" {
		return fmt.Errorf("%w: --medium requires --tag", ErrBadConfig)
	}

	if opts.AWS && opts.Category == "" {
		return fmt.Errorf("%w: --aws requires --category", ErrBadConfig)
	}

	if opts.Limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", ErrBadConfig)
	}

	return nil
}

// buildSources returns the selected sources in a fixed order.
func buildSources(opts *options) []types.Source {
	var out []types.Source

	if opts.Reddit {
		s := reddit.NewSourceSubreddit()
		s.Subreddit = opts.Subreddit
		s.Metric = opts.Metric
		s.Limit = opts.Limit
		s.AppAuth.ID = opts.RedditID
		s.AppAuth.Secret = opts.RedditSecret
		out = append(out, s)
	}

	if opts.Medium {
		s := medium.NewSourceTag()
		s.Tag = opts.Tag
		s.Limit = opts.Limit
		out = append(out, s)
	}

	if opts.HackerNews {
		s := hackernews.NewSourcePosts()
		s.Metric = opts.HNMetric
		s.Limit = opts.Limit
		out = append(out, s)
	}

	if opts.AWS {
		s := awsblog.NewSourceCategory()
		s.Category = opts.Category
		s.Limit = opts.Limit
		out = append(out, s)
	}

	return out
}
