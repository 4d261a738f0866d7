package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fuseagg/fuse/pkg/sources"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type sourceTypeConfig struct {
	Type string `json:"type"`
}

// newSourceCmd runs a single source described by a JSON config read from stdin,
// e.g. one line of `fuse presets --json`.
func newSourceCmd(logger *zerolog.Logger, providerConfig *types.ProviderConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "source",
		Short: "Fetch a single source from a JSON config read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sourceConfig, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read source config: %w", err)
			}

			s, err := parseSourceConfig(sourceConfig)
			if err != nil {
				return err
			}

			if err := s.Initialize(logger, providerConfig); err != nil {
				return fmt.Errorf("initialize source: %w", err)
			}

			manager := sources.NewManager(logger, cmd.OutOrStdout())
			manager.Add(s)

			return manager.Run(cmd.Context())
		},
	}
}

func parseSourceConfig(sourceConfig []byte) (types.Source, error) {
	t := sourceTypeConfig{}
	if err := json.Unmarshal(sourceConfig, &t); err != nil {
		return nil, fmt.Errorf("parse source type config: %w", err)
	}

	s, err := sources.NewSource(t.Type)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}

	if err := json.Unmarshal(sourceConfig, s); err != nil {
		return nil, fmt.Errorf("parse source config: %w", err)
	}

	return s, nil
}
