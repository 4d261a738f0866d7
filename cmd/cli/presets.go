package main

import (
	"encoding/json"
	"fmt"

	"github.com/fuseagg/fuse/pkg/sources"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newPresetsCmd(logger *zerolog.Logger) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets [query]",
		Short: "Search the preset sources",
		Long:  "Search the preset sources by uid, name and description. With --json each match is printed as a config accepted by the source command.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			registry := sources.NewRegistry(logger)
			found, err := registry.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search presets: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range found {
				if !asJSON {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", s.UID(), s.Description()); err != nil {
						return err
					}
					continue
				}

				config, err := sourceConfigJSON(s)
				if err != nil {
					return fmt.Errorf("serialize %s: %w", s.UID(), err)
				}
				if _, err := fmt.Fprintln(out, string(config)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as JSON source configs")

	return cmd
}

// sourceConfigJSON serializes the source parameters with a "type" discriminator.
func sourceConfigJSON(s types.Source) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = s.UID().Type()

	return json.Marshal(fields)
}
