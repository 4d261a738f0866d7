package sources

import (
	"context"
	"fmt"
	"io"

	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/rs/zerolog"
)

// Manager drives an ordered collection of sources through a single aggregation pass.
type Manager struct {
	sources []types.Source
	out     io.Writer
	logger  *zerolog.Logger
}

func NewManager(logger *zerolog.Logger, out io.Writer) *Manager {
	return &Manager{
		out:    out,
		logger: types.LoggerOrNop(logger),
	}
}

func (m *Manager) Add(source types.Source) {
	m.sources = append(m.sources, source)
}

func (m *Manager) Sources() []types.Source {
	return m.sources
}

// Run fetches every source in insertion order and renders each one right after its fetch.
// Sources swallow their own recoverable errors, so an error here is fatal and stops the pass.
func (m *Manager) Run(ctx context.Context) error {
	m.logger.Info().Int("count", len(m.sources)).Msg("Running sources")

	for _, source := range m.sources {
		uid := source.UID().String()

		results, err := source.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", uid, err)
		}

		m.logger.Debug().
			Str("source_uid", uid).
			Int("count", len(results)).
			Msg("Source fetched")

		if _, err := fmt.Fprintln(m.out, source.String()); err != nil {
			return fmt.Errorf("render %s: %w", uid, err)
		}
	}

	return nil
}
