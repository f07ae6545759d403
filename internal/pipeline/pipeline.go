// Package pipeline sequences the fetch → normalize → key → upsert run for
// one job board.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"jobsink/internal/identity"
	"jobsink/internal/model"
)

// Pipeline owns the full ETL sequence for a single board. Each Run is a
// stateless batch: records are fetched fresh, keyed, and merged into the
// board's table.
type Pipeline struct {
	provider model.Provider
	store    model.RecordStore
	logger   *slog.Logger
}

// New creates a pipeline wired with its provider and store.
func New(provider model.Provider, store model.RecordStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// Name returns the board name this pipeline loads.
func (p *Pipeline) Name() string { return p.provider.Name() }

// Run executes one batch. A fetch failure is treated as "no data available"
// — logged, not fatal — so transport errors never crash a run. With zero
// records the load step is skipped entirely. Store failures abort only this
// board's load and are returned to the caller.
func (p *Pipeline) Run(ctx context.Context) error {
	records, err := p.provider.Fetch(ctx)
	if err != nil {
		p.logger.Warn("fetch failed, continuing with empty result",
			"provider", p.provider.Name(),
			"error", err,
		)
		records = nil
	}

	if len(records) == 0 {
		p.logger.Info("no records to load", "provider", p.provider.Name())
		return nil
	}

	identity.Assign(records)

	spec := p.provider.Table()
	if err := p.store.EnsureTable(ctx, spec); err != nil {
		return fmt.Errorf("running %s pipeline: %w", p.provider.Name(), err)
	}
	if err := p.store.Upsert(ctx, spec, records); err != nil {
		return fmt.Errorf("running %s pipeline: %w", p.provider.Name(), err)
	}

	p.logger.Info("pipeline complete",
		"provider", p.provider.Name(),
		"table", spec.Name,
		"rows", len(records),
	)
	return nil
}
