// Package pipeline runs one extract-then-load cycle: extraction first, then the
// same result fanned out to every sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alanpramil7/ytetl/internal/logging"
	"github.com/alanpramil7/ytetl/internal/sink"
	"github.com/alanpramil7/ytetl/internal/yt"
	"github.com/alanpramil7/ytetl/internal/yt/services"
)

// Runner wires an extractor to its sinks.
type Runner struct {
	extractor services.Extractor
	sinks     []sink.Sink
	logger    *slog.Logger
	keywords  []string
	maxPages  int
}

// RunSummary describes a completed run.
type RunSummary struct {
	RunID    string
	Keywords int
	Records  int
	Duration time.Duration
}

// NewRunner creates a runner. At least one keyword and one sink are required.
func NewRunner(extractor services.Extractor, sinks []sink.Sink, keywords []string, maxPages int, logger *slog.Logger) (*Runner, error) {
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if len(sinks) == 0 {
		return nil, errors.New("at least one sink is required")
	}
	if len(keywords) == 0 {
		return nil, errors.New("at least one keyword is required")
	}
	if maxPages < 1 {
		return nil, fmt.Errorf("max pages must be at least 1, got %d", maxPages)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		extractor: extractor,
		sinks:     sinks,
		logger:    logging.WithComponent(logger, "pipeline"),
		keywords:  append([]string(nil), keywords...),
		maxPages:  maxPages,
	}, nil
}

// Run extracts every keyword and then writes the result to all sinks in
// parallel. A failed extraction calls no sink. A failed sink fails the run,
// but the other sinks still finish their writes.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	logger := logging.WithRunID(r.logger, runID)
	start := time.Now()

	logger.Info("run started", "keywords", len(r.keywords), "max_pages", r.maxPages)

	result, err := r.extractor.Extract(ctx, r.keywords, r.maxPages)
	if err != nil {
		logger.Error("extract failed", "error", err, "code", yt.ErrorCode(err))
		return nil, fmt.Errorf("extract: %w", err)
	}
	logger.Info("extract complete", "records", result.Total())

	// Sinks do not share a derived context: one sink failing must not cancel another.
	var g errgroup.Group
	for _, s := range r.sinks {
		g.Go(func() error {
			sinkStart := time.Now()
			if err := s.Write(ctx, result); err != nil {
				logger.Error("sink failed", "sink", s.Name(), "error", err)
				return fmt.Errorf("load %s: %w", s.Name(), err)
			}
			logger.Info("sink complete", "sink", s.Name(), "elapsed", time.Since(sinkStart).String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:    runID,
		Keywords: len(result),
		Records:  result.Total(),
		Duration: time.Since(start),
	}
	logger.Info("run complete",
		"records", summary.Records,
		"elapsed", summary.Duration.String(),
	)
	return summary, nil
}
