package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alanpramil7/ytetl/internal/logging"
	"github.com/alanpramil7/ytetl/internal/yt"
)

// DefaultMaxPages caps search pages per keyword when the caller has no preference.
const DefaultMaxPages = 10

// publishedAfterLayout is the RFC 3339 UTC form search.list accepts.
const publishedAfterLayout = "2006-01-02T15:04:05Z"

// PageState is a state of the per-keyword pagination loop.
type PageState int

const (
	StateFetching PageState = iota
	StateExhaustedNoResults
	StateExhaustedNoCursor
	StatePageLimitReached
)

func (s PageState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateExhaustedNoResults:
		return "exhausted_no_results"
	case StateExhaustedNoCursor:
		return "exhausted_no_cursor"
	case StatePageLimitReached:
		return "page_limit_reached"
	default:
		return fmt.Sprintf("PageState(%d)", int(s))
	}
}

// KeywordReport is the outcome of paginating one keyword.
type KeywordReport struct {
	Keyword     string
	Records     []yt.VideoRecord
	Pages       int
	Termination PageState
}

// Extractor interface for keyword extraction runs
type Extractor interface {
	Extract(ctx context.Context, keywords []string, maxPages int) (yt.ExtractionResult, error)
	ExtractKeyword(ctx context.Context, keyword string, maxPages int) (*KeywordReport, error)
}

type extractor struct {
	api    yt.VideoAPI
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*extractor)

// WithClock overrides the clock used for the publish-date lower bound.
func WithClock(now func() time.Time) Option {
	return func(e *extractor) { e.now = now }
}

// NewExtractor creates a new extractor over api.
func NewExtractor(api yt.VideoAPI, logger *slog.Logger, opts ...Option) Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &extractor{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract paginates every keyword and returns the ranked records per keyword.
// Keywords without any match are present with an empty list. The first API
// failure aborts the whole extraction and no partial result is returned.
func (e *extractor) Extract(ctx context.Context, keywords []string, maxPages int) (yt.ExtractionResult, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("max pages must be at least 1, got %d", maxPages)
	}

	result := make(yt.ExtractionResult, len(keywords))
	for _, keyword := range keywords {
		report, err := e.ExtractKeyword(ctx, keyword, maxPages)
		if err != nil {
			return nil, err
		}
		result[keyword] = report.Records
	}
	return result, nil
}

// ExtractKeyword runs the search/details loop for one keyword.
func (e *extractor) ExtractKeyword(ctx context.Context, keyword string, maxPages int) (*KeywordReport, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("max pages must be at least 1, got %d", maxPages)
	}

	logger := logging.WithKeyword(e.logger, keyword)
	publishedAfter := PublishedAfter(e.now())

	report := &KeywordReport{
		Keyword:     keyword,
		Records:     []yt.VideoRecord{},
		Termination: StateFetching,
	}
	cursor := ""

	for report.Termination == StateFetching {
		if report.Pages >= maxPages {
			report.Termination = StatePageLimitReached
			break
		}

		page, err := e.api.Search(ctx, yt.SearchQuery{
			Keyword:        keyword,
			Type:           yt.SearchTypeVideo,
			Order:          yt.OrderViewCount,
			MaxResults:     yt.SearchPageSize,
			PublishedAfter: publishedAfter,
			PageToken:      cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("keyword %q page %d: %w", keyword, report.Pages+1, err)
		}
		if len(page.VideoIDs) == 0 {
			report.Termination = StateExhaustedNoResults
			break
		}

		records, err := e.hydrate(ctx, keyword, page.VideoIDs)
		if err != nil {
			return nil, fmt.Errorf("keyword %q page %d: %w", keyword, report.Pages+1, err)
		}
		report.Records = append(report.Records, records...)
		report.Pages++

		logger.Debug("page fetched",
			"page", report.Pages,
			"candidates", len(page.VideoIDs),
			"records", len(records),
		)

		cursor = page.NextPageToken
		if cursor == "" {
			report.Termination = StateExhaustedNoCursor
		}
	}

	yt.SortByEngagement(report.Records)

	logger.Info("keyword extracted",
		"pages", report.Pages,
		"records", len(report.Records),
		"termination", report.Termination.String(),
	)
	return report, nil
}

// hydrate fetches details for ids in DetailsBatchSize chunks and normalizes them.
func (e *extractor) hydrate(ctx context.Context, keyword string, ids []string) ([]yt.VideoRecord, error) {
	records := make([]yt.VideoRecord, 0, len(ids))
	for start := 0; start < len(ids); start += yt.DetailsBatchSize {
		end := min(start+yt.DetailsBatchSize, len(ids))

		items, err := e.api.Details(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			rec, err := yt.NewVideoRecord(keyword, item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// PublishedAfter returns the search lower bound: LookbackDays before now, UTC, second precision.
func PublishedAfter(now time.Time) string {
	lookback := time.Duration(yt.LookbackDays) * 24 * time.Hour
	return now.UTC().Add(-lookback).Truncate(time.Second).Format(publishedAfterLayout)
}
